package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/spotdemo4/quick-predict/internal/api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakePredictor struct {
	calls      []string
	ids        []string
	prediction string
	err        error
	panic      any
}

func (f *fakePredictor) Predict(_ context.Context, requestID string, text string) (string, error) {
	f.calls = append(f.calls, text)
	f.ids = append(f.ids, requestID)
	if f.panic != nil {
		panic(f.panic)
	}

	return f.prediction, f.err
}

type silentError struct{}

func (silentError) Error() string { return "" }

func TestController_InitialState(t *testing.T) {
	c := New(&fakePredictor{}, nil)

	assert.Equal(t, KindIdle, c.State().Kind())
	assert.Empty(t, c.InputText())
	assert.False(t, c.CanSubmit())
}

func TestController_Submit(t *testing.T) {
	t.Run("enters loading before the request runs", func(t *testing.T) {
		for _, text := range []string{"a", "what a lovely day", " ", "çok güzel"} {
			p := &fakePredictor{prediction: "joy"}
			c := New(p, nil)
			c.SetInputText(text)

			cmd := c.Submit(context.Background())

			require.NotNil(t, cmd)
			assert.Equal(t, KindLoading, c.State().Kind())
			assert.False(t, c.CanSubmit())
			assert.Empty(t, p.calls)
		}
	})

	t.Run("success", func(t *testing.T) {
		p := &fakePredictor{prediction: "joy"}
		c := New(p, nil)
		c.SetInputText("what a lovely day")

		msg := c.Submit(context.Background())()
		resolved, ok := msg.(ResolvedMsg)
		require.True(t, ok)
		assert.True(t, c.Resolve(resolved))

		prediction, ok := c.State().Prediction()
		assert.True(t, ok)
		assert.Equal(t, "joy", prediction)
		assert.Equal(t, []string{"what a lovely day"}, p.calls)
		assert.Equal(t, []string{resolved.RequestID}, p.ids)
		assert.True(t, c.CanSubmit())
	})

	t.Run("application error", func(t *testing.T) {
		c := New(&fakePredictor{err: &api.ApplicationError{Message: "text too long"}}, nil)
		c.SetInputText("x")

		state := c.Await(context.Background())

		message, ok := state.Message()
		assert.True(t, ok)
		assert.Equal(t, "text too long", message)
	})

	t.Run("transport error", func(t *testing.T) {
		c := New(&fakePredictor{err: &api.TransportError{StatusCode: 500}}, nil)
		c.SetInputText("x")

		state := c.Await(context.Background())

		message, ok := state.Message()
		assert.True(t, ok)
		assert.Contains(t, message, "500")
	})

	t.Run("network error", func(t *testing.T) {
		c := New(&fakePredictor{err: &api.NetworkError{Err: errors.New("connection refused")}}, nil)
		c.SetInputText("x")

		state := c.Await(context.Background())

		message, ok := state.Message()
		assert.True(t, ok)
		assert.Equal(t, "connection refused", message)
	})

	t.Run("error without a message", func(t *testing.T) {
		c := New(&fakePredictor{err: silentError{}}, nil)
		c.SetInputText("x")

		state := c.Await(context.Background())

		message, ok := state.Message()
		assert.True(t, ok)
		assert.NotEmpty(t, message)
	})

	t.Run("panicking predictor resolves to failed", func(t *testing.T) {
		c := New(&fakePredictor{panic: 42}, nil)
		c.SetInputText("x")

		state := c.Await(context.Background())

		message, ok := state.Message()
		assert.True(t, ok)
		assert.Equal(t, "42", message)
	})

	t.Run("missing predictor resolves to failed", func(t *testing.T) {
		c := New(nil, nil)
		c.SetInputText("x")

		assert.Equal(t, KindFailed, c.Await(context.Background()).Kind())
	})
}

func TestController_Resubmit(t *testing.T) {
	p := &fakePredictor{err: &api.ApplicationError{Message: "unsupported language"}}
	c := New(p, nil)
	c.SetInputText("x")

	assert.Equal(t, KindFailed, c.Await(context.Background()).Kind())

	p.err = nil
	p.prediction = "sadness"
	cmd := c.Submit(context.Background())

	// Previous error is gone as soon as loading starts
	_, hasMessage := c.State().Message()
	assert.False(t, hasMessage)
	assert.Equal(t, Loading(), c.State())

	c.Resolve(cmd().(ResolvedMsg))
	prediction, ok := c.State().Prediction()
	assert.True(t, ok)
	assert.Equal(t, "sadness", prediction)
	_, hasMessage = c.State().Message()
	assert.False(t, hasMessage)
	assert.Len(t, p.calls, 2)
}

func TestController_Resolve(t *testing.T) {
	t.Run("ignores results while not loading", func(t *testing.T) {
		c := New(&fakePredictor{}, nil)

		assert.False(t, c.Resolve(ResolvedMsg{Prediction: "joy"}))
		assert.Equal(t, Idle(), c.State())
	})

	t.Run("ignores stale results", func(t *testing.T) {
		c := New(&fakePredictor{prediction: "joy"}, nil)
		c.SetInputText("x")

		first := c.Submit(context.Background())().(ResolvedMsg)
		second := c.Submit(context.Background())

		assert.False(t, c.Resolve(first))
		assert.Equal(t, KindLoading, c.State().Kind())

		assert.True(t, c.Resolve(second().(ResolvedMsg)))
		assert.Equal(t, KindSucceeded, c.State().Kind())
	})

	t.Run("never resolves twice", func(t *testing.T) {
		c := New(&fakePredictor{prediction: "joy"}, nil)
		c.SetInputText("x")

		msg := c.Submit(context.Background())().(ResolvedMsg)

		assert.True(t, c.Resolve(msg))
		assert.False(t, c.Resolve(ResolvedMsg{RequestID: msg.RequestID, Err: errors.New("late")}))
		assert.Equal(t, Succeeded("joy"), c.State())
	})
}

func TestController_SetInputText(t *testing.T) {
	c := New(&fakePredictor{}, nil)

	c.SetInputText("hello")
	assert.Equal(t, "hello", c.InputText())
	assert.True(t, c.CanSubmit())

	c.SetInputText("")
	assert.Empty(t, c.InputText())
	assert.False(t, c.CanSubmit())
}

func TestState(t *testing.T) {
	assert.Equal(t, "idle", Idle().String())
	assert.Equal(t, "loading", Loading().String())
	assert.Equal(t, "succeeded(joy)", Succeeded("joy").String())
	assert.Equal(t, "failed(API error: 500)", Failed("API error: 500").String())

	_, ok := Failed("x").Prediction()
	assert.False(t, ok)
	_, ok = Succeeded("x").Message()
	assert.False(t, ok)
}
