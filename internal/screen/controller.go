// Package screen owns the request lifecycle of the prediction screen.
package screen

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Predictor interface {
	Predict(ctx context.Context, requestID string, text string) (string, error)
}

// ResolvedMsg is produced by the command returned from Submit
type ResolvedMsg struct {
	RequestID  string
	Prediction string
	Err        error
}

type Controller struct {
	predictor Predictor
	logger    *zap.Logger

	input   string
	state   State
	pending string
}

func New(predictor Predictor, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		predictor: predictor,
		logger:    logger.Named("screen"),
		state:     Idle(),
	}
}

func (c *Controller) SetInputText(text string) {
	c.input = text
}

func (c *Controller) InputText() string {
	return c.input
}

func (c *Controller) State() State {
	return c.state
}

// CanSubmit reports whether the trigger should be enabled
func (c *Controller) CanSubmit() bool {
	return c.input != "" && c.state.Kind() != KindLoading
}

// Submit enters Loading and returns the command performing the request.
// The precondition is not checked here, the trigger is disabled instead.
func (c *Controller) Submit(ctx context.Context) tea.Cmd {
	id := uuid.NewString()
	text := c.input
	predictor := c.predictor

	c.logger.Debug("submitting", zap.String("request_id", id), zap.Stringer("from", c.state))
	c.state = Loading()
	c.pending = id

	return func() tea.Msg {
		prediction, err := predict(ctx, predictor, id, text)
		return ResolvedMsg{
			RequestID:  id,
			Prediction: prediction,
			Err:        err,
		}
	}
}

// Resolve applies the outcome of a submission.
// Results for anything but the pending request are dropped.
func (c *Controller) Resolve(msg ResolvedMsg) bool {
	if c.state.Kind() != KindLoading || msg.RequestID != c.pending {
		c.logger.Debug("dropping stale result", zap.String("request_id", msg.RequestID))
		return false
	}
	c.pending = ""

	if msg.Err != nil {
		c.state = Failed(message(msg.Err))
		c.logger.Info("prediction failed", zap.String("request_id", msg.RequestID), zap.Error(msg.Err))
		return true
	}

	c.state = Succeeded(msg.Prediction)
	c.logger.Info("prediction succeeded", zap.String("request_id", msg.RequestID), zap.String("prediction", msg.Prediction))
	return true
}

// Await runs one submission to completion
func (c *Controller) Await(ctx context.Context) State {
	msg, ok := c.Submit(ctx)().(ResolvedMsg)
	if ok {
		c.Resolve(msg)
	}

	return c.state
}

func predict(ctx context.Context, predictor Predictor, id string, text string) (prediction string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	if predictor == nil {
		return "", errors.New("no predictor configured")
	}

	return predictor.Predict(ctx, id, text)
}

func message(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}

	return fmt.Sprintf("%T", err)
}
