package screen

type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindSucceeded
	KindFailed
)

var kindName = map[Kind]string{
	KindIdle:      "idle",
	KindLoading:   "loading",
	KindSucceeded: "succeeded",
	KindFailed:    "failed",
}

func (k Kind) String() string {
	return kindName[k]
}

// State is the lifecycle of one submission.
// Only the constructors below build a State, so a prediction and an error never coexist.
type State struct {
	kind Kind
	text string
}

func Idle() State {
	return State{kind: KindIdle}
}

func Loading() State {
	return State{kind: KindLoading}
}

func Succeeded(prediction string) State {
	return State{kind: KindSucceeded, text: prediction}
}

func Failed(message string) State {
	return State{kind: KindFailed, text: message}
}

func (s State) Kind() Kind {
	return s.kind
}

func (s State) Prediction() (string, bool) {
	if s.kind != KindSucceeded {
		return "", false
	}

	return s.text, true
}

func (s State) Message() (string, bool) {
	if s.kind != KindFailed {
		return "", false
	}

	return s.text, true
}

func (s State) String() string {
	switch s.kind {
	case KindSucceeded, KindFailed:
		return s.kind.String() + "(" + s.text + ")"
	default:
		return s.kind.String()
	}
}
