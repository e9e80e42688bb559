package dms

// Phase is a controller's position in its load/submit lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// StatusKind distinguishes success and error messages.
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// StatusMessage is the inline message shown after a mutation.
type StatusMessage struct {
	Kind StatusKind
	Text string
}

// Empty reports whether there is no message to show.
func (m StatusMessage) Empty() bool {
	return m.Text == ""
}

func successStatus(text string) StatusMessage { return StatusMessage{Kind: StatusSuccess, Text: text} }
func errorStatus(text string) StatusMessage   { return StatusMessage{Kind: StatusError, Text: text} }
