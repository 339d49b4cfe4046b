package view

import "fmt"

// Submission is the single-slot guard: at most one generation per machine.
type Submission int

const (
	Idle Submission = iota
	Submitting
)

func (s Submission) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("Submission(%d)", int(s))
	}
}

func (s Submission) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Submission) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "submitting":
		*s = Submitting
	default:
		return fmt.Errorf("view: unknown submission %q", text)
	}
	return nil
}

// Snapshot is a point-in-time copy of the machine, safe to hand to renderers.
type Snapshot struct {
	State      State      `json:"state"`
	Draft      string     `json:"draft"`
	Submission Submission `json:"submission"`
	CanSubmit  bool       `json:"can_submit"`
	LastResult string     `json:"last_result,omitempty"`
	Notice     string     `json:"notice,omitempty"`
	BetaNotice bool       `json:"beta_notice"`
}
