package lifecycle

import "fmt"

// State is the save lifecycle state. Exactly one is active at a time.
type State int

const (
	Idle State = iota
	Saving
	Saved
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	switch s {
	case Idle, Saving, Saved:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid lifecycle state %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "saving":
		*s = Saving
	case "saved":
		*s = Saved
	default:
		return fmt.Errorf("unknown lifecycle state %q", string(text))
	}
	return nil
}

// Trigger is what caused a transition.
type Trigger int

const (
	TriggerActivation Trigger = iota
	TriggerTimer
	TriggerDismiss
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerActivation:
		return "activation"
	case TriggerTimer:
		return "timer"
	case TriggerDismiss:
		return "dismiss"
	default:
		return "unknown"
	}
}

// Transition is an edge of the state machine.
type Transition struct {
	From    State
	To      State
	Trigger Trigger
}

// String formats the transition as "from -> to (trigger)".
func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s (%s)", t.From, t.To, t.Trigger)
}
