package daemon

// State is the backlight control state. Exactly one state is current at any
// time; only the state machine mutates it.
type State int

const (
	// StateActive keeps brightness at the target while the inactivity
	// clock runs.
	StateActive State = iota
	// StateDimmed is entered when the inactivity timeout expires.
	StateDimmed
	// StateUserDisabled is entered when the user turns the backlight off
	// externally. Input activity does not leave this state; only an
	// external change back above zero does.
	StateUserDisabled
)

func (s State) String() string {
	switch s {
	case StateDimmed:
		return "dimmed"
	case StateUserDisabled:
		return "user-disabled"
	default:
		return "active"
	}
}
