package scope

// State is the lifecycle state of a guard's pending action.
type State string

const (
	// StateArmed means the guard evaluates its policy when its scope ends.
	StateArmed State = "armed"

	// StateDisarmed means the guard is inert.
	StateDisarmed State = "disarmed"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsTerminal returns true if no transition leaves this state.
func (s State) IsTerminal() bool {
	return s == StateDisarmed
}

// ValidTransitions defines allowed state transitions.
// Release, Move and scope exit all take a guard from armed to disarmed.
var ValidTransitions = map[State][]State{
	StateArmed:    {StateDisarmed},
	StateDisarmed: {},
}

// CanTransitionTo checks if a transition from current state to new state is valid.
func (s State) CanTransitionTo(newState State) bool {
	for _, valid := range ValidTransitions[s] {
		if valid == newState {
			return true
		}
	}
	return false
}
