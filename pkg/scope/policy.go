package scope

// Policy decides whether a guard's action runs when its scope ends.
type Policy string

const (
	// Always runs the action on every scope exit.
	Always Policy = "always"

	// OnFailure runs the action only when the scope exits by failure.
	OnFailure Policy = "on_failure"

	// OnSuccess runs the action only when the scope exits normally.
	OnSuccess Policy = "on_success"
)

// String returns the string representation of the policy.
func (p Policy) String() string {
	return string(p)
}

// Valid reports whether p is one of the known policies.
func (p Policy) Valid() bool {
	switch p {
	case Always, OnFailure, OnSuccess:
		return true
	}
	return false
}

// ShouldFire reports whether the action runs for a scope exit where failed
// tells whether a failure arose after the guard was created.
func (p Policy) ShouldFire(failed bool) bool {
	switch p {
	case Always:
		return true
	case OnFailure:
		return failed
	case OnSuccess:
		return !failed
	}
	return false
}
