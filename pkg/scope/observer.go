package scope

// Outcome describes how a guard left the armed state.
type Outcome string

const (
	// OutcomeFired means the policy held and the action ran to completion.
	OutcomeFired Outcome = "fired"

	// OutcomeSkipped means the scope ended but the policy did not hold.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeReleased means Release disarmed the guard.
	OutcomeReleased Outcome = "released"

	// OutcomeMoved means Move handed the obligation to another guard.
	OutcomeMoved Outcome = "moved"
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	return string(o)
}

// Event is reported to an Observer once per armed-to-disarmed transition.
type Event struct {
	Name    string
	Policy  Policy
	Outcome Outcome
}

// Observer receives guard lifecycle events. It is called synchronously on the
// goroutine that owns the guard.
type Observer interface {
	ObserveGuard(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// ObserveGuard calls f(e).
func (f ObserverFunc) ObserveGuard(e Event) {
	f(e)
}

// Observers fans an event out to several observers in order.
type Observers []Observer

// ObserveGuard forwards e to every non-nil observer.
func (obs Observers) ObserveGuard(e Event) {
	for _, o := range obs {
		if o != nil {
			o.ObserveGuard(e)
		}
	}
}
