package scope

// Guard runs an action at most once when the scope that owns it ends,
// according to its Policy. The zero value is a disarmed guard.
type Guard struct {
	action   func()
	policy   Policy
	state    State
	name     string
	observer Observer
}

// New creates an armed guard for policy. No guard exists when an error is
// returned.
func New(policy Policy, action func(), opts ...Option) (*Guard, error) {
	if !policy.Valid() {
		return nil, ErrUnknownPolicy
	}
	if action == nil {
		return nil, ErrNilAction
	}

	g := &Guard{
		action: action,
		policy: policy,
		state:  StateArmed,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Exit creates a guard that runs action on every scope exit.
// It panics with ErrNilAction if action is nil.
func Exit(action func(), opts ...Option) *Guard {
	return mustNew(Always, action, opts)
}

// Fail creates a guard that runs action only when the scope fails.
// It panics with ErrNilAction if action is nil.
func Fail(action func(), opts ...Option) *Guard {
	return mustNew(OnFailure, action, opts)
}

// Success creates a guard that runs action only when the scope exits
// normally. It panics with ErrNilAction if action is nil.
func Success(action func(), opts ...Option) *Guard {
	return mustNew(OnSuccess, action, opts)
}

func mustNew(policy Policy, action func(), opts []Option) *Guard {
	g, err := New(policy, action, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Policy returns the policy fixed at construction.
func (g *Guard) Policy() Policy {
	if g == nil {
		return ""
	}
	return g.policy
}

// Name returns the label set with WithName.
func (g *Guard) Name() string {
	if g == nil {
		return ""
	}
	return g.name
}

// State returns the current lifecycle state.
func (g *Guard) State() State {
	if g == nil || g.state == "" {
		return StateDisarmed
	}
	return g.state
}

// Armed reports whether the guard will still evaluate its policy.
func (g *Guard) Armed() bool {
	return g.State() == StateArmed
}

// Release disarms the guard so its action never runs. Calling it more than
// once, or on a guard that already fired, has no effect.
func (g *Guard) Release() {
	if !g.Armed() {
		return
	}
	g.disarm()
	g.notify(OutcomeReleased)
}

// Move transfers the pending obligation to a new guard and disarms g.
// The returned guard has g's action, policy, state, name and observer.
// Moving a disarmed guard returns a disarmed guard.
func (g *Guard) Move() *Guard {
	if !g.Armed() {
		return &Guard{policy: g.Policy(), state: StateDisarmed, name: g.Name()}
	}

	moved := &Guard{
		action:   g.action,
		policy:   g.policy,
		state:    StateArmed,
		name:     g.name,
		observer: g.observer,
	}
	g.disarm()
	g.notify(OutcomeMoved)
	return moved
}

// Close evaluates the guard at scope exit. It must be deferred directly:
//
//	defer scope.Fail(undo).Close()
//
// A panic unwinding through the deferring frame counts as failure and is
// re-panicked after evaluation. Close on a disarmed guard does not touch a
// panic in flight.
func (g *Guard) Close() {
	if !g.Armed() {
		return
	}
	r := recover()
	g.exit(r != nil, r)
}

// CloseErr is Close for functions that report failure through a named error
// result. The scope failed if a panic is unwinding or *errp is non-nil. It
// must be deferred directly:
//
//	func apply() (err error) {
//	    defer scope.Fail(undo).CloseErr(&err)
//	    ...
//	}
func (g *Guard) CloseErr(errp *error) {
	if !g.Armed() {
		return
	}
	r := recover()
	g.exit(r != nil || (errp != nil && *errp != nil), r)
}

// Finish evaluates the guard with an explicit failure flag. The guard is
// disarmed before the action runs, so the action runs at most once even if
// it panics or Finish is called again.
func (g *Guard) Finish(failed bool) {
	if !g.Armed() {
		return
	}

	action := g.disarm()
	if !g.policy.ShouldFire(failed) {
		g.notify(OutcomeSkipped)
		return
	}

	action()
	g.notify(OutcomeFired)
}

// exit runs Finish and then restores the recovered panic r, if any. The
// original panic is re-raised even when the action itself panics.
func (g *Guard) exit(failed bool, r any) {
	if r != nil {
		defer func() {
			panic(r)
		}()
	}
	g.Finish(failed)
}

func (g *Guard) disarm() func() {
	action := g.action
	g.action = nil
	if g.state.CanTransitionTo(StateDisarmed) {
		g.state = StateDisarmed
	}
	return action
}

func (g *Guard) notify(outcome Outcome) {
	if g.observer == nil {
		return
	}
	g.observer.ObserveGuard(Event{
		Name:    g.name,
		Policy:  g.policy,
		Outcome: outcome,
	})
}
