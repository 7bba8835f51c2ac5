package scope

// Option configures a guard at construction.
type Option func(*Guard)

// WithName labels the guard in observer events.
func WithName(name string) Option {
	return func(g *Guard) {
		g.name = name
	}
}

// WithObserver attaches an observer notified on every lifecycle transition.
func WithObserver(o Observer) Option {
	return func(g *Guard) {
		g.observer = o
	}
}
