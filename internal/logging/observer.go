package logging

import (
	"go.uber.org/zap"

	"github.com/systmms/scope/pkg/scope"
)

type guardObserver struct {
	log *zap.Logger
}

// GuardObserver returns a scope.Observer that writes every guard transition
// to l at debug level.
func GuardObserver(l *Logger) scope.Observer {
	return guardObserver{log: l.Zap()}
}

func (o guardObserver) ObserveGuard(e scope.Event) {
	name := e.Name
	if name == "" {
		name = "unnamed"
	}
	o.log.Debug("scope guard "+e.Outcome.String(),
		zap.String("guard", name),
		zap.Stringer("policy", e.Policy),
		zap.Stringer("outcome", e.Outcome),
	)
}
