package commands

import (
	"github.com/systmms/scope/internal/config"
	"github.com/systmms/scope/internal/logging"
	"github.com/systmms/scope/pkg/scope"
)

// definition returns the loaded configuration, or the defaults when the
// command runs without the root's PersistentPreRunE (as in tests).
func definition(cfg *config.Config) config.Definition {
	if cfg.Definition == nil {
		return *config.DefaultDefinition()
	}
	return *cfg.Definition
}

// logger returns the configured logger or a quiet one.
func logger(cfg *config.Config) *logging.Logger {
	if cfg.Logger == nil {
		cfg.Logger = logging.New(false, true)
	}
	return cfg.Logger
}

// guardObservers builds the observer list every demo guard reports to.
func guardObservers(cfg *config.Config, extra ...scope.Observer) scope.Observer {
	return append(scope.Observers{logging.GuardObserver(logger(cfg))}, extra...)
}
