package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/scope/internal/config"
	dserrors "github.com/systmms/scope/internal/errors"
	"github.com/systmms/scope/internal/logging"
	"github.com/systmms/scope/internal/secure"
	"github.com/systmms/scope/pkg/scope"
)

func NewWipeCommand(cfg *config.Config) *cobra.Command {
	var sealed bool

	cmd := &cobra.Command{
		Use:   "wipe <secret>",
		Short: "Hold a secret in locked memory and wipe it on scope exit",
		Long: `Copy a secret into a memguard locked buffer whose destruction is bound to
an exit guard, use it, and report that it was wiped when the scope ended.

With --sealed the secret is first sealed in an encrypted enclave and only
decrypted for the duration of the scope.

Examples:
  scopedemo wipe hunter2
  scopedemo wipe --sealed --debug hunter2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "" {
				return dserrors.UserError{
					Message:    "No secret specified",
					Suggestion: "Pass the secret to hold as the only argument",
				}
			}

			size, alive, err := holdSecret(cfg, []byte(args[0]), sealed)
			if err != nil {
				return err
			}
			if alive {
				return fmt.Errorf("locked buffer survived scope exit")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wiped %d bytes of locked memory\n", size)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sealed, "sealed", false, "Seal the secret in an encrypted enclave first")

	return cmd
}

// holdSecret keeps data in locked memory for the duration of one scope and
// reports its size and whether the buffer outlived the scope.
func holdSecret(cfg *config.Config, data []byte, sealed bool) (size int, alive bool, err error) {
	log := logger(cfg)
	withObserver := scope.WithObserver(guardObservers(cfg))

	if !sealed {
		locked, guard := secure.Borrow(data, withObserver)
		func() {
			defer guard.Close()
			size = locked.Size()
			log.Info("Holding %s (%d bytes) in locked memory", logging.Secret(locked.String()), size)
		}()
		return size, locked.IsAlive(), nil
	}

	buf := secure.NewSecureBuffer(data)
	defer buf.Destroy()

	locked, guard, err := buf.Open(withObserver)
	if err != nil {
		return 0, false, fmt.Errorf("failed to open sealed secret: %w", err)
	}
	func() {
		defer guard.Close()
		size = locked.Size()
		log.Info("Opened sealed %s (%d bytes)", logging.Secret(locked.String()), size)
	}()
	return size, locked.IsAlive(), nil
}
