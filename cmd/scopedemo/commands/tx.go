package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/scope/internal/config"
	dserrors "github.com/systmms/scope/internal/errors"
	"github.com/systmms/scope/pkg/scope"
	"github.com/systmms/scope/pkg/sqltx"
)

func NewTxCommand(cfg *config.Config) *cobra.Command {
	var (
		driver string
		dsn    string
	)

	cmd := &cobra.Command{
		Use:   "tx [statements...]",
		Short: "Run SQL statements in a transaction guarded by a rollback",
		Long: `Run SQL statements in one transaction. A failure guard rolls the
transaction back if any statement fails; nothing is rolled back after a
successful commit.

Supported drivers: postgres (postgresql), mysql (mariadb).

Examples:
  scopedemo tx --driver postgres --dsn "postgres://localhost/app?sslmode=disable" \
    "UPDATE accounts SET balance = balance - 10 WHERE id = 1" \
    "UPDATE accounts SET balance = balance + 10 WHERE id = 2"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return dserrors.UserError{
					Message:    "No statements specified",
					Suggestion: "Provide one or more SQL statements to run",
				}
			}
			if driver == "" || dsn == "" {
				return dserrors.UserError{
					Message:    "Database connection not configured",
					Suggestion: "Set both --driver and --dsn",
				}
			}

			affected, err := runTx(cmd.Context(), cfg, driver, dsn, args)
			if err != nil {
				return dserrors.SimplifyError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Committed %d statement(s), %d row(s) affected\n", len(args), affected)
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "Database type (postgres, mysql)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Database connection string")

	return cmd
}

func runTx(ctx context.Context, cfg *config.Config, driver, dsn string, statements []string) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger(cfg)

	db, err := sqltx.Open(ctx, driver, dsn)
	if err != nil {
		return 0, err
	}
	defer scope.Exit(func() { _ = db.Close() }, scope.WithName("tx.close")).Close()

	log.Debug("Running %d statement(s) on %s", len(statements), driver)
	return sqltx.Exec(ctx, db, statements, scope.WithObserver(guardObservers(cfg)))
}
