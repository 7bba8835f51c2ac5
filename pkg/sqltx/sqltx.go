// Package sqltx runs database/sql transactions under scope guards: a
// failure guard rolls the transaction back on error or panic, and nothing
// is rolled back once Commit has succeeded.
package sqltx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/systmms/scope/pkg/scope"

	// Import common SQL drivers
	_ "github.com/go-sql-driver/mysql" // MySQL
	_ "github.com/lib/pq"              // PostgreSQL
)

// DefaultPingTimeout bounds the connectivity check in Open.
const DefaultPingTimeout = 30 * time.Second

// driverMap maps user-facing database types to registered driver names.
var driverMap = map[string]string{
	"postgresql": "postgres",
	"postgres":   "postgres",
	"mysql":      "mysql",
	"mariadb":    "mysql",
}

// DriverName resolves a database type to a registered driver name. Types
// that are not aliases are passed through, so any driver registered with
// database/sql (for example sqlmock in tests) can be used directly.
func DriverName(dbType string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(dbType))
	if key == "" {
		return "", fmt.Errorf("database type is required")
	}
	if driver, ok := driverMap[key]; ok {
		return driver, nil
	}
	for _, registered := range sql.Drivers() {
		if registered == key {
			return key, nil
		}
	}
	return "", fmt.Errorf("unsupported database type: %s", dbType)
}

// Open opens a database handle and verifies connectivity. The handle is
// closed again if the ping fails.
func Open(ctx context.Context, dbType, dsn string) (_ *sql.DB, err error) {
	driver, err := DriverName(dbType)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	defer scope.Fail(func() { _ = db.Close() }, scope.WithName("sqltx.open")).CloseErr(&err)

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// InTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when fn returns an error, panics, or the
// commit itself fails. A panic from fn is re-raised after the rollback.
func InTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error, opts ...scope.Option) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	opts = append([]scope.Option{scope.WithName("sqltx.rollback")}, opts...)
	defer scope.Fail(func() { _ = tx.Rollback() }, opts...).CloseErr(&err)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Exec runs each statement in order inside one transaction and returns the
// total number of affected rows.
func Exec(ctx context.Context, db *sql.DB, statements []string, opts ...scope.Option) (int64, error) {
	var affected int64
	err := InTx(ctx, db, func(tx *sql.Tx) error {
		for i, stmt := range statements {
			res, err := tx.ExecContext(ctx, stmt)
			if err != nil {
				return fmt.Errorf("statement %d failed: %w", i+1, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				affected += n
			}
		}
		return nil
	}, opts...)
	if err != nil {
		return 0, err
	}
	return affected, nil
}
