package sqltx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/scope/pkg/scope"
)

func TestDriverName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dbType      string
		expected    string
		expectError bool
	}{
		{"postgres", "postgres", false},
		{"PostgreSQL", "postgres", false},
		{"mysql", "mysql", false},
		{"mariadb", "mysql", false},
		{" mysql ", "mysql", false},
		{"oracle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		driver, err := DriverName(tt.dbType)
		if tt.expectError {
			assert.Error(t, err, tt.dbType)
			continue
		}
		require.NoError(t, err, tt.dbType)
		assert.Equal(t, tt.expected, driver)
	}
}

func TestInTxWithSQLMock(t *testing.T) {
	tests := []struct {
		name          string
		fn            func(*sql.Tx) error
		setupMock     func(mock sqlmock.Sqlmock)
		expectError   bool
		errorContains string
		rollbackEvent bool
	}{
		{
			name: "commit_on_success",
			fn: func(tx *sql.Tx) error {
				_, err := tx.Exec("UPDATE users SET active = true")
				return err
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectCommit()
			},
		},
		{
			name: "rollback_on_error",
			fn: func(tx *sql.Tx) error {
				_, err := tx.Exec("DELETE FROM sessions")
				return err
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM sessions").WillReturnError(fmt.Errorf("lock timeout"))
				mock.ExpectRollback()
			},
			expectError:   true,
			errorContains: "lock timeout",
			rollbackEvent: true,
		},
		{
			name: "begin_failure",
			fn:   func(*sql.Tx) error { return nil },
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(fmt.Errorf("connection lost"))
			},
			expectError:   true,
			errorContains: "begin transaction",
		},
		{
			name: "commit_failure",
			fn:   func(*sql.Tx) error { return nil },
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(fmt.Errorf("serialization failure"))
			},
			expectError:   true,
			errorContains: "commit transaction",
			rollbackEvent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tt.setupMock(mock)

			var outcomes []scope.Outcome
			observer := scope.ObserverFunc(func(e scope.Event) {
				assert.Equal(t, "sqltx.rollback", e.Name)
				outcomes = append(outcomes, e.Outcome)
			})

			err = InTx(context.Background(), db, tt.fn, scope.WithObserver(observer))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
			}

			switch {
			case tt.rollbackEvent:
				assert.Equal(t, []scope.Outcome{scope.OutcomeFired}, outcomes)
			case !tt.expectError:
				assert.Equal(t, []scope.Outcome{scope.OutcomeSkipped}, outcomes)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInTx_RollsBackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	errPanic := errors.New("invariant violated")
	assert.PanicsWithValue(t, errPanic, func() {
		_ = InTx(context.Background(), db, func(*sql.Tx) error {
			panic(errPanic)
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO audit").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE counters").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	affected, err := Exec(context.Background(), db, []string{
		"INSERT INTO audit VALUES (1)",
		"UPDATE counters SET n = n + 1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExec_SecondStatementFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO audit").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE counters").WillReturnError(fmt.Errorf("no such table"))
	mock.ExpectRollback()

	affected, err := Exec(context.Background(), db, []string{
		"INSERT INTO audit VALUES (1)",
		"UPDATE counters SET n = n + 1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 2 failed")
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen(t *testing.T) {
	db, _, err := sqlmock.NewWithDSN("sqlmock_open_ok")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	opened, err := Open(context.Background(), "sqlmock", "sqlmock_open_ok")
	require.NoError(t, err)
	require.NotNil(t, opened)
	_ = opened.Close()
}

func TestOpen_UnsupportedType(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}
