// Package dbx provides tiny DB abstractions shared by the SQLite
// repositories: a minimal interface (DBTX) implemented by both *sql.DB and
// *sql.Tx, and a helper to run functions inside a transaction.
package dbx

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BusyRetries is how many times WithTx restarts a transaction that failed
// because another process held the database lock, e.g. a second client
// sharing the same profile file.
var BusyRetries = 3

// busyBackoff is the pause before the first restart. It grows exponentially.
var busyBackoff = 50 * time.Millisecond

// IsBusy reports whether err is SQLite's "database is locked" condition.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
// When SQLite reports the database as busy, the whole transaction is run
// again, up to BusyRetries times; fn must therefore be safe to repeat.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    // use tx instead of db
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	b := retry.WithMaxRetries(uint64(BusyRetries), retry.NewExponential(busyBackoff))

	var last error
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		last = runTx(ctx, db, opts, fn)
		if IsBusy(last) {
			return retry.RetryableError(last)
		}
		return last
	})
	if err != nil && last != nil && ctx.Err() != nil {
		// cancelled while backing off; report what the database said
		return last
	}
	return err
}

func runTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
