// Package dbx holds the database plumbing shared by the repositories: the
// DBTX handle, transactional units of work and the SQLite/PostgreSQL
// dialect differences.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is what a repository needs from a connection. *sql.DB and *sql.Tx
// both satisfy it, so the same repository runs inside or outside a
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn as one unit of work. The transaction is committed when fn
// returns nil and rolled back when it fails or panics; a panic is re-raised
// after the rollback.
//
// Repositories built from tx see the unit's own writes:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    n, err := rm.Roles(tx).CountUsers(ctx, id)
//	    if err != nil {
//	        return err
//	    }
//	    if n > 0 {
//	        return common.ErrRoleInUse
//	    }
//	    return rm.Roles(tx).Delete(ctx, id)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
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

	return fn(ctx, tx)
}
