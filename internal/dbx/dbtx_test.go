package dbx_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/docflow/internal/database"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRoleInUse = errors.New("role in use")

// newRoleDB returns a migrated store with an extra "clerk" role.
func newRoleDB(t *testing.T) (*sql.DB, int64) {
	t.Helper()
	ctx := context.Background()

	db, err := database.InitDatabase(ctx, dbx.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var id int64
	err = db.QueryRowContext(ctx, `INSERT INTO roles (name, access_rights) VALUES ('clerk', '') RETURNING id`).Scan(&id)
	require.NoError(t, err)
	return db, id
}

func roleExists(t *testing.T, db *sql.DB, id int64) bool {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM roles WHERE id = ?`, id).Scan(&n))
	return n == 1
}

// deleteUnusedRole counts the role's users and deletes it in one unit.
func deleteUnusedRole(ctx context.Context, tx dbx.DBTX, id int64) error {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return errRoleInUse
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	return err
}

func TestWithTx_DeletesUnusedRole(t *testing.T) {
	db, id := newRoleDB(t)

	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return deleteUnusedRole(ctx, tx, id)
	})
	require.NoError(t, err)
	assert.False(t, roleExists(t, db, id))
}

func TestWithTx_RoleInUseKeepsRole(t *testing.T) {
	db, id := newRoleDB(t)
	_, err := db.Exec(`INSERT INTO users (login, password, first_name, last_name, role_id, phone) VALUES ('alice_01', 'Passw0rd!', '', '', ?, '89001234567')`, id)
	require.NoError(t, err)

	err = dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return deleteUnusedRole(ctx, tx, id)
	})
	require.ErrorIs(t, err, errRoleInUse)
	assert.True(t, roleExists(t, db, id))
}

func TestWithTx_RollsBackDeleteOnLaterError(t *testing.T) {
	db, id := newRoleDB(t)
	boom := errors.New("history write failed")

	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := deleteUnusedRole(ctx, tx, id); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.True(t, roleExists(t, db, id), "delete must be rolled back")
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db, id := newRoleDB(t)

	defer func() {
		require.NotNil(t, recover(), "panic must propagate")
		assert.True(t, roleExists(t, db, id), "delete must be rolled back")
	}()

	_ = dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		require.NoError(t, deleteUnusedRole(ctx, tx, id))
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db, _ := newRoleDB(t)
	require.NoError(t, db.Close())

	called := false
	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}
