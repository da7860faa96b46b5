package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)

	var m RepositoryManager = NewSQLRepositoryManager(dbx.DialectPostgres)

	assert.Equal(t, dbx.DialectPostgres, m.Dialect())
	assert.NotNil(t, m.Users(db))
	assert.NotNil(t, m.Roles(db))
	assert.NotNil(t, m.Statuses(db))
	assert.NotNil(t, m.Documents(db))
	assert.NotNil(t, m.Contents(db))
	assert.NotNil(t, m.Actions(db))
	assert.NotNil(t, m.Events(db))

	_, ok := m.Users(db).(*users.SQLRepository)
	assert.True(t, ok)
}

func TestReposShareTransaction(t *testing.T) {
	db, mock := newDB(t)
	m := NewSQLRepositoryManager(dbx.DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE role_id = \$1`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM roles WHERE id = \$1`).WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := m.Roles(tx).CountUsers(ctx, 3)
		if err != nil {
			return err
		}
		if n > 0 {
			return errors.New("in use")
		}
		return m.Roles(tx).Delete(ctx, 3)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
