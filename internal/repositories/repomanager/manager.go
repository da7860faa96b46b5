// Package repomanager vends repository implementations bound to a DBTX, so
// services can run the same repositories on *sql.DB or inside a transaction.
package repomanager

import (
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/repositories/actions"
	"github.com/dmitrijs2005/docflow/internal/repositories/contents"
	"github.com/dmitrijs2005/docflow/internal/repositories/documents"
	"github.com/dmitrijs2005/docflow/internal/repositories/events"
	"github.com/dmitrijs2005/docflow/internal/repositories/roles"
	"github.com/dmitrijs2005/docflow/internal/repositories/statuses"
	"github.com/dmitrijs2005/docflow/internal/repositories/users"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	Users(db dbx.DBTX) users.Repository
	Roles(db dbx.DBTX) roles.Repository
	Statuses(db dbx.DBTX) statuses.Repository
	Documents(db dbx.DBTX) documents.Repository
	Contents(db dbx.DBTX) contents.Repository
	Actions(db dbx.DBTX) actions.Repository
	Events(db dbx.DBTX) events.Repository
}

// SQLRepositoryManager builds the SQL repositories for one dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Roles(db dbx.DBTX) roles.Repository {
	return roles.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Statuses(db dbx.DBTX) statuses.Repository {
	return statuses.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Documents(db dbx.DBTX) documents.Repository {
	return documents.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Contents(db dbx.DBTX) contents.Repository {
	return contents.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Actions(db dbx.DBTX) actions.Repository {
	return actions.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewSQLRepository(db, m.dialect)
}
