package blobstore

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docflow/internal/repositories/repomanager"
)

// DBStore stores contents in the document_contents table.
type DBStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDBStore(db *sql.DB, rm repomanager.RepositoryManager) *DBStore {
	return &DBStore{db: db, repomanager: rm}
}

func (s *DBStore) Put(ctx context.Context, key string, data []byte) error {
	return s.repomanager.Contents(s.db).Put(ctx, key, data)
}

func (s *DBStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.repomanager.Contents(s.db).Get(ctx, key)
}

func (s *DBStore) Delete(ctx context.Context, key string) error {
	return s.repomanager.Contents(s.db).Delete(ctx, key)
}
