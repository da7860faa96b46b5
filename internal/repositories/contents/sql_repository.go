package contents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/dbx"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Put(ctx context.Context, key string, data []byte) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(`INSERT INTO document_contents (blob_key, data) VALUES (?, ?)`), key, data)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("failed to store content %s: %w", key, common.ErrConstraintViolation)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT data FROM document_contents WHERE blob_key = ?`), key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return data, nil
}

// Delete removes the content; a missing key is not an error.
func (r *SQLRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM document_contents WHERE blob_key = ?`), key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
