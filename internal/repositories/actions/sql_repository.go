package actions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, a *models.Action) (*models.Action, error) {
	query :=
		`INSERT INTO actions (type, object, document_id, user_id, created_at, description)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id`

	var docID sql.NullInt64
	if a.DocumentID != nil {
		docID = sql.NullInt64{Int64: *a.DocumentID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		a.Type, a.Object, docID, a.UserID, a.CreatedAt.UTC(), a.Description).Scan(&a.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// List returns every action newest first, with the actor as "Last First".
func (r *SQLRepository) List(ctx context.Context) ([]models.ActionView, error) {
	query :=
		`SELECT a.id, a.type, a.object, a.document_id, a.user_id, a.created_at, a.description,
		        COALESCE(u.last_name || ' ' || u.first_name, '')
		 FROM actions a
		 LEFT JOIN users u ON u.id = a.user_id
		 ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.ActionView
	for rows.Next() {
		var (
			v     models.ActionView
			docID sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.Type, &v.Object, &docID, &v.UserID, &v.CreatedAt, &v.Description, &v.Actor); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		if docID.Valid {
			id := docID.Int64
			v.DocumentID = &id
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM actions`)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
