package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/docflow/internal/common"
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

func (r *SQLRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query :=
		`INSERT INTO documents (name, type, author_id, created_at, status_id, version, file_type, content_key)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		doc.Name, doc.Type, doc.AuthorID, doc.CreatedAt.UTC(), doc.StatusID, doc.Version, doc.FileType, doc.ContentKey).
		Scan(&doc.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query :=
		`SELECT id, name, type, COALESCE(author_id, 0), created_at, status_id, version, file_type, content_key
		 FROM documents WHERE id = ?`

	d := &models.Document{}
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id).Scan(
		&d.ID, &d.Name, &d.Type, &d.AuthorID, &d.CreatedAt, &d.StatusID, &d.Version, &d.FileType, &d.ContentKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// Search lists documents matching every non-empty filter field. Text matches
// the numeric id exactly or the name as a substring.
func (r *SQLRepository) Search(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentView, error) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(
		`SELECT d.id, d.name, d.type, COALESCE(d.author_id, 0), d.created_at, d.status_id, d.version, d.file_type, d.content_key,
		        COALESCE(u.last_name || ' ' || u.first_name, ''), s.name
		 FROM documents d
		 LEFT JOIN users u ON u.id = d.author_id
		 JOIN statuses s ON s.id = d.status_id
		 WHERE 1=1`)

	if filter.AuthorID != 0 {
		sb.WriteString(` AND d.author_id = ?`)
		args = append(args, filter.AuthorID)
	}
	if filter.Status != "" {
		sb.WriteString(` AND s.name = ?`)
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		sb.WriteString(` AND d.type = ?`)
		args = append(args, filter.Type)
	}
	if filter.Text != "" {
		id, _ := strconv.ParseInt(filter.Text, 10, 64)
		sb.WriteString(` AND (d.id = ? OR d.name LIKE ?)`)
		args = append(args, id, "%"+filter.Text+"%")
	}
	sb.WriteString(` ORDER BY d.id`)

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(sb.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.DocumentView
	for rows.Next() {
		var v models.DocumentView
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.AuthorID, &v.CreatedAt, &v.StatusID, &v.Version,
			&v.FileType, &v.ContentKey, &v.AuthorName, &v.StatusName); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM documents WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Types returns the distinct non-empty document types in use.
func (r *SQLRepository) Types(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT type FROM documents WHERE type <> '' ORDER BY type`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return types, nil
}
