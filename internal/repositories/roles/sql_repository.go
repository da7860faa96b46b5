package roles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *SQLRepository) List(ctx context.Context) ([]models.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, access_rights FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.AccessRights); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		result = append(result, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.Role, error) {
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), arg).Scan(&role.ID, &role.Name, &role.AccessRights)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return role, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	return r.getOne(ctx, `SELECT id, name, access_rights FROM roles WHERE id = ?`, id)
}

func (r *SQLRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	return r.getOne(ctx, `SELECT id, name, access_rights FROM roles WHERE name = ?`, name)
}

func (r *SQLRepository) Create(ctx context.Context, role *models.Role) (*models.Role, error) {
	query := `INSERT INTO roles (name, access_rights) VALUES (?, ?) RETURNING id`

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), role.Name, role.AccessRights).Scan(&role.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create role: %w", common.ErrConstraintViolation)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return role, nil
}

func (r *SQLRepository) Update(ctx context.Context, role *models.Role) error {
	query := `UPDATE roles SET name = ?, access_rights = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), role.Name, role.AccessRights, role.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("failed to update role: %w", common.ErrConstraintViolation)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM roles WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

// CountUsers returns how many users reference the role.
func (r *SQLRepository) CountUsers(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT COUNT(*) FROM users WHERE role_id = ?`), id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
