package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/models"
)

const userColumns = `id, login, password, first_name, last_name, middle_name, role_id, phone, email`

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), args...).Scan(
		&u.ID, &u.Login, &u.Password, &u.FirstName, &u.LastName, &u.MiddleName, &u.RoleID, &u.Phone, &u.Email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// FindByCredentials matches login and stored password in one predicate.
func (r *SQLRepository) FindByCredentials(ctx context.Context, login, password string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = ? AND password = ?`
	return r.findOne(ctx, query, login, password)
}

func (r *SQLRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = ?`
	return r.findOne(ctx, query, login)
}

// FindByContact returns any user whose email or phone matches. Blank values
// never match.
func (r *SQLRepository) FindByContact(ctx context.Context, email, phone string) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE (email <> '' AND email = ?) OR (phone <> '' AND phone = ?)
		 ORDER BY id LIMIT 1`
	return r.findOne(ctx, query, email, phone)
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.findOne(ctx, query, id)
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (login, password, first_name, last_name, middle_name, role_id, phone, email)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		user.Login, user.Password, user.FirstName, user.LastName, user.MiddleName,
		user.RoleID, user.Phone, user.Email).Scan(&user.ID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create user: %w", common.ErrConstraintViolation)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) UpdateRole(ctx context.Context, userID, roleID int64) error {
	query := `UPDATE users SET role_id = ? WHERE id = ?`
	return r.execOne(ctx, query, roleID, userID)
}

func (r *SQLRepository) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM users WHERE id = ?`
	return r.execOne(ctx, query, userID)
}

// execOne runs a statement that must touch exactly one row.
func (r *SQLRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
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

func (r *SQLRepository) List(ctx context.Context) ([]models.UserListItem, error) {
	query :=
		`SELECT u.id, u.login, u.first_name, u.last_name, u.middle_name, u.email, u.phone, COALESCE(r.name, '')
		 FROM users u
		 LEFT JOIN roles r ON r.id = u.role_id
		 ORDER BY u.id`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []models.UserListItem
	for rows.Next() {
		var it models.UserListItem
		if err := rows.Scan(&it.ID, &it.Login, &it.FirstName, &it.LastName, &it.MiddleName, &it.Email, &it.Phone, &it.RoleName); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}
