// Package users is the credential store: persisted user records and the
// exact-match lookups used by registration, login and administration.
package users

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/models"
)

type Repository interface {
	FindByCredentials(ctx context.Context, login, password string) (*models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	FindByContact(ctx context.Context, email, phone string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdateRole(ctx context.Context, userID, roleID int64) error
	Delete(ctx context.Context, userID int64) error
	List(ctx context.Context) ([]models.UserListItem, error)
}
