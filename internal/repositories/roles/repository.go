// Package roles stores the named roles users are assigned to.
package roles

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Role, error)
	GetByID(ctx context.Context, id int64) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) (*models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id int64) error
	CountUsers(ctx context.Context, id int64) (int, error)
}
