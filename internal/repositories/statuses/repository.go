// Package statuses reads the seeded document statuses.
package statuses

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Status, error)
	GetByName(ctx context.Context, name string) (*models.Status, error)
}
