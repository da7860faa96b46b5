// Package actions is the append-only action history.
package actions

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/models"
)

type Repository interface {
	Create(ctx context.Context, action *models.Action) (*models.Action, error)
	List(ctx context.Context) ([]models.ActionView, error)
	DeleteAll(ctx context.Context) (int64, error)
}
