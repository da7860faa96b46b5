// Package documents stores document metadata. Contents live in a blob store
// and are referenced by ContentKey.
package documents

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	Search(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentView, error)
	Delete(ctx context.Context, id int64) error
	Types(ctx context.Context) ([]string, error)
}
