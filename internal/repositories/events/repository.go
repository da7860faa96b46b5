// Package events stores calendar events.
package events

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.CalendarEvent) (*models.CalendarEvent, error)
	ListByDate(ctx context.Context, date string) ([]models.CalendarEvent, error)
}
