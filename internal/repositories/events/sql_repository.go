package events

import (
	"context"
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

func (r *SQLRepository) Create(ctx context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error) {
	query :=
		`INSERT INTO calendar_events (title, description, event_date, start_time, end_time, created_by, color)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		e.Title, e.Description, e.Date, e.StartTime, e.EndTime, e.CreatedBy, e.Color).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// ListByDate returns the events of one day ordered by start time.
func (r *SQLRepository) ListByDate(ctx context.Context, date string) ([]models.CalendarEvent, error) {
	query :=
		`SELECT id, title, description, event_date, start_time, end_time, created_by, color
		 FROM calendar_events
		 WHERE event_date = ?
		 ORDER BY start_time, id`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), date)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.CalendarEvent
	for rows.Next() {
		var e models.CalendarEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.StartTime, &e.EndTime, &e.CreatedBy, &e.Color); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
