package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/dmitrijs2005/docflow/internal/repositories/repomanager"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CalendarService keeps dated events.
type CalendarService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	history     ActionLogger
	logger      logging.Logger
}

func NewCalendarService(db *sql.DB, rm repomanager.RepositoryManager, history ActionLogger, logger logging.Logger) *CalendarService {
	return &CalendarService{db: db, repomanager: rm, history: history, logger: logger}
}

// Create stores e for the session user after checking its fields.
func (s *CalendarService) Create(ctx context.Context, session *models.Session, e models.CalendarEvent) (*models.CalendarEvent, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	if err := normalizeEvent(&e); err != nil {
		return nil, err
	}
	e.CreatedBy = session.UserID

	created, err := s.repomanager.Events(s.db).Create(ctx, &e)
	if err != nil {
		return nil, err
	}

	record(ctx, s.history, s.logger, session, models.ActionCreate, created.Title, "event on "+created.Date, nil)
	return created, nil
}

func normalizeEvent(e *models.CalendarEvent) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return fmt.Errorf("%w: event title is required", common.ErrValidation)
	}

	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
	}

	start, err := time.Parse(timeLayout, e.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start time must be HH:MM", common.ErrValidation)
	}
	end, err := time.Parse(timeLayout, e.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end time must be HH:MM", common.ErrValidation)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: event must end after it starts", common.ErrValidation)
	}

	if e.Color == "" {
		e.Color = models.DefaultEventColor
	}
	if !colorPattern.MatchString(e.Color) {
		return fmt.Errorf("%w: color must be #RRGGBB", common.ErrValidation)
	}
	e.Color = strings.ToUpper(e.Color)
	return nil
}

// ForDate lists the events on date ordered by start time.
func (s *CalendarService) ForDate(ctx context.Context, date string) ([]models.CalendarEvent, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
	}
	return s.repomanager.Events(s.db).ListByDate(ctx, date)
}
