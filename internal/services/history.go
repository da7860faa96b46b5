package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/dmitrijs2005/docflow/internal/repositories/repomanager"
)

// HistoryService writes and reads the action history.
type HistoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewHistoryService(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *HistoryService {
	return &HistoryService{db: db, repomanager: rm, logger: logger}
}

// Log appends one action on behalf of the session's user.
func (h *HistoryService) Log(ctx context.Context, s *models.Session, actionType, object, description string, documentID *int64) error {
	if err := requireSession(s); err != nil {
		return err
	}
	return h.logWith(ctx, h.db, s, actionType, object, description, documentID)
}

func (h *HistoryService) logWith(ctx context.Context, db dbx.DBTX, s *models.Session, actionType, object, description string, documentID *int64) error {
	_, err := h.repomanager.Actions(db).Create(ctx, &models.Action{
		Type:        actionType,
		Object:      object,
		DocumentID:  documentID,
		UserID:      s.UserID,
		CreatedAt:   nowFunc(),
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to record action: %w", err)
	}
	return nil
}

// List returns the whole history, newest first. Admin only.
func (h *HistoryService) List(ctx context.Context, s *models.Session) ([]models.ActionView, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	return h.repomanager.Actions(h.db).List(ctx)
}

// Clear deletes the history and records the clearing as its first entry,
// atomically. Admin only. Returns how many entries were removed.
func (h *HistoryService) Clear(ctx context.Context, s *models.Session) (int64, error) {
	if err := requireAdmin(s); err != nil {
		return 0, err
	}

	var removed int64
	err := dbx.WithTx(ctx, h.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := h.repomanager.Actions(tx).DeleteAll(ctx)
		if err != nil {
			return err
		}
		removed = n
		return h.logWith(ctx, tx, s, models.ActionClear, "", "history cleared", nil)
	})
	if err != nil {
		return 0, err
	}

	h.logger.Info(ctx, "action history cleared", "user_id", s.UserID, "removed", removed)
	return removed, nil
}
