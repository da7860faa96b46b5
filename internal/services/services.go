// Package services holds the application services behind the CLI:
// registration and login, administration, documents, action history and
// the calendar. Services take the current session explicitly and enforce
// role checks themselves.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/models"
)

// ActionLogger records user actions in the history.
type ActionLogger interface {
	Log(ctx context.Context, s *models.Session, actionType, object, description string, documentID *int64) error
}

// nowFunc is a seam for tests.
var nowFunc = time.Now

func requireSession(s *models.Session) error {
	if s == nil || s.UserID == 0 {
		return common.ErrForbidden
	}
	return nil
}

func requireAdmin(s *models.Session) error {
	if err := requireSession(s); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return common.ErrForbidden
	}
	return nil
}

// record writes an action to the history. A failure is only logged.
func record(ctx context.Context, h ActionLogger, logger logging.Logger, s *models.Session, actionType, object, description string, documentID *int64) {
	if h == nil {
		return
	}
	if err := h.Log(ctx, s, actionType, object, description, documentID); err != nil {
		logger.Warn(ctx, "failed to record action", "type", actionType, "error", err)
	}
}
