package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docflow/internal/blobstore"
	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/dmitrijs2005/docflow/internal/repositories/repomanager"
)

// NewDocument is a document as entered for registration. FileName is only
// used for its extension.
type NewDocument struct {
	Name     string
	Type     string
	Status   string
	FileName string
	Content  []byte
}

// DocumentService registers, searches, downloads and deletes documents.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blobstore.Store
	history     ActionLogger
	logger      logging.Logger
}

func NewDocumentService(db *sql.DB, rm repomanager.RepositoryManager, blobs blobstore.Store, history ActionLogger, logger logging.Logger) *DocumentService {
	return &DocumentService{db: db, repomanager: rm, blobs: blobs, history: history, logger: logger}
}

// Register stores the content and the document row authored by the session
// user. An empty status means "Создан".
func (s *DocumentService) Register(ctx context.Context, session *models.Session, d NewDocument) (*models.Document, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, fmt.Errorf("%w: document name is required", common.ErrValidation)
	}
	if len(d.Content) == 0 {
		return nil, fmt.Errorf("%w: document content is required", common.ErrValidation)
	}
	if d.Status == "" {
		d.Status = models.StatusCreated
	}

	status, err := s.repomanager.Statuses(s.db).GetByName(ctx, d.Status)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, d.Status)
	}
	if err != nil {
		return nil, err
	}

	now := nowFunc().UTC()
	key := blobstore.NewKey(now)
	if err := s.blobs.Put(ctx, key, d.Content); err != nil {
		return nil, fmt.Errorf("failed to store document content: %w", err)
	}

	doc, err := s.repomanager.Documents(s.db).Create(ctx, &models.Document{
		Name:       d.Name,
		Type:       strings.TrimSpace(d.Type),
		AuthorID:   session.UserID,
		CreatedAt:  now,
		StatusID:   status.ID,
		Version:    1,
		FileType:   strings.ToLower(filepath.Ext(d.FileName)),
		ContentKey: key,
	})
	if err != nil {
		if derr := s.blobs.Delete(ctx, key); derr != nil {
			s.logger.Warn(ctx, "failed to remove orphaned content", "key", key, "error", derr)
		}
		return nil, err
	}

	s.logger.Info(ctx, "document registered", "document_id", doc.ID, "user_id", session.UserID)
	record(ctx, s.history, s.logger, session, models.ActionCreate, doc.Name, "document registered", &doc.ID)
	return doc, nil
}

// Search lists documents matching filter.
func (s *DocumentService) Search(ctx context.Context, session *models.Session, filter models.DocumentFilter) ([]models.DocumentView, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	docs, err := s.repomanager.Documents(s.db).Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	record(ctx, s.history, s.logger, session, models.ActionSearch, filter.Text, fmt.Sprintf("found %d documents", len(docs)), nil)
	return docs, nil
}

// Download returns the file name (document name plus extension) and content.
func (s *DocumentService) Download(ctx context.Context, session *models.Session, id int64) (string, []byte, error) {
	if err := requireSession(session); err != nil {
		return "", nil, err
	}

	doc, err := s.repomanager.Documents(s.db).GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}

	data, err := s.blobs.Get(ctx, doc.ContentKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load document content: %w", err)
	}

	record(ctx, s.history, s.logger, session, models.ActionDownload, doc.Name, "document downloaded", &doc.ID)
	return doc.Name + doc.FileType, data, nil
}

// Delete removes the document row and its content.
func (s *DocumentService) Delete(ctx context.Context, session *models.Session, id int64) error {
	if err := requireSession(session); err != nil {
		return err
	}

	docs := s.repomanager.Documents(s.db)
	doc, err := docs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := docs.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, doc.ContentKey); err != nil {
		s.logger.Warn(ctx, "failed to remove document content", "key", doc.ContentKey, "error", err)
	}

	s.logger.Info(ctx, "document deleted", "document_id", id, "user_id", session.UserID)
	record(ctx, s.history, s.logger, session, models.ActionDelete, doc.Name, "document deleted", nil)
	return nil
}

// Statuses returns the status names in id order.
func (s *DocumentService) Statuses(ctx context.Context) ([]string, error) {
	list, err := s.repomanager.Statuses(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, st := range list {
		names = append(names, st.Name)
	}
	return names, nil
}

// Types returns the distinct document types already in use.
func (s *DocumentService) Types(ctx context.Context) ([]string, error) {
	return s.repomanager.Documents(s.db).Types(ctx)
}
