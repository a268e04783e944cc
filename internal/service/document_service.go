package service

import (
	"context"
	"fmt"
	"time"

	"docuvault/internal/domain"

	"github.com/google/uuid"
)

// DocumentService implements domain.DocumentService. Every create path
// runs the pre-save quota checks before anything is written.
type DocumentService struct {
	repo   domain.DocumentRepository
	events domain.DocumentEventRepository
	quotas *QuotaService
	logger domain.Logger
}

func NewDocumentService(
	repo domain.DocumentRepository,
	events domain.DocumentEventRepository,
	quotas *QuotaService,
	logger domain.Logger,
) *DocumentService {
	return &DocumentService{
		repo:   repo,
		events: events,
		quotas: quotas,
		logger: logger,
	}
}

// Create persists a new document. The quota checks see the document
// while its ID is still empty; an assigned ID marks an update, which is
// never checked.
func (s *DocumentService) Create(ctx context.Context, actor *domain.User, doc *domain.Document, token string) (*domain.Document, error) {
	if doc.TypeID == "" {
		return nil, domain.ErrDocumentTypeUnknown
	}

	event := domain.PreSaveEvent{Instance: doc, User: actor}
	if err := s.quotas.EnforcePreSave(ctx, domain.SenderDocument, event, token); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc.ID = uuid.New().String()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if err := s.repo.Create(ctx, doc, token); err != nil {
		doc.ID = ""
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	auditEvent := &domain.DocumentEvent{
		ID:             uuid.New().String(),
		Verb:           domain.EventDocumentCreate,
		DocumentID:     doc.ID,
		DocumentTypeID: doc.TypeID,
		CreatedAt:      now,
	}
	if actor != nil {
		actorID := actor.ID
		auditEvent.ActorID = &actorID
	}

	// The count quota reads these records; a miss undercounts until the
	// next successful write.
	if err := s.events.Record(ctx, auditEvent, token); err != nil {
		s.logger.Warn("Failed to record document create event", "document_id", doc.ID, "error", err)
	}

	return doc, nil
}

// AddVersion persists a new version of an existing document. The parent
// document's type is stamped onto the version before the quota checks run.
func (s *DocumentService) AddVersion(ctx context.Context, actor *domain.User, version *domain.DocumentVersion, token string) (*domain.DocumentVersion, error) {
	doc, err := s.repo.GetByID(ctx, version.DocumentID, token)
	if err != nil {
		return nil, err
	}
	version.DocumentTypeID = doc.TypeID

	event := domain.PreSaveEvent{Instance: version, User: actor}
	if err := s.quotas.EnforcePreSave(ctx, domain.SenderDocumentVersion, event, token); err != nil {
		return nil, err
	}

	version.ID = uuid.New().String()
	version.CreatedAt = time.Now().UTC()

	if err := s.repo.CreateVersion(ctx, version, token); err != nil {
		version.ID = ""
		return nil, fmt.Errorf("failed to create document version: %w", err)
	}

	return version, nil
}

func (s *DocumentService) GetDocumentsByUserID(ctx context.Context, userID string, token string) ([]*domain.Document, error) {
	return s.repo.GetByUserID(ctx, userID, token)
}

func (s *DocumentService) GetDocument(ctx context.Context, documentID string, token string) (*domain.Document, error) {
	return s.repo.GetByID(ctx, documentID, token)
}

// GetVersions lists a document's versions, oldest first.
func (s *DocumentService) GetVersions(ctx context.Context, documentID string, token string) ([]*domain.DocumentVersion, error) {
	if _, err := s.repo.GetByID(ctx, documentID, token); err != nil {
		return nil, err
	}
	return s.repo.GetVersionsByDocumentID(ctx, documentID, token)
}

// DeleteDocument removes a document and its events. Removing the
// creation event frees the document's slot under any count quota, so a
// blocked user can retry after deleting.
func (s *DocumentService) DeleteDocument(ctx context.Context, documentID string, token string) error {
	if err := s.repo.Delete(ctx, documentID, token); err != nil {
		return err
	}

	if err := s.events.DeleteByDocumentID(ctx, documentID, token); err != nil {
		s.logger.Warn("Failed to delete document events", "document_id", documentID, "error", err)
	}

	return nil
}
