package service

import (
	"context"
	"errors"
	"time"

	"docuvault/internal/domain"
)

// Shared in-memory fakes for service tests.

type mockLogger struct{}

func (mockLogger) Info(msg string, fields ...interface{})             {}
func (mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (mockLogger) Debug(msg string, fields ...interface{})            {}
func (mockLogger) Warn(msg string, fields ...interface{})             {}

type mockEventRepo struct {
	events     []*domain.DocumentEvent
	countErr   error
	lastFilter domain.DocumentEventFilter
}

func (m *mockEventRepo) Record(ctx context.Context, event *domain.DocumentEvent, token string) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventRepo) Count(ctx context.Context, filter domain.DocumentEventFilter, token string) (int, error) {
	m.lastFilter = filter
	if m.countErr != nil {
		return 0, m.countErr
	}

	count := 0
	for _, event := range m.events {
		if filter.Verb != "" && event.Verb != filter.Verb {
			continue
		}
		if len(filter.DocumentTypeIDs) > 0 && !containsString(filter.DocumentTypeIDs, event.DocumentTypeID) {
			continue
		}
		if filter.ActorID != "" && (event.ActorID == nil || *event.ActorID != filter.ActorID) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockEventRepo) DeleteByDocumentID(ctx context.Context, documentID string, token string) error {
	kept := m.events[:0]
	for _, event := range m.events {
		if event.DocumentID != documentID {
			kept = append(kept, event)
		}
	}
	m.events = kept
	return nil
}

// seedCreated records n document-create events attributed to the actor.
func (m *mockEventRepo) seedCreated(actorID, typeID string, n int) {
	for i := 0; i < n; i++ {
		event := &domain.DocumentEvent{
			Verb:           domain.EventDocumentCreate,
			DocumentTypeID: typeID,
			CreatedAt:      time.Now().UTC(),
		}
		if actorID != "" {
			id := actorID
			event.ActorID = &id
		}
		m.events = append(m.events, event)
	}
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

type mockConfigRepo struct {
	configs []*domain.QuotaConfig
	listErr error
}

func (m *mockConfigRepo) ListEnabled(ctx context.Context) ([]*domain.QuotaConfig, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var enabled []*domain.QuotaConfig
	for _, config := range m.configs {
		if config.Enabled {
			enabled = append(enabled, config)
		}
	}
	return enabled, nil
}

func (m *mockConfigRepo) List(ctx context.Context) ([]*domain.QuotaConfig, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.configs, nil
}

func (m *mockConfigRepo) Create(ctx context.Context, config *domain.QuotaConfig) error {
	m.configs = append(m.configs, config)
	return nil
}

func (m *mockConfigRepo) SetEnabled(ctx context.Context, id string, enabled bool) error {
	for _, config := range m.configs {
		if config.ID == id {
			config.Enabled = enabled
			return nil
		}
	}
	return domain.ErrQuotaConfigNotFound
}

func (m *mockConfigRepo) Delete(ctx context.Context, id string) error {
	for i, config := range m.configs {
		if config.ID == id {
			m.configs = append(m.configs[:i], m.configs[i+1:]...)
			return nil
		}
	}
	return domain.ErrQuotaConfigNotFound
}

type mockDocumentRepo struct {
	documents map[string]*domain.Document
	versions  []*domain.DocumentVersion
	createErr error
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{documents: make(map[string]*domain.Document)}
}

func (m *mockDocumentRepo) Create(ctx context.Context, document *domain.Document, token string) error {
	if m.createErr != nil {
		return m.createErr
	}
	if document.ID == "" {
		return errors.New("document ID is required")
	}
	m.documents[document.ID] = document
	return nil
}

func (m *mockDocumentRepo) GetByID(ctx context.Context, id string, token string) (*domain.Document, error) {
	if doc, exists := m.documents[id]; exists {
		return doc, nil
	}
	return nil, domain.ErrDocumentNotFound
}

func (m *mockDocumentRepo) GetByUserID(ctx context.Context, userID string, token string) ([]*domain.Document, error) {
	var docs []*domain.Document
	for _, doc := range m.documents {
		if doc.UserID == userID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *mockDocumentRepo) Delete(ctx context.Context, id string, token string) error {
	if _, exists := m.documents[id]; !exists {
		return domain.ErrDocumentNotFound
	}
	delete(m.documents, id)
	return nil
}

func (m *mockDocumentRepo) CreateVersion(ctx context.Context, version *domain.DocumentVersion, token string) error {
	m.versions = append(m.versions, version)
	return nil
}

func (m *mockDocumentRepo) GetVersionsByDocumentID(ctx context.Context, documentID string, token string) ([]*domain.DocumentVersion, error) {
	var versions []*domain.DocumentVersion
	for _, version := range m.versions {
		if version.DocumentID == documentID {
			versions = append(versions, version)
		}
	}
	return versions, nil
}
