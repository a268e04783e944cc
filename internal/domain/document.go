package domain

import (
	"context"
	"time"
)

// DocumentType categorizes documents. Quota rules can be scoped to a set of types.
type DocumentType struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	CreatedAt time.Time `json:"created_at"`
}

// Document represents a managed document owned by a user.
// A Document with an empty ID has not been persisted yet.
type Document struct {
	ID     string `json:"id"`
	TypeID string `json:"document_type_id"`
	UserID string `json:"user_id"`

	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
	Language    *string `json:"language,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentVersion represents one stored revision of a document's file.
// DocumentTypeID is denormalized from the parent document so that
// pre-save checks can filter by type without an extra lookup.
// A DocumentVersion with an empty ID has not been persisted yet.
type DocumentVersion struct {
	ID             string `json:"id"`
	DocumentID     string `json:"document_id"`
	DocumentTypeID string `json:"document_type_id"`

	Comment  *string `json:"comment,omitempty"`
	FileName string  `json:"file_name"`
	FileSize int64   `json:"file_size"`
	MimeType string  `json:"mime_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DocumentRepository defines persistence operations for documents and their versions.
type DocumentRepository interface {
	Create(ctx context.Context, document *Document, token string) error
	GetByID(ctx context.Context, id string, token string) (*Document, error)
	GetByUserID(ctx context.Context, userID string, token string) ([]*Document, error)
	Delete(ctx context.Context, id string, token string) error

	CreateVersion(ctx context.Context, version *DocumentVersion, token string) error
	GetVersionsByDocumentID(ctx context.Context, documentID string, token string) ([]*DocumentVersion, error)
}

// DocumentService defines the use-case operations for documents.
// Create and AddVersion run the registered pre-save quota checks
// before anything is written.
type DocumentService interface {
	Create(ctx context.Context, actor *User, doc *Document, token string) (*Document, error)
	AddVersion(ctx context.Context, actor *User, version *DocumentVersion, token string) (*DocumentVersion, error)
	GetDocumentsByUserID(ctx context.Context, userID string, token string) ([]*Document, error)
	GetDocument(ctx context.Context, documentID string, token string) (*Document, error)
	GetVersions(ctx context.Context, documentID string, token string) ([]*DocumentVersion, error)
	DeleteDocument(ctx context.Context, documentID string, token string) error
}
