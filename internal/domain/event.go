package domain

import (
	"context"
	"time"
)

// Audit event verbs recorded against documents.
const (
	EventDocumentCreate = "documents.document_create"
)

// DocumentEvent is an audit record linking an actor to something that
// happened to a document. The count quota counts creation events.
type DocumentEvent struct {
	ID             string  `json:"id"`
	Verb           string  `json:"verb"`
	DocumentID     string  `json:"document_id"`
	DocumentTypeID string  `json:"document_type_id"`
	ActorID        *string `json:"actor_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DocumentEventFilter narrows an event count query.
// Zero-valued fields are not applied.
type DocumentEventFilter struct {
	Verb            string
	DocumentTypeIDs []string
	ActorID         string
}

// DocumentEventRepository defines audit event persistence and the
// read-only count query the count quota runs before a save. Events are
// removed with their document: the quota baseline is live documents,
// so a deleted document stops counting immediately.
type DocumentEventRepository interface {
	Record(ctx context.Context, event *DocumentEvent, token string) error
	Count(ctx context.Context, filter DocumentEventFilter, token string) (int, error)
	DeleteByDocumentID(ctx context.Context, documentID string, token string) error
}
