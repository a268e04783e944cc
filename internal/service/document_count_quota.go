package service

import (
	"context"
	"fmt"

	"docuvault/internal/domain"
)

// DocumentCountQuota blocks the creation of a new document when the
// number of documents already created by an in-scope actor has reached
// the configured limit.
type DocumentCountQuota struct {
	DocumentsLimit int
	Actors         domain.ActorScope
	Types          domain.DocumentTypeScope

	events domain.DocumentEventRepository
}

// NewDocumentCountQuota creates a count quota backend from stored configuration.
func NewDocumentCountQuota(
	documentsLimit int,
	actors domain.ActorScope,
	types domain.DocumentTypeScope,
	events domain.DocumentEventRepository,
) *DocumentCountQuota {
	return &DocumentCountQuota{
		DocumentsLimit: documentsLimit,
		Actors:         actors,
		Types:          types,
		events:         events,
	}
}

func (q *DocumentCountQuota) Label() string {
	return "Document count limit"
}

func (q *DocumentCountQuota) Fields() map[string]domain.QuotaField {
	return map[string]domain.QuotaField{
		"documents_limit": {
			Label:    "Documents limit",
			Kind:     "integer",
			HelpText: "Maximum number of documents.",
		},
	}
}

func (q *DocumentCountQuota) FieldOrder() []string {
	return []string{"documents_limit"}
}

func (q *DocumentCountQuota) Sender() domain.QuotaSender {
	return domain.SenderDocument
}

func (q *DocumentCountQuota) Signal() domain.QuotaSignal {
	return domain.SignalPreSave
}

func (q *DocumentCountQuota) allowed() int {
	return q.DocumentsLimit
}

// AllowedFilterDisplay returns the configured limit for display purposes.
func (q *DocumentCountQuota) AllowedFilterDisplay() string {
	return fmt.Sprintf("document count: %d", q.allowed())
}

// userDocumentCount returns the number of creation events that count
// against this quota for the given user. A zero count for an exempt or
// out-of-scope user is indistinguishable from "no violation".
func (q *DocumentCountQuota) userDocumentCount(ctx context.Context, user *domain.User, token string) (int, error) {
	filter := domain.DocumentEventFilter{Verb: domain.EventDocumentCreate}

	if !q.Types.AllTypes {
		// An explicit scope with no types matches nothing.
		if len(q.Types.TypeIDs) == 0 {
			return 0, nil
		}
		filter.DocumentTypeIDs = q.Types.TypeIDs
	}

	if user != nil {
		// Admins are always excluded
		if user.IsPrivileged() {
			return 0, nil
		}

		if !q.Actors.AllUsers && !q.Actors.Matches(user) {
			return 0, nil
		}

		filter.ActorID = user.ID
	}

	return q.events.Count(ctx, filter, token)
}

// Process runs the check before a Document row is written.
func (q *DocumentCountQuota) Process(ctx context.Context, event domain.PreSaveEvent, token string) error {
	document, ok := event.Instance.(*domain.Document)
	if !ok {
		return nil
	}

	// Only for new documents
	if document.ID != "" {
		return nil
	}

	count, err := q.userDocumentCount(ctx, event.User, token)
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}

	if count >= q.allowed() {
		return &domain.QuotaExceededError{Message: "Document count quota exceeded."}
	}

	return nil
}
