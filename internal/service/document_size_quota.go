package service

import (
	"context"
	"fmt"

	"docuvault/internal/domain"
)

// DocumentSizeQuota blocks the creation of a new document version whose
// file size reaches the configured limit for an in-scope actor.
type DocumentSizeQuota struct {
	// DocumentSizeLimit is the configured threshold in megabytes.
	DocumentSizeLimit float64
	Actors            domain.ActorScope
	Types             domain.DocumentTypeScope
}

// NewDocumentSizeQuota creates a size quota backend from stored configuration.
func NewDocumentSizeQuota(
	documentSizeLimit float64,
	actors domain.ActorScope,
	types domain.DocumentTypeScope,
) *DocumentSizeQuota {
	return &DocumentSizeQuota{
		DocumentSizeLimit: documentSizeLimit,
		Actors:            actors,
		Types:             types,
	}
}

func (q *DocumentSizeQuota) Label() string {
	return "Document size limit"
}

func (q *DocumentSizeQuota) Fields() map[string]domain.QuotaField {
	return map[string]domain.QuotaField{
		"document_size_limit": {
			Label:    "Document size limit",
			Kind:     "float",
			HelpText: "Maximum document size in megabytes (MB).",
		},
	}
}

func (q *DocumentSizeQuota) FieldOrder() []string {
	return []string{"document_size_limit"}
}

func (q *DocumentSizeQuota) Sender() domain.QuotaSender {
	return domain.SenderDocumentVersion
}

func (q *DocumentSizeQuota) Signal() domain.QuotaSignal {
	return domain.SignalPreSave
}

// allowed returns the threshold in bytes (MB x 1024 x 1024).
func (q *DocumentSizeQuota) allowed() int64 {
	return int64(q.DocumentSizeLimit * 1024 * 1024)
}

// AllowedFilterDisplay returns the configured limit for display purposes.
func (q *DocumentSizeQuota) AllowedFilterDisplay() string {
	return fmt.Sprintf("document size: %s", formatFileSize(q.allowed()))
}

// Process runs the check before a DocumentVersion row is written.
func (q *DocumentSizeQuota) Process(ctx context.Context, event domain.PreSaveEvent, token string) error {
	version, ok := event.Instance.(*domain.DocumentVersion)
	if !ok {
		return nil
	}

	// Only for new versions
	if version.ID != "" {
		return nil
	}

	if version.FileSize < q.allowed() {
		return nil
	}

	if !q.Types.Matches(version.DocumentTypeID) {
		return nil
	}

	// Don't assume there is always a user in the event.
	// Non-interactive uploads might not include one.
	if event.User.IsPrivileged() {
		return nil
	}

	if q.Actors.AllUsers || q.Actors.Matches(event.User) {
		return &domain.QuotaExceededError{Message: "Document size quota exceeded."}
	}

	return nil
}
