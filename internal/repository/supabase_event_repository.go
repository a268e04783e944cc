package repository

import (
	"context"
	"fmt"
	"time"

	"docuvault/internal/domain"
)

// SupabaseEventRepository implements the domain.DocumentEventRepository
// interface. Counts run with the service-role client so the quota sees
// every user's creation events, not just the rows visible under the
// caller's RLS policies.
type SupabaseEventRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseEventRepository creates a new Supabase event repository
func NewSupabaseEventRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.DocumentEventRepository {
	return &SupabaseEventRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Record inserts one audit event row.
func (r *SupabaseEventRepository) Record(ctx context.Context, event *domain.DocumentEvent, token string) error {
	client := r.supabaseClient.ServiceRoleDB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"id":               event.ID,
		"verb":             event.Verb,
		"document_id":      event.DocumentID,
		"document_type_id": event.DocumentTypeID,
		"actor_id":         event.ActorID,
		"created_at":       event.CreatedAt.Format(time.RFC3339),
	}

	_, _, err := client.From("document_events").Insert(data, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to record document event", err, "verb", event.Verb, "document_id", event.DocumentID)
		return fmt.Errorf("failed to record document event: %w", err)
	}

	return nil
}

// Count returns the number of events matching the filter, using an
// exact PostgREST count so no rows are transferred.
func (r *SupabaseEventRepository) Count(ctx context.Context, filter domain.DocumentEventFilter, token string) (int, error) {
	client := r.supabaseClient.ServiceRoleDB()
	if client == nil {
		return 0, fmt.Errorf("supabase client not initialized")
	}

	query := client.From("document_events").Select("id", "exact", false)

	if filter.Verb != "" {
		query = query.Eq("verb", filter.Verb)
	}
	if len(filter.DocumentTypeIDs) > 0 {
		query = query.In("document_type_id", filter.DocumentTypeIDs)
	}
	if filter.ActorID != "" {
		query = query.Eq("actor_id", filter.ActorID)
	}

	_, count, err := query.Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count document events: %w", err)
	}

	return int(count), nil
}

// DeleteByDocumentID removes a document's events so they no longer
// count against any quota.
func (r *SupabaseEventRepository) DeleteByDocumentID(ctx context.Context, documentID string, token string) error {
	client := r.supabaseClient.ServiceRoleDB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From("document_events").Delete("", "").Eq("document_id", documentID).Execute()
	if err != nil {
		r.logger.Error("Failed to delete document events", err, "document_id", documentID)
		return fmt.Errorf("failed to delete document events: %w", err)
	}

	return nil
}
