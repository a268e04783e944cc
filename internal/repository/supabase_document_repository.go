package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docuvault/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseDocumentRepository implements the domain.DocumentRepository interface
type SupabaseDocumentRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseDocumentRepository creates a new Supabase document repository
func NewSupabaseDocumentRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.DocumentRepository {
	return &SupabaseDocumentRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Create inserts a new document row.
func (r *SupabaseDocumentRepository) Create(ctx context.Context, document *domain.Document, token string) error {
	// Use client with token for RLS policies
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	data := map[string]interface{}{
		"id":               document.ID,
		"document_type_id": document.TypeID,
		"user_id":          document.UserID,
		"label":            document.Label,
		"description":      document.Description,
		"language":         document.Language,
		"created_at":       document.CreatedAt.Format(time.RFC3339),
		"updated_at":       document.UpdatedAt.Format(time.RFC3339),
	}

	_, _, err = client.From("documents").Insert(data, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to create document", err, "document_id", document.ID)
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// GetByID fetches a single document.
func (r *SupabaseDocumentRepository) GetByID(ctx context.Context, id string, token string) (*domain.Document, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("documents").
		Select("*", "", false).
		Eq("id", id).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	var documents []*domain.Document
	if err := json.Unmarshal(data, &documents); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if len(documents) == 0 {
		return nil, domain.ErrDocumentNotFound
	}

	return documents[0], nil
}

// GetByUserID fetches all documents owned by a user, newest first.
func (r *SupabaseDocumentRepository) GetByUserID(ctx context.Context, userID string, token string) ([]*domain.Document, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("documents").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var documents []*domain.Document
	if err := json.Unmarshal(data, &documents); err != nil {
		return nil, fmt.Errorf("failed to parse documents: %w", err)
	}

	return documents, nil
}

// Delete removes a document row.
func (r *SupabaseDocumentRepository) Delete(ctx context.Context, id string, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	_, _, err = client.From("documents").Delete("", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

// CreateVersion inserts a new document version row.
func (r *SupabaseDocumentRepository) CreateVersion(ctx context.Context, version *domain.DocumentVersion, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	data := map[string]interface{}{
		"id":               version.ID,
		"document_id":      version.DocumentID,
		"document_type_id": version.DocumentTypeID,
		"comment":          version.Comment,
		"file_name":        version.FileName,
		"file_size":        version.FileSize,
		"mime_type":        version.MimeType,
		"created_at":       version.CreatedAt.Format(time.RFC3339),
	}

	_, _, err = client.From("document_versions").Insert(data, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to create document version", err, "document_id", version.DocumentID)
		return fmt.Errorf("failed to create document version: %w", err)
	}

	return nil
}

// GetVersionsByDocumentID fetches the versions of a document, oldest first.
func (r *SupabaseDocumentRepository) GetVersionsByDocumentID(ctx context.Context, documentID string, token string) ([]*domain.DocumentVersion, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("document_versions").
		Select("*", "", false).
		Eq("document_id", documentID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list document versions: %w", err)
	}

	var versions []*domain.DocumentVersion
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil, fmt.Errorf("failed to parse document versions: %w", err)
	}

	return versions, nil
}
