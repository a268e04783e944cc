package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docuvault/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseQuotaRepository implements the domain.QuotaConfigRepository
// interface. Quota configurations are administrator data, so every
// operation uses the service-role client.
type SupabaseQuotaRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseQuotaRepository creates a new Supabase quota repository
func NewSupabaseQuotaRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.QuotaConfigRepository {
	return &SupabaseQuotaRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

func (r *SupabaseQuotaRepository) list(ctx context.Context, enabledOnly bool) ([]*domain.QuotaConfig, error) {
	client := r.supabaseClient.ServiceRoleDB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	query := client.From("quota_configs").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: true})
	if enabledOnly {
		query = query.Eq("enabled", "true")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list quota configurations: %w", err)
	}

	var configs []*domain.QuotaConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("failed to parse quota configurations: %w", err)
	}

	return configs, nil
}

// ListEnabled returns enabled configurations in creation order.
func (r *SupabaseQuotaRepository) ListEnabled(ctx context.Context) ([]*domain.QuotaConfig, error) {
	return r.list(ctx, true)
}

// List returns every configuration in creation order.
func (r *SupabaseQuotaRepository) List(ctx context.Context) ([]*domain.QuotaConfig, error) {
	return r.list(ctx, false)
}

// Create inserts a new configuration row.
func (r *SupabaseQuotaRepository) Create(ctx context.Context, config *domain.QuotaConfig) error {
	client := r.supabaseClient.ServiceRoleDB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"id":         config.ID,
		"backend_id": config.BackendID,
		"enabled":    config.Enabled,
		"arguments":  config.Arguments,
		"created_at": config.CreatedAt.Format(time.RFC3339),
		"updated_at": config.UpdatedAt.Format(time.RFC3339),
	}

	_, _, err := client.From("quota_configs").Insert(data, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to create quota configuration", err, "backend_id", config.BackendID)
		return fmt.Errorf("failed to create quota configuration: %w", err)
	}

	return nil
}

// SetEnabled toggles a configuration row.
func (r *SupabaseQuotaRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	client := r.supabaseClient.ServiceRoleDB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"enabled":    enabled,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}

	resp, _, err := client.From("quota_configs").Update(data, "representation", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("failed to update quota configuration: %w", err)
	}

	var updated []*domain.QuotaConfig
	if err := json.Unmarshal(resp, &updated); err == nil && len(updated) == 0 {
		return domain.ErrQuotaConfigNotFound
	}

	return nil
}

// Delete removes a configuration row.
func (r *SupabaseQuotaRepository) Delete(ctx context.Context, id string) error {
	client := r.supabaseClient.ServiceRoleDB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From("quota_configs").Delete("", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete quota configuration: %w", err)
	}

	return nil
}
