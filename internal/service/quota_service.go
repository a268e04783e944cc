package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docuvault/internal/domain"

	"github.com/google/uuid"
)

// QuotaService is the pre-save dispatcher: it loads enabled quota
// configurations, builds a fresh backend from each, and runs the ones
// bound to the saved model synchronously before the row is written.
type QuotaService struct {
	configs domain.QuotaConfigRepository
	events  domain.DocumentEventRepository
	logger  domain.Logger
}

func NewQuotaService(
	configs domain.QuotaConfigRepository,
	events domain.DocumentEventRepository,
	logger domain.Logger,
) *QuotaService {
	return &QuotaService{
		configs: configs,
		events:  events,
		logger:  logger,
	}
}

func (s *QuotaService) deps() BackendDeps {
	return BackendDeps{Events: s.events}
}

// EnforcePreSave runs every enabled backend bound to (sender, pre_save)
// against the candidate instance, in stored configuration order. The
// first quota violation aborts the save.
func (s *QuotaService) EnforcePreSave(ctx context.Context, sender domain.QuotaSender, event domain.PreSaveEvent, token string) error {
	configs, err := s.configs.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to load quota configurations: %w", err)
	}

	for _, config := range configs {
		backend, err := BuildQuotaBackend(config.BackendID, config.Arguments, s.deps())
		if err != nil {
			// A stale row referencing a removed backend must not block writes.
			s.logger.Warn("Skipping unusable quota configuration", "id", config.ID, "backend", config.BackendID, "error", err)
			continue
		}

		if backend.Sender() != sender || backend.Signal() != domain.SignalPreSave {
			continue
		}

		if err := backend.Process(ctx, event, token); err != nil {
			if domain.IsQuotaExceeded(err) {
				s.logger.Info("Quota blocked save", "backend", config.BackendID, "limit", backend.AllowedFilterDisplay())
			}
			return err
		}
	}

	return nil
}

// QuotaBackendDescription is the administrator-facing description of a
// registered backend: its label and configuration field schema.
type QuotaBackendDescription struct {
	ID         string                       `json:"id"`
	Label      string                       `json:"label"`
	Fields     map[string]domain.QuotaField `json:"fields"`
	FieldOrder []string                     `json:"field_order"`
	Sender     domain.QuotaSender           `json:"sender"`
	Signal     domain.QuotaSignal           `json:"signal"`
}

// DescribeBackends lists every registered backend with its field schema.
func (s *QuotaService) DescribeBackends() []QuotaBackendDescription {
	ids := QuotaBackendIDs()
	descriptions := make([]QuotaBackendDescription, 0, len(ids))

	for _, id := range ids {
		backend, err := BuildQuotaBackend(id, nil, s.deps())
		if err != nil {
			continue
		}
		descriptions = append(descriptions, QuotaBackendDescription{
			ID:         id,
			Label:      backend.Label(),
			Fields:     backend.Fields(),
			FieldOrder: backend.FieldOrder(),
			Sender:     backend.Sender(),
			Signal:     backend.Signal(),
		})
	}

	return descriptions
}

// QuotaConfigView is a stored configuration together with the backend's
// human-readable limit summary.
type QuotaConfigView struct {
	*domain.QuotaConfig
	Display string `json:"display"`
}

// ListConfigs returns every stored configuration with its display string.
func (s *QuotaService) ListConfigs(ctx context.Context) ([]*QuotaConfigView, error) {
	configs, err := s.configs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quota configurations: %w", err)
	}

	views := make([]*QuotaConfigView, 0, len(configs))
	for _, config := range configs {
		view := &QuotaConfigView{QuotaConfig: config}
		if backend, err := BuildQuotaBackend(config.BackendID, config.Arguments, s.deps()); err == nil {
			view.Display = backend.AllowedFilterDisplay()
		}
		views = append(views, view)
	}

	return views, nil
}

// CreateConfig validates that the backend builds from the supplied
// arguments, then persists the configuration enabled.
func (s *QuotaService) CreateConfig(ctx context.Context, backendID string, arguments json.RawMessage) (*domain.QuotaConfig, error) {
	if _, err := BuildQuotaBackend(backendID, arguments, s.deps()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	config := &domain.QuotaConfig{
		ID:        uuid.New().String(),
		BackendID: backendID,
		Enabled:   true,
		Arguments: arguments,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.configs.Create(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to create quota configuration: %w", err)
	}

	s.logger.Info("Quota configuration created", "id", config.ID, "backend", backendID)
	return config, nil
}

// SetConfigEnabled toggles a stored configuration.
func (s *QuotaService) SetConfigEnabled(ctx context.Context, id string, enabled bool) error {
	return s.configs.SetEnabled(ctx, id, enabled)
}

// DeleteConfig removes a stored configuration.
func (s *QuotaService) DeleteConfig(ctx context.Context, id string) error {
	return s.configs.Delete(ctx, id)
}
