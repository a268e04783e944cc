package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"docuvault/internal/domain"
)

func countConfig(id string, limit int) *domain.QuotaConfig {
	arguments, _ := json.Marshal(map[string]interface{}{
		"documents_limit":   limit,
		"document_type_all": true,
		"user_all":          true,
	})
	return &domain.QuotaConfig{
		ID:        id,
		BackendID: BackendDocumentCount,
		Enabled:   true,
		Arguments: arguments,
	}
}

func sizeConfig(id string, limitMB float64) *domain.QuotaConfig {
	arguments, _ := json.Marshal(map[string]interface{}{
		"document_size_limit": limitMB,
		"document_type_all":   true,
		"user_all":            true,
	})
	return &domain.QuotaConfig{
		ID:        id,
		BackendID: BackendDocumentSize,
		Enabled:   true,
		Arguments: arguments,
	}
}

func TestEnforcePreSaveBlocksOnViolation(t *testing.T) {
	events := &mockEventRepo{}
	events.seedCreated("user-1", "type-memo", 1)
	configs := &mockConfigRepo{configs: []*domain.QuotaConfig{countConfig("config-1", 1)}}

	service := NewQuotaService(configs, events, mockLogger{})

	user := regularUser("user-1")
	err := service.EnforcePreSave(context.Background(), domain.SenderDocument, domain.PreSaveEvent{
		Instance: newDocumentFor(user),
		User:     user,
	}, "token")

	if !domain.IsQuotaExceeded(err) {
		t.Fatalf("Expected the count quota to block, got %v", err)
	}
}

func TestEnforcePreSaveSkipsOtherSenders(t *testing.T) {
	events := &mockEventRepo{}
	events.seedCreated("user-1", "type-memo", 10)
	configs := &mockConfigRepo{configs: []*domain.QuotaConfig{countConfig("config-1", 1)}}

	service := NewQuotaService(configs, events, mockLogger{})

	// A version save must not run document-bound backends.
	user := regularUser("user-1")
	err := service.EnforcePreSave(context.Background(), domain.SenderDocumentVersion, domain.PreSaveEvent{
		Instance: newVersionOfSize(1024),
		User:     user,
	}, "token")

	if err != nil {
		t.Fatalf("Expected no check for a different sender, got %v", err)
	}
}

func TestEnforcePreSaveSkipsDisabledConfigs(t *testing.T) {
	events := &mockEventRepo{}
	events.seedCreated("user-1", "type-memo", 10)

	disabled := countConfig("config-1", 1)
	disabled.Enabled = false
	configs := &mockConfigRepo{configs: []*domain.QuotaConfig{disabled}}

	service := NewQuotaService(configs, events, mockLogger{})

	user := regularUser("user-1")
	err := service.EnforcePreSave(context.Background(), domain.SenderDocument, domain.PreSaveEvent{
		Instance: newDocumentFor(user),
		User:     user,
	}, "token")

	if err != nil {
		t.Fatalf("Disabled configurations must not block, got %v", err)
	}
}

func TestEnforcePreSaveSkipsUnknownBackendRows(t *testing.T) {
	stale := &domain.QuotaConfig{ID: "config-1", BackendID: "quotas.RemovedQuota", Enabled: true}
	configs := &mockConfigRepo{configs: []*domain.QuotaConfig{stale, sizeConfig("config-2", 1.0)}}

	service := NewQuotaService(configs, &mockEventRepo{}, mockLogger{})

	// The stale row is skipped; the size quota still runs.
	user := regularUser("user-1")
	err := service.EnforcePreSave(context.Background(), domain.SenderDocumentVersion, domain.PreSaveEvent{
		Instance: newVersionOfSize(5 * 1024 * 1024),
		User:     user,
	}, "token")

	if !domain.IsQuotaExceeded(err) {
		t.Fatalf("Expected the surviving size quota to block, got %v", err)
	}
}

func TestEnforcePreSaveConfigLoadFailure(t *testing.T) {
	configs := &mockConfigRepo{listErr: errors.New("connection refused")}
	service := NewQuotaService(configs, &mockEventRepo{}, mockLogger{})

	user := regularUser("user-1")
	err := service.EnforcePreSave(context.Background(), domain.SenderDocument, domain.PreSaveEvent{
		Instance: newDocumentFor(user),
		User:     user,
	}, "token")

	if err == nil {
		t.Fatal("Expected an error when configurations cannot be loaded")
	}
	if domain.IsQuotaExceeded(err) {
		t.Fatal("A load failure is not a quota violation")
	}
}

func TestDescribeBackends(t *testing.T) {
	service := NewQuotaService(&mockConfigRepo{}, &mockEventRepo{}, mockLogger{})

	descriptions := service.DescribeBackends()
	if len(descriptions) < 2 {
		t.Fatalf("Expected both built-in backends, got %d", len(descriptions))
	}

	byID := map[string]QuotaBackendDescription{}
	for _, description := range descriptions {
		byID[description.ID] = description
	}

	count, exists := byID[BackendDocumentCount]
	if !exists {
		t.Fatal("Count backend missing from descriptions")
	}
	if count.Label != "Document count limit" {
		t.Fatalf("Unexpected label: %q", count.Label)
	}
	if len(count.FieldOrder) == 0 || count.FieldOrder[0] != "documents_limit" {
		t.Fatalf("Unexpected field order: %v", count.FieldOrder)
	}

	size, exists := byID[BackendDocumentSize]
	if !exists {
		t.Fatal("Size backend missing from descriptions")
	}
	if size.Sender != domain.SenderDocumentVersion {
		t.Fatalf("Unexpected sender: %q", size.Sender)
	}
}

func TestCreateConfigValidatesBackend(t *testing.T) {
	configs := &mockConfigRepo{}
	service := NewQuotaService(configs, &mockEventRepo{}, mockLogger{})

	_, err := service.CreateConfig(context.Background(), "quotas.NoSuchQuota", nil)
	if !errors.Is(err, domain.ErrUnknownQuotaBackend) {
		t.Fatalf("Expected unknown backend error, got %v", err)
	}
	if len(configs.configs) != 0 {
		t.Fatal("Nothing should be persisted for an unknown backend")
	}

	config, err := service.CreateConfig(context.Background(), BackendDocumentCount, json.RawMessage(`{"documents_limit": 5, "user_all": true}`))
	if err != nil {
		t.Fatalf("Expected configuration to be created, got %v", err)
	}
	if config.ID == "" {
		t.Fatal("Expected a generated configuration ID")
	}
	if !config.Enabled {
		t.Fatal("New configurations start enabled")
	}
	if len(configs.configs) != 1 {
		t.Fatalf("Expected one persisted configuration, got %d", len(configs.configs))
	}
}

func TestListConfigsIncludesDisplay(t *testing.T) {
	configs := &mockConfigRepo{configs: []*domain.QuotaConfig{
		countConfig("config-1", 5),
		sizeConfig("config-2", 2.0),
	}}
	service := NewQuotaService(configs, &mockEventRepo{}, mockLogger{})

	views, err := service.ListConfigs(context.Background())
	if err != nil {
		t.Fatalf("Expected configurations to list, got %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("Expected two configurations, got %d", len(views))
	}
	if views[0].Display != "document count: 5" {
		t.Fatalf("Unexpected count display: %q", views[0].Display)
	}
	if views[1].Display != "document size: 2.0 MB" {
		t.Fatalf("Unexpected size display: %q", views[1].Display)
	}
}

func TestSetConfigEnabledNotFound(t *testing.T) {
	service := NewQuotaService(&mockConfigRepo{}, &mockEventRepo{}, mockLogger{})

	err := service.SetConfigEnabled(context.Background(), "missing", false)
	if !errors.Is(err, domain.ErrQuotaConfigNotFound) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}
