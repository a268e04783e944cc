package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"docuvault/internal/domain"
)

// Backend identifiers stored in quota configuration rows.
const (
	BackendDocumentCount = "quotas.DocumentCountQuota"
	BackendDocumentSize  = "quotas.DocumentSizeQuota"
)

// BackendDeps carries the collaborators a backend needs to evaluate.
type BackendDeps struct {
	Events domain.DocumentEventRepository
}

// QuotaBackendFactory builds an ephemeral backend instance from the
// JSON arguments stored in a quota configuration row.
type QuotaBackendFactory func(arguments json.RawMessage, deps BackendDeps) (domain.QuotaBackend, error)

var (
	backendFactoriesMu sync.RWMutex
	backendFactories   = make(map[string]QuotaBackendFactory)
)

// RegisterQuotaBackendFactory makes a backend buildable by id.
// Registering the same id twice replaces the previous factory.
func RegisterQuotaBackendFactory(id string, factory QuotaBackendFactory) {
	backendFactoriesMu.Lock()
	defer backendFactoriesMu.Unlock()
	backendFactories[id] = factory
}

// BuildQuotaBackend builds a fresh backend instance for one evaluation.
func BuildQuotaBackend(id string, arguments json.RawMessage, deps BackendDeps) (domain.QuotaBackend, error) {
	backendFactoriesMu.RLock()
	factory, ok := backendFactories[id]
	backendFactoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownQuotaBackend, id)
	}
	return factory(arguments, deps)
}

// QuotaBackendIDs returns the registered backend ids in sorted order.
func QuotaBackendIDs() []string {
	backendFactoriesMu.RLock()
	defer backendFactoriesMu.RUnlock()

	ids := make([]string, 0, len(backendFactories))
	for id := range backendFactories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// scopeArguments are the configuration fields shared by every backend:
// the document-type scope and the actor scope.
type scopeArguments struct {
	DocumentTypeAll bool     `json:"document_type_all"`
	DocumentTypeIDs []string `json:"document_type_ids"`
	UserAll         bool     `json:"user_all"`
	UserIDs         []string `json:"user_ids"`
	GroupIDs        []string `json:"group_ids"`
}

func (a scopeArguments) actorScope() domain.ActorScope {
	return domain.ActorScope{
		AllUsers: a.UserAll,
		UserIDs:  a.UserIDs,
		GroupIDs: a.GroupIDs,
	}
}

func (a scopeArguments) typeScope() domain.DocumentTypeScope {
	return domain.DocumentTypeScope{
		AllTypes: a.DocumentTypeAll,
		TypeIDs:  a.DocumentTypeIDs,
	}
}

type documentCountArguments struct {
	scopeArguments
	DocumentsLimit int `json:"documents_limit"`
}

type documentSizeArguments struct {
	scopeArguments
	DocumentSizeLimit float64 `json:"document_size_limit"`
}

func init() {
	RegisterQuotaBackendFactory(BackendDocumentCount, func(arguments json.RawMessage, deps BackendDeps) (domain.QuotaBackend, error) {
		var args documentCountArguments
		if len(arguments) > 0 {
			if err := json.Unmarshal(arguments, &args); err != nil {
				return nil, fmt.Errorf("invalid document count quota arguments: %w", err)
			}
		}
		return NewDocumentCountQuota(args.DocumentsLimit, args.actorScope(), args.typeScope(), deps.Events), nil
	})

	RegisterQuotaBackendFactory(BackendDocumentSize, func(arguments json.RawMessage, deps BackendDeps) (domain.QuotaBackend, error) {
		var args documentSizeArguments
		if len(arguments) > 0 {
			if err := json.Unmarshal(arguments, &args); err != nil {
				return nil, fmt.Errorf("invalid document size quota arguments: %w", err)
			}
		}
		return NewDocumentSizeQuota(args.DocumentSizeLimit, args.actorScope(), args.typeScope()), nil
	})
}
