package domain

import (
	"context"
	"encoding/json"
	"time"
)

// QuotaSignal identifies the persistence lifecycle hook a backend binds to.
type QuotaSignal string

const (
	// SignalPreSave fires immediately before a row is written. A backend
	// returning an error from Process aborts the pending save.
	SignalPreSave QuotaSignal = "pre_save"
)

// QuotaSender identifies the model class a backend binds to.
type QuotaSender string

const (
	SenderDocument        QuotaSender = "document"
	SenderDocumentVersion QuotaSender = "document_version"
)

// PreSaveEvent carries the candidate instance and the acting user into a
// quota backend. User may be nil for non-interactive writes.
type PreSaveEvent struct {
	Instance interface{}
	User     *User
}

// QuotaField describes one administrator-facing configuration field.
type QuotaField struct {
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	HelpText string `json:"help_text"`
}

// QuotaBackend is a configured rule object that can veto a persistence
// operation. Instances are ephemeral: built fresh from a stored
// configuration for each save attempt, used once, discarded.
type QuotaBackend interface {
	Label() string
	Fields() map[string]QuotaField
	FieldOrder() []string
	Sender() QuotaSender
	Signal() QuotaSignal

	// AllowedFilterDisplay returns a human-readable summary of the
	// configured limit. Display only, no effect on enforcement.
	AllowedFilterDisplay() string

	// Process evaluates the rule against a candidate save. It returns a
	// QuotaExceededError to block the save, nil to allow it.
	Process(ctx context.Context, event PreSaveEvent, token string) error
}

// ActorScope is the set of users a quota rule applies to: either all
// users, or an explicit set of user ids plus members of explicit groups.
type ActorScope struct {
	AllUsers bool     `json:"user_all"`
	UserIDs  []string `json:"user_ids"`
	GroupIDs []string `json:"group_ids"`
}

// Matches reports whether the user falls inside the explicit scope.
// It does not consider AllUsers; callers branch on that first.
func (s ActorScope) Matches(user *User) bool {
	if user == nil {
		return false
	}
	for _, id := range s.UserIDs {
		if id == user.ID {
			return true
		}
	}
	for _, groupID := range s.GroupIDs {
		for _, memberOf := range user.GroupIDs {
			if groupID == memberOf {
				return true
			}
		}
	}
	return false
}

// DocumentTypeScope is the set of document types a quota rule applies to.
type DocumentTypeScope struct {
	AllTypes bool     `json:"document_type_all"`
	TypeIDs  []string `json:"document_type_ids"`
}

// Matches reports whether the type is in scope. An all-types scope
// matches every type.
func (s DocumentTypeScope) Matches(typeID string) bool {
	if s.AllTypes {
		return true
	}
	for _, id := range s.TypeIDs {
		if id == typeID {
			return true
		}
	}
	return false
}

// QuotaConfig is one persisted quota rule: which backend to build and
// the JSON arguments to build it with.
type QuotaConfig struct {
	ID        string          `json:"id"`
	BackendID string          `json:"backend_id"`
	Enabled   bool            `json:"enabled"`
	Arguments json.RawMessage `json:"arguments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuotaConfigRepository defines persistence for quota configurations.
// ListEnabled returns enabled configs in creation order; dispatch order
// follows it.
type QuotaConfigRepository interface {
	ListEnabled(ctx context.Context) ([]*QuotaConfig, error)
	List(ctx context.Context) ([]*QuotaConfig, error)
	Create(ctx context.Context, config *QuotaConfig) error
	SetEnabled(ctx context.Context, id string, enabled bool) error
	Delete(ctx context.Context, id string) error
}
