package domain

import (
	"context"
	"time"
)

// User represents an acting user resolved from the auth layer,
// including the flags and group memberships quota rules care about.
type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	IsSuperuser bool     `json:"is_superuser"`
	IsStaff     bool     `json:"is_staff"`
	GroupIDs    []string `json:"group_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPrivileged reports whether the user is exempt from every quota check.
func (u *User) IsPrivileged() bool {
	return u != nil && (u.IsSuperuser || u.IsStaff)
}

// Group is a named collection of users that quota rules can be scoped to.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SupabaseUser represents a user from Supabase Auth
type SupabaseUser struct {
	ID           string
	Email        string
	UserMetadata map[string]interface{}
	CreatedAt    string
	UpdatedAt    string
}

// UserRepository resolves auth users into domain users with
// profile flags and group memberships.
type UserRepository interface {
	GetByID(ctx context.Context, userID string, token string) (*User, error)
}
