package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"docuvault/internal/domain"
)

// SupabaseUserRepository implements the domain.UserRepository interface.
// Profile flags and group memberships live in application tables
// (`user_profiles`, `group_members`) keyed by the auth user id.
type SupabaseUserRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseUserRepository creates a new Supabase user repository
func NewSupabaseUserRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.UserRepository {
	return &SupabaseUserRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

type userProfileRow struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
}

type groupMemberRow struct {
	GroupID string `json:"group_id"`
}

// GetByID loads a domain user with profile flags and group memberships.
func (r *SupabaseUserRepository) GetByID(ctx context.Context, userID string, token string) (*domain.User, error) {
	client := r.supabaseClient.ServiceRoleDB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("user_profiles").
		Select("*", "", false).
		Eq("user_id", userID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	var profiles []userProfileRow
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse user profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, domain.ErrUserNotFound
	}
	profile := profiles[0]

	memberData, _, err := client.From("group_members").
		Select("group_id", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get group memberships: %w", err)
	}

	var members []groupMemberRow
	if err := json.Unmarshal(memberData, &members); err != nil {
		return nil, fmt.Errorf("failed to parse group memberships: %w", err)
	}

	groupIDs := make([]string, 0, len(members))
	for _, member := range members {
		groupIDs = append(groupIDs, member.GroupID)
	}

	return &domain.User{
		ID:          profile.UserID,
		Email:       profile.Email,
		IsSuperuser: profile.IsSuperuser,
		IsStaff:     profile.IsStaff,
		GroupIDs:    groupIDs,
	}, nil
}
