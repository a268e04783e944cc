package service

import (
	"context"
	"errors"
	"fmt"

	"docuvault/internal/domain"
)

type authService struct {
	supabaseClient domain.SupabaseClient
	users          domain.UserRepository
	logger         domain.Logger
}

func NewAuthService(
	supabaseClient domain.SupabaseClient,
	users domain.UserRepository,
	logger domain.Logger,
) *authService {
	return &authService{
		supabaseClient: supabaseClient,
		users:          users,
		logger:         logger,
	}
}

// ValidateToken validates a token and returns user info (for frontend validation)
func (s *authService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	user, err := s.supabaseClient.ValidateToken(token)
	if err != nil {
		s.logger.Error("Failed to validate token with Supabase", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return user, nil
}

// ResolveUser validates the token and loads the acting domain user with
// the profile flags and group memberships the quota checks need. A user
// without a profile row is treated as a regular user with no groups.
func (s *authService) ResolveUser(token string) (*domain.User, error) {
	supaUser, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(context.Background(), supaUser.ID, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return &domain.User{ID: supaUser.ID, Email: supaUser.Email}, nil
		}
		return nil, fmt.Errorf("failed to resolve user %s: %w", supaUser.ID, err)
	}

	return user, nil
}
