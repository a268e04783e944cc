package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"docuvault/internal/domain"
)

type mockAuthService struct {
	user *domain.User
	err  error
}

func (m *mockAuthService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SupabaseUser{ID: m.user.ID, Email: m.user.Email}, nil
}

func (m *mockAuthService) ResolveUser(token string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	middleware := NewAuthMiddleware(&mockAuthService{}, &MockHandlerLogger{})

	handler := middleware.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Handler should not run without authorization")
	}))

	req := httptest.NewRequest("GET", "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareInvalidFormat(t *testing.T) {
	middleware := NewAuthMiddleware(&mockAuthService{}, &MockHandlerLogger{})

	handler := middleware.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Handler should not run with a malformed header")
	}))

	req := httptest.NewRequest("GET", "/api/v1/documents", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	middleware := NewAuthMiddleware(&mockAuthService{err: domain.ErrInvalidToken}, &MockHandlerLogger{})

	handler := middleware.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Handler should not run with an invalid token")
	}))

	req := httptest.NewRequest("GET", "/api/v1/documents", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareResolvesActor(t *testing.T) {
	user := &domain.User{ID: "user-1", Email: "user@example.com", GroupIDs: []string{"group-interns"}}
	middleware := NewAuthMiddleware(&mockAuthService{user: user}, &MockHandlerLogger{})

	var actor *domain.User
	var token string
	handler := middleware.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ = GetActorFromContext(r)
		token, _ = GetTokenFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/documents", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if actor == nil || actor.ID != "user-1" {
		t.Fatalf("Expected the resolved actor in context, got %+v", actor)
	}
	if len(actor.GroupIDs) != 1 {
		t.Fatalf("Expected group memberships to survive resolution, got %v", actor.GroupIDs)
	}
	if token != "valid-token" {
		t.Fatalf("Expected token in context, got %q", token)
	}
}
