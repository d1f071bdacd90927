package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"corpsite/internal/domain"
	"corpsite/internal/middleware"
	"corpsite/internal/repository"
	"corpsite/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockAdminRepo struct {
	byEmail map[string]*domain.Admin
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{byEmail: make(map[string]*domain.Admin)}
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	if _, ok := m.byEmail[admin.Email]; ok {
		return repository.ErrAdminAlreadyExists
	}
	m.byEmail[admin.Email] = admin
	return nil
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	admin, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	return admin, nil
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	for _, admin := range m.byEmail {
		if admin.ID == id {
			return admin, nil
		}
	}
	return nil, repository.ErrAdminNotFound
}

func authRouter() chi.Router {
	auth := service.NewAuthService(newMockAdminRepo(), "test-secret", time.Hour)
	handler := NewAuthHandler(auth, zap.NewNop(), 24*time.Hour, false)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, middleware.BearerAuth(auth, zap.NewNop()))
	return r
}

func registerAdmin(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()
	rec := postJSON(t, router, "/api/auth/register", map[string]string{
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	return resp.Token
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	rec := postJSON(t, authRouter(), "/api/auth/register", map[string]string{
		"email":           "admin@example.com",
		"password":        "password123",
		"confirmPassword": "password124",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	rec := postJSON(t, authRouter(), "/api/auth/register", map[string]string{
		"email":           "admin@example.com",
		"password":        "short",
		"confirmPassword": "short",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	router := authRouter()
	registerAdmin(t, router, "admin@example.com", "password123")

	rec := postJSON(t, router, "/api/auth/register", map[string]string{
		"email":           "admin@example.com",
		"password":        "password123",
		"confirmPassword": "password123",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router := authRouter()
	registerAdmin(t, router, "admin@example.com", "password123")

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "password123",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Error("login response carries no token")
	}

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			session = c
		}
	}
	if session == nil {
		t.Fatal("login did not set the session cookie")
	}
	if session.Value != resp.Token {
		t.Error("cookie value differs from the returned token")
	}
	if !session.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
	if session.SameSite != http.SameSiteLaxMode {
		t.Error("session cookie is not SameSite=Lax")
	}
	if session.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Errorf("cookie MaxAge = %d, want one day", session.MaxAge)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router := authRouter()
	registerAdmin(t, router, "admin@example.com", "password123")

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong-password",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	rec := postJSON(t, authRouter(), "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	router := authRouter()
	token := registerAdmin(t, router, "admin@example.com", "password123")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp map[string]AdminProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode whoami response: %v", err)
	}
	if resp["user"].Email != "admin@example.com" {
		t.Errorf("email = %q, want admin@example.com", resp["user"].Email)
	}
}

func TestMeWithoutToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	authRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
