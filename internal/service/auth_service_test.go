package service

import (
	"context"
	"testing"
	"time"

	"corpsite/internal/domain"
	"corpsite/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Mock repository for testing
type mockAdminRepository struct {
	admins map[string]*domain.Admin
}

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{admins: make(map[string]*domain.Admin)}
}

func (m *mockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if _, exists := m.admins[admin.Email]; exists {
		return repository.ErrAdminAlreadyExists
	}
	m.admins[admin.Email] = admin
	return nil
}

func (m *mockAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	admin, exists := m.admins[email]
	if !exists {
		return nil, repository.ErrAdminNotFound
	}
	return admin, nil
}

func (m *mockAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	for _, admin := range m.admins {
		if admin.ID == id {
			return admin, nil
		}
	}
	return nil, repository.ErrAdminNotFound
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	repo := newMockAdminRepository()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	token, err := svc.Register(context.Background(), "admin@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token == "" {
		t.Fatal("Register returned empty token")
	}

	admin := repo.admins["admin@example.com"]
	if admin == nil {
		t.Fatal("admin was not stored")
	}
	if admin.PasswordHash == "password123" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Email != admin.Email {
		t.Errorf("claims = %v/%v, want %v/%v", claims.AdminID, claims.Email, admin.ID, admin.Email)
	}
}

func TestRegisterRejectsMismatchAndDuplicates(t *testing.T) {
	repo := newMockAdminRepository()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "a@example.com", "password123", "different"); err != ErrPasswordMismatch {
		t.Errorf("mismatched confirmation: got %v, want ErrPasswordMismatch", err)
	}

	if _, err := svc.Register(context.Background(), "a@example.com", "password123", "password123"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@example.com", "password123", "password123"); err != repository.ErrAdminAlreadyExists {
		t.Errorf("duplicate email: got %v, want ErrAdminAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newMockAdminRepository()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "admin@example.com", "password123", "password123"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	token, admin, err := svc.Login(context.Background(), "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if admin.Email != "admin@example.com" {
		t.Errorf("admin email = %q", admin.Email)
	}
	if _, err := svc.ValidateToken(token); err != nil {
		t.Errorf("login token failed validation: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "admin@example.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "password123"); err != ErrInvalidCredentials {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateTokenRejectsExpiredAndTampered(t *testing.T) {
	repo := newMockAdminRepository()

	expired := NewAuthService(repo, "test-secret", -time.Hour)
	token, err := expired.Register(context.Background(), "admin@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	svc := NewAuthService(repo, "test-secret", time.Hour)
	if _, err := svc.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("expired token: got %v, want ErrInvalidToken", err)
	}

	otherSecret := NewAuthService(repo, "other-secret", time.Hour)
	fresh, _, err := otherSecret.Login(context.Background(), "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.ValidateToken(fresh); err != ErrInvalidToken {
		t.Errorf("foreign signature: got %v, want ErrInvalidToken", err)
	}
}
