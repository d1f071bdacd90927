package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"corpsite/internal/domain"
	"corpsite/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
)

// Claims represents the JWT claims carried by an admin session token
type Claims struct {
	AdminID uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	jwt.RegisteredClaims
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	Register(ctx context.Context, email, password, confirmPassword string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, admin *domain.Admin, err error)
	ValidateToken(tokenString string) (*Claims, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
}

type authService struct {
	adminRepo   repository.AdminRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(adminRepo repository.AdminRepository, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		adminRepo:   adminRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// Register creates a new admin account with a hashed password and issues a
// session token for it.
func (s *authService) Register(ctx context.Context, email, password, confirmPassword string) (string, error) {
	if password != confirmPassword {
		return "", ErrPasswordMismatch
	}

	// Check email uniqueness before hashing
	existing, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil && err != repository.ErrAdminNotFound {
		return "", fmt.Errorf("failed to check existing admin: %w", err)
	}
	if existing != nil {
		return "", repository.ErrAdminAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.Admin{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return "", err
	}

	return s.generateToken(admin)
}

// Login authenticates an admin and returns a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrAdminNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return "", nil, err
	}

	return token, admin, nil
}

// ValidateToken verifies signature and expiry and returns the claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetAdminByID retrieves an admin account by ID.
func (s *authService) GetAdminByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return s.adminRepo.FindByID(ctx, id)
}

func (s *authService) generateToken(admin *domain.Admin) (string, error) {
	now := time.Now()
	claims := Claims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
