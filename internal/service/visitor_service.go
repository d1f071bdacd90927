package service

import (
	"context"
	"time"

	"corpsite/internal/domain"
	"corpsite/internal/repository"

	"github.com/google/uuid"
)

// VisitorService owns the contact-message inbox. Creation comes from the
// public form; listing and deletion from the admin panel.
type VisitorService interface {
	List(ctx context.Context) ([]*domain.Visitor, error)
	Create(ctx context.Context, name, email, phone, message string) (*domain.Visitor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type visitorService struct {
	repo repository.VisitorRepository
}

// NewVisitorService creates a new instance of VisitorService
func NewVisitorService(repo repository.VisitorRepository) VisitorService {
	return &visitorService{repo: repo}
}

func (s *visitorService) List(ctx context.Context) ([]*domain.Visitor, error) {
	return s.repo.List(ctx)
}

func (s *visitorService) Create(ctx context.Context, name, email, phone, message string) (*domain.Visitor, error) {
	visitor := &domain.Visitor{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, visitor); err != nil {
		return nil, err
	}

	return visitor, nil
}

func (s *visitorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
