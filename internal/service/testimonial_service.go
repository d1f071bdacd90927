package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"corpsite/internal/domain"
	"corpsite/internal/repository"
	"corpsite/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxTestimonialImageSize caps testimonial photo uploads at 5MB.
const MaxTestimonialImageSize = 5 << 20

var (
	ErrNotAnImage   = errors.New("uploaded file must be an image")
	ErrFileTooLarge = errors.New("uploaded file exceeds the 5MB limit")
	ErrBadRating    = errors.New("rating must be between 1 and 5")
)

// TestimonialInput carries the form fields of a testimonial create or update.
type TestimonialInput struct {
	Name    string
	Company string
	Message string
	Rating  int
}

// TestimonialService owns testimonial records. Unlike the other collections
// it validates uploads (image type, 5MB cap) before touching the store.
type TestimonialService interface {
	List(ctx context.Context) ([]*domain.Testimonial, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error)
	Create(ctx context.Context, input TestimonialInput, upload *Upload) (*domain.Testimonial, error)
	Update(ctx context.Context, id uuid.UUID, input TestimonialInput, upload *Upload) (*domain.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type testimonialService struct {
	repo   repository.TestimonialRepository
	store  storage.Store
	logger *zap.Logger
}

// NewTestimonialService creates a new instance of TestimonialService
func NewTestimonialService(repo repository.TestimonialRepository, store storage.Store, logger *zap.Logger) TestimonialService {
	return &testimonialService{repo: repo, store: store, logger: logger}
}

func (s *testimonialService) List(ctx context.Context) ([]*domain.Testimonial, error) {
	return s.repo.List(ctx)
}

func (s *testimonialService) Get(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *testimonialService) Create(ctx context.Context, input TestimonialInput, upload *Upload) (*domain.Testimonial, error) {
	if err := validateTestimonial(input, upload); err != nil {
		return nil, err
	}

	imageURL := ""
	if upload != nil {
		url, err := putUpload(ctx, s.store, "testimonials", upload)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	now := time.Now()
	testimonial := &domain.Testimonial{
		ID:        uuid.New(),
		Name:      input.Name,
		Company:   input.Company,
		Message:   input.Message,
		Rating:    input.Rating,
		Image:     imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, testimonial); err != nil {
		return nil, err
	}

	return testimonial, nil
}

func (s *testimonialService) Update(ctx context.Context, id uuid.UUID, input TestimonialInput, upload *Upload) (*domain.Testimonial, error) {
	if err := validateTestimonial(input, upload); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL := current.Image
	if upload != nil {
		url, err := putUpload(ctx, s.store, "testimonials", upload)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	testimonial := &domain.Testimonial{
		ID:        id,
		Name:      input.Name,
		Company:   input.Company,
		Message:   input.Message,
		Rating:    input.Rating,
		Image:     imageURL,
		CreatedAt: current.CreatedAt,
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Update(ctx, testimonial); err != nil {
		return nil, err
	}

	if upload != nil && current.Image != "" {
		discardFile(ctx, s.store, s.logger, current.Image)
	}

	return testimonial, nil
}

func (s *testimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	testimonial, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	discardFile(ctx, s.store, s.logger, testimonial.Image)

	return s.repo.Delete(ctx, id)
}

func validateTestimonial(input TestimonialInput, upload *Upload) error {
	if input.Rating < 1 || input.Rating > 5 {
		return ErrBadRating
	}
	if upload != nil {
		if !strings.HasPrefix(upload.ContentType, "image/") {
			return ErrNotAnImage
		}
		if upload.Size > MaxTestimonialImageSize {
			return ErrFileTooLarge
		}
	}
	return nil
}
