package service

import (
	"context"
	"time"

	"corpsite/internal/domain"
	"corpsite/internal/repository"
	"corpsite/internal/slug"
	"corpsite/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BlogInput carries the form fields of a blog create or update. An empty
// Slug means "derive one from the title".
type BlogInput struct {
	Title   string
	Slug    string
	Content string
	Author  string
}

// BlogService owns blog records, their permalink slugs, and their cover
// image lifecycle.
type BlogService interface {
	List(ctx context.Context) ([]*domain.Blog, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	GetBySlug(ctx context.Context, s string) (*domain.Blog, error)
	Create(ctx context.Context, input BlogInput, upload *Upload) (*domain.Blog, error)
	Update(ctx context.Context, id uuid.UUID, input BlogInput, upload *Upload) (*domain.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blogService struct {
	repo   repository.BlogRepository
	store  storage.Store
	logger *zap.Logger
}

// NewBlogService creates a new instance of BlogService
func NewBlogService(repo repository.BlogRepository, store storage.Store, logger *zap.Logger) BlogService {
	return &blogService{repo: repo, store: store, logger: logger}
}

func (s *blogService) List(ctx context.Context) ([]*domain.Blog, error) {
	return s.repo.List(ctx)
}

func (s *blogService) Get(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *blogService) GetBySlug(ctx context.Context, slugValue string) (*domain.Blog, error) {
	return s.repo.FindBySlug(ctx, slugValue)
}

func (s *blogService) Create(ctx context.Context, input BlogInput, upload *Upload) (*domain.Blog, error) {
	imageURL := ""
	if upload != nil {
		url, err := putUpload(ctx, s.store, "blog", upload)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	now := time.Now()
	blog := &domain.Blog{
		ID:        uuid.New(),
		Title:     input.Title,
		Slug:      resolveSlug(input),
		Content:   input.Content,
		Author:    input.Author,
		Image:     imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, input BlogInput, upload *Upload) (*domain.Blog, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL := current.Image
	if upload != nil {
		url, err := putUpload(ctx, s.store, "blog", upload)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	blog := &domain.Blog{
		ID:        id,
		Title:     input.Title,
		Slug:      resolveSlug(input),
		Content:   input.Content,
		Author:    input.Author,
		Image:     imageURL,
		CreatedAt: current.CreatedAt,
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}

	if upload != nil && current.Image != "" {
		discardFile(ctx, s.store, s.logger, current.Image)
	}

	return blog, nil
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	discardFile(ctx, s.store, s.logger, blog.Image)

	return s.repo.Delete(ctx, id)
}

// resolveSlug uses the submitted slug when present, otherwise derives one
// from the title. Uniqueness is enforced only by the database constraint.
func resolveSlug(input BlogInput) string {
	if input.Slug != "" {
		return input.Slug
	}
	return slug.Make(input.Title)
}
