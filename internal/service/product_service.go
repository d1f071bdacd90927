package service

import (
	"context"
	"time"

	"corpsite/internal/domain"
	"corpsite/internal/repository"
	"corpsite/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductInput carries the form fields of a product create or update.
// Missing fields arrive as zero values, matching the form's defaulting
// behavior.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Specs       []string
}

// ProductService owns product records and their image lifecycle.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput, upload *Upload) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput, upload *Upload) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo   repository.ProductRepository
	store  storage.Store
	logger *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(repo repository.ProductRepository, store storage.Store, logger *zap.Logger) ProductService {
	return &productService{repo: repo, store: store, logger: logger}
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create uploads the image first (if any), then inserts the record carrying
// the resulting URL.
func (s *productService) Create(ctx context.Context, input ProductInput, upload *Upload) (*domain.Product, error) {
	imageURL := ""
	if upload != nil {
		url, err := putUpload(ctx, s.store, "products", upload)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Specs:       input.Specs,
		Image:       imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Update replaces the fields of an existing product. A new upload replaces
// the stored image; the old file is deleted best-effort afterwards.
func (s *productService) Update(ctx context.Context, id uuid.UUID, input ProductInput, upload *Upload) (*domain.Product, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL := current.Image
	if upload != nil {
		url, err := putUpload(ctx, s.store, "products", upload)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	product := &domain.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Specs:       input.Specs,
		Image:       imageURL,
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	if upload != nil && current.Image != "" {
		discardFile(ctx, s.store, s.logger, current.Image)
	}

	return product, nil
}

// Delete removes the image file first (best-effort), then the record.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	discardFile(ctx, s.store, s.logger, product.Image)

	return s.repo.Delete(ctx, id)
}
