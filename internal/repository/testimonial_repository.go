package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"corpsite/internal/domain"

	"github.com/google/uuid"
)

var ErrTestimonialNotFound = errors.New("testimonial not found")

// TestimonialRepository defines the interface for testimonial data access
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *domain.Testimonial) error
	Update(ctx context.Context, testimonial *domain.Testimonial) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error)
	List(ctx context.Context) ([]*domain.Testimonial, error)
}

type testimonialRepository struct {
	db *sql.DB
}

// NewTestimonialRepository creates a new instance of TestimonialRepository
func NewTestimonialRepository(db *sql.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *domain.Testimonial) error {
	query := `
		INSERT INTO testimonials (id, name, company, message, rating, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		testimonial.ID,
		testimonial.Name,
		testimonial.Company,
		testimonial.Message,
		testimonial.Rating,
		nullable(testimonial.Image),
		testimonial.CreatedAt,
		testimonial.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}

	return nil
}

func (r *testimonialRepository) Update(ctx context.Context, testimonial *domain.Testimonial) error {
	query := `
		UPDATE testimonials
		SET name = $2, company = $3, message = $4, rating = $5, image = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		testimonial.ID,
		testimonial.Name,
		testimonial.Company,
		testimonial.Message,
		testimonial.Rating,
		nullable(testimonial.Image),
		testimonial.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update testimonial: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTestimonialNotFound
	}

	return nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTestimonialNotFound
	}

	return nil
}

func (r *testimonialRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	query := `
		SELECT id, name, company, message, rating, image, created_at, updated_at
		FROM testimonials
		WHERE id = $1
	`

	testimonial, err := scanTestimonial(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("failed to find testimonial by ID: %w", err)
	}

	return testimonial, nil
}

func (r *testimonialRepository) List(ctx context.Context) ([]*domain.Testimonial, error) {
	query := `
		SELECT id, name, company, message, rating, image, created_at, updated_at
		FROM testimonials
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []*domain.Testimonial{}
	for rows.Next() {
		testimonial, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		testimonials = append(testimonials, testimonial)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate testimonials: %w", err)
	}

	return testimonials, nil
}

func scanTestimonial(row rowScanner) (*domain.Testimonial, error) {
	testimonial := &domain.Testimonial{}
	var image sql.NullString

	err := row.Scan(
		&testimonial.ID,
		&testimonial.Name,
		&testimonial.Company,
		&testimonial.Message,
		&testimonial.Rating,
		&image,
		&testimonial.CreatedAt,
		&testimonial.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	testimonial.Image = image.String
	return testimonial, nil
}
