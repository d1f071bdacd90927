package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"corpsite/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrBlogNotFound  = errors.New("blog not found")
	ErrDuplicateSlug = errors.New("blog with this slug already exists")
)

// BlogRepository defines the interface for blog data access
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	Update(ctx context.Context, blog *domain.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	List(ctx context.Context) ([]*domain.Blog, error)
}

type blogRepository struct {
	db *sql.DB
}

// NewBlogRepository creates a new instance of BlogRepository
func NewBlogRepository(db *sql.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	query := `
		INSERT INTO blogs (id, title, slug, content, author, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		blog.ID,
		blog.Title,
		blog.Slug,
		blog.Content,
		blog.Author,
		nullable(blog.Image),
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

func (r *blogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, slug = $3, content = $4, author = $5, image = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		blog.ID,
		blog.Title,
		blog.Slug,
		blog.Content,
		blog.Author,
		nullable(blog.Image),
		blog.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update blog: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrBlogNotFound
	}

	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrBlogNotFound
	}

	return nil
}

func (r *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	query := `
		SELECT id, title, slug, content, author, image, created_at, updated_at
		FROM blogs
		WHERE id = $1
	`

	blog, err := scanBlog(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to find blog by ID: %w", err)
	}

	return blog, nil
}

// FindBySlug retrieves a blog by its public permalink slug.
func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	query := `
		SELECT id, title, slug, content, author, image, created_at, updated_at
		FROM blogs
		WHERE slug = $1
	`

	blog, err := scanBlog(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to find blog by slug: %w", err)
	}

	return blog, nil
}

func (r *blogRepository) List(ctx context.Context) ([]*domain.Blog, error) {
	query := `
		SELECT id, title, slug, content, author, image, created_at, updated_at
		FROM blogs
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	blogs := []*domain.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blogs: %w", err)
	}

	return blogs, nil
}

func scanBlog(row rowScanner) (*domain.Blog, error) {
	blog := &domain.Blog{}
	var image sql.NullString

	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Slug,
		&blog.Content,
		&blog.Author,
		&image,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	blog.Image = image.String
	return blog, nil
}
