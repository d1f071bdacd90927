package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"corpsite/internal/domain"

	"github.com/google/uuid"
)

var ErrVisitorNotFound = errors.New("message not found")

// VisitorRepository stores contact-form submissions. The public form only
// creates; the admin inbox lists and deletes.
type VisitorRepository interface {
	Create(ctx context.Context, visitor *domain.Visitor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Visitor, error)
}

type visitorRepository struct {
	db *sql.DB
}

// NewVisitorRepository creates a new instance of VisitorRepository
func NewVisitorRepository(db *sql.DB) VisitorRepository {
	return &visitorRepository{db: db}
}

func (r *visitorRepository) Create(ctx context.Context, visitor *domain.Visitor) error {
	query := `
		INSERT INTO visitors (id, name, email, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		visitor.ID,
		visitor.Name,
		visitor.Email,
		nullable(visitor.Phone),
		visitor.Message,
		visitor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create visitor message: %w", err)
	}

	return nil
}

func (r *visitorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM visitors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete visitor message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrVisitorNotFound
	}

	return nil
}

func (r *visitorRepository) List(ctx context.Context) ([]*domain.Visitor, error) {
	query := `
		SELECT id, name, email, phone, message, created_at
		FROM visitors
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitor messages: %w", err)
	}
	defer rows.Close()

	visitors := []*domain.Visitor{}
	for rows.Next() {
		visitor := &domain.Visitor{}
		var phone sql.NullString

		err := rows.Scan(
			&visitor.ID,
			&visitor.Name,
			&visitor.Email,
			&phone,
			&visitor.Message,
			&visitor.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visitor message: %w", err)
		}

		visitor.Phone = phone.String
		visitors = append(visitors, visitor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visitor messages: %w", err)
	}

	return visitors, nil
}
