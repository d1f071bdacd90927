package domain

import (
	"time"

	"github.com/google/uuid"
)

// Admin represents a back-office account. The password is only ever stored
// as a bcrypt hash.
type Admin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
