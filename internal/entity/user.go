package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account stored in the users table. AccessToken holds the
// most recently issued token; a new login overwrites it, so at most one token
// is active per user.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        *string   `json:"phone,omitempty"`
	AccessToken  *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
