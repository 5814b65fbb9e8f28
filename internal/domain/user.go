package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that may own custom resources.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	FullName     *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
