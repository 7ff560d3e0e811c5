package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultHealthScore is the baseline score assigned to every new user.
const DefaultHealthScore = 85.0

// User represents a user entity
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"` // Never serialize password hash
	Name         string    `json:"name"`
	Age          *int      `json:"age,omitempty"`
	TokenBalance int64     `json:"tokens"`
	HealthScore  float64   `json:"health_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
