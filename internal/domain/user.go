package domain

import (
	"context"
	"time"
)

// User represents an external identity referenced by organizers, attendees,
// and slot speakers. Its lifecycle is managed elsewhere; this service only
// reads users.
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRepository defines the read-only interface for user lookup.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID. This
// is the whole identity boundary: sessions are established elsewhere, and the
// verified ID is passed down as an optional viewer identity.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
