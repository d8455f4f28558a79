package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// ErrUnauthenticated signals that the caller could not be resolved to a user
var ErrUnauthenticated = shared.NewDomainError("UNAUTHORIZED", "Authentication required")

// ErrNotAllowed signals a valid credential for a principal outside the
// allow list
var ErrNotAllowed = shared.NewDomainError("FORBIDDEN", "Principal is not allowed")

// User is the resolved caller identity
type User struct {
	ID      uuid.UUID
	Subject string
}

// Resolver maps a bearer credential to a stable user or rejects the request.
// Implementations enforce the allow-listed principal policy.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*User, error)
}
