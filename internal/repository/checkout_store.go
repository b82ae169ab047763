package repository

import (
	"context"
	"time"

	"github.com/swipehire/backend/internal/domain"
)

// CheckoutSessionStore holds pending checkout sessions until the gateway
// confirms or the TTL expires.
type CheckoutSessionStore interface {
	SavePending(ctx context.Context, pending *domain.PendingCheckout, ttl time.Duration) error
	// GetPending returns domain.ErrCheckoutSessionNotFound for unknown or
	// expired sessions.
	GetPending(ctx context.Context, sessionID string) (*domain.PendingCheckout, error)
	DeletePending(ctx context.Context, sessionID string) error
}
