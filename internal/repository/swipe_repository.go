package repository

import (
	"context"

	"github.com/swipehire/backend/internal/domain"
)

type SwipeRepository interface {
	Create(ctx context.Context, swipe *domain.Swipe) error
	// GetByActorTarget returns the actor's existing swipe on the
	// (job, seeker) pair, if any.
	GetByActorTarget(ctx context.Context, actorID, jobID, seekerID int) (*domain.Swipe, error)
	// HasReciprocalLike reports whether the opposite party already liked
	// the same (job, seeker) pair.
	HasReciprocalLike(ctx context.Context, actorRole domain.Role, jobID, seekerID int) (bool, error)
	GetLikesReceived(ctx context.Context, employerID int, limit, offset int) ([]*domain.Swipe, error)
}
