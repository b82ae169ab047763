package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	query := `
		INSERT INTO swipes (actor_id, actor_role, job_id, seeker_id, direction)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		swipe.ActorID, swipe.ActorRole, swipe.JobID, swipe.SeekerID, swipe.Direction,
	).Scan(&swipe.ID, &swipe.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSwipeAlreadyExists
		}
		return err
	}
	return nil
}

func (r *swipeRepository) GetByActorTarget(ctx context.Context, actorID, jobID, seekerID int) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `SELECT * FROM swipes WHERE actor_id = $1 AND job_id = $2 AND seeker_id = $3`
	err := r.db.GetContext(ctx, &swipe, query, actorID, jobID, seekerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) HasReciprocalLike(ctx context.Context, actorRole domain.Role, jobID, seekerID int) (bool, error) {
	// The reciprocal of an employer like is the seeker's like on the same
	// pair, and vice versa.
	otherRole := domain.RoleEmployer
	if actorRole == domain.RoleEmployer {
		otherRole = domain.RoleJobSeeker
	}

	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swipes
			WHERE actor_role = $1 AND job_id = $2 AND seeker_id = $3 AND direction = 'like'
		)
	`
	err := r.db.GetContext(ctx, &exists, query, otherRole, jobID, seekerID)
	return exists, err
}

func (r *swipeRepository) GetLikesReceived(ctx context.Context, employerID int, limit, offset int) ([]*domain.Swipe, error) {
	var swipes []*domain.Swipe
	query := `
		SELECT s.* FROM swipes s
		JOIN job_postings j ON j.id = s.job_id
		WHERE j.employer_id = $1 AND s.actor_role = 'jobseeker' AND s.direction = 'like'
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &swipes, query, employerID, limit, offset)
	return swipes, err
}
