package repository

import (
	"context"

	"github.com/swipehire/backend/internal/domain"
)

type JobRepository interface {
	Create(ctx context.Context, job *domain.JobPosting) error
	GetByID(ctx context.Context, id int) (*domain.JobPosting, error)
	GetByEmployer(ctx context.Context, employerID int) ([]*domain.JobPosting, error)
	Update(ctx context.Context, job *domain.JobPosting) error
	SetActive(ctx context.Context, id int, employerID int, active bool) error
	// SearchActive returns active postings not yet swiped by the seeker.
	SearchActive(ctx context.Context, seekerID int, limit, offset int) ([]*domain.JobPosting, error)
}
