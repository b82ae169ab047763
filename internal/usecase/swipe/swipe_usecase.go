package swipe

import (
	"context"
	"fmt"
	"log"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
	"github.com/swipehire/backend/internal/usecase/entitlement"
)

type SwipeUseCase struct {
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	jobRepo     repository.JobRepository
	accountRepo repository.AccountRepository
	engine      *entitlement.Engine
}

func NewSwipeUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	jobRepo repository.JobRepository,
	accountRepo repository.AccountRepository,
	engine *entitlement.Engine,
) *SwipeUseCase {
	return &SwipeUseCase{
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		jobRepo:     jobRepo,
		accountRepo: accountRepo,
		engine:      engine,
	}
}

// SwipeRequest represents a swipe action. Seekers swipe on a job; employers
// swipe on a seeker in the context of one of their own postings.
type SwipeRequest struct {
	JobID     int                   `json:"job_id" binding:"required"`
	SeekerID  int                   `json:"seeker_id"`
	Direction domain.SwipeDirection `json:"direction" binding:"required,oneof=like skip"`
}

// SwipeResponse represents swipe result. Entitlement is present only when
// the swipe completed a match and the actor is the employer.
type SwipeResponse struct {
	IsMatch     bool                  `json:"is_match"`
	Swipe       *domain.Swipe         `json:"swipe,omitempty"`
	Match       *domain.Match         `json:"match,omitempty"`
	Entitlement *entitlement.Decision `json:"entitlement,omitempty"`
}

// CreateSwipe records a directional swipe and, on a reciprocal like, creates
// exactly one match and resolves the employer's entitlement on the spot.
// The swipe insert is the only mandatory step: once it is durable, match
// creation is best-effort and never rolls the swipe back.
func (uc *SwipeUseCase) CreateSwipe(ctx context.Context, actor *domain.Account, req *SwipeRequest) (*SwipeResponse, error) {
	job, err := uc.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	seekerID := req.SeekerID
	switch actor.Role {
	case domain.RoleJobSeeker:
		seekerID = actor.ID
	case domain.RoleEmployer:
		if job.EmployerID != actor.ID {
			return nil, domain.ErrNotJobOwner
		}
		if seekerID == 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	existing, err := uc.swipeRepo.GetByActorTarget(ctx, actor.ID, job.ID, seekerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing swipe: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrSwipeAlreadyExists
	}

	swipe := &domain.Swipe{
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		JobID:     job.ID,
		SeekerID:  seekerID,
		Direction: req.Direction,
	}
	if err := uc.swipeRepo.Create(ctx, swipe); err != nil {
		return nil, fmt.Errorf("failed to create swipe: %w", err)
	}

	response := &SwipeResponse{Swipe: swipe}
	if !swipe.IsLike() {
		return response, nil
	}

	reciprocal, err := uc.swipeRepo.HasReciprocalLike(ctx, actor.Role, job.ID, seekerID)
	if err != nil {
		// The swipe is durable; a later like or view retries the match.
		log.Printf("swipe: reciprocal-like lookup failed for job %d seeker %d: %v", job.ID, seekerID, err)
		return response, nil
	}
	if !reciprocal {
		return response, nil
	}

	match, err := uc.ensureMatch(ctx, job, seekerID, actor.Role)
	if err != nil {
		log.Printf("swipe: match creation failed for job %d seeker %d: %v", job.ID, seekerID, err)
		return response, nil
	}
	response.IsMatch = true
	response.Match = match

	// When the employer's like completed the match, entitlement is
	// resolved at this instant: free grants execute inline, paid paths
	// come back as a price the client routes to checkout.
	if actor.Role == domain.RoleEmployer {
		decision, err := uc.engine.Unlock(ctx, actor.ID, match.ID)
		if err != nil {
			if err == domain.ErrFlexUnavailableOnPlan {
				return nil, err
			}
			log.Printf("swipe: entitlement resolution failed for match %d: %v", match.ID, err)
			return response, nil
		}
		response.Entitlement = decision
		if refreshed, err := uc.matchRepo.GetByID(ctx, match.ID); err == nil {
			response.Match = refreshed
		}
	}

	return response, nil
}

// ensureMatch creates the match for a reciprocal like, tolerating the row
// already existing. The initiator is the FIRST liker, i.e. the opposite
// party of whoever triggered this branch.
func (uc *SwipeUseCase) ensureMatch(ctx context.Context, job *domain.JobPosting, seekerID int, secondSwiper domain.Role) (*domain.Match, error) {
	if existing, err := uc.matchRepo.GetByPair(ctx, job.ID, seekerID); err == nil {
		return existing, nil
	} else if err != domain.ErrMatchNotFound {
		return nil, err
	}

	initiator := domain.RoleEmployer
	if secondSwiper == domain.RoleEmployer {
		initiator = domain.RoleJobSeeker
	}

	match := &domain.Match{
		EmployerID:            job.EmployerID,
		SeekerID:              seekerID,
		JobID:                 job.ID,
		Status:                domain.MatchConfirmed,
		Initiator:             initiator,
		EmployerUnlocked:      false,
		EmployerPaymentStatus: domain.PaymentPending,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		// Lost a race with the other party's concurrent like.
		if existing, getErr := uc.matchRepo.GetByPair(ctx, job.ID, seekerID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return match, nil
}

// LikeReceived is one seeker like on an employer's posting, shown in the
// employer's inbox before they swipe back.
type LikeReceived struct {
	SwipeID   int    `json:"swipe_id"`
	JobID     int    `json:"job_id"`
	SeekerID  int    `json:"seeker_id"`
	Seeker    string `json:"seeker_name"`
	CreatedAt string `json:"created_at"`
}

// GetLikesReceived lists seeker likes against the employer's postings.
func (uc *SwipeUseCase) GetLikesReceived(ctx context.Context, employerID int, limit, offset int) ([]*LikeReceived, error) {
	likes, err := uc.swipeRepo.GetLikesReceived(ctx, employerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get likes received: %w", err)
	}

	out := make([]*LikeReceived, 0, len(likes))
	for _, like := range likes {
		item := &LikeReceived{
			SwipeID:   like.ID,
			JobID:     like.JobID,
			SeekerID:  like.SeekerID,
			CreatedAt: like.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if seeker, err := uc.accountRepo.GetByID(ctx, like.SeekerID); err == nil {
			item.Seeker = seeker.DisplayName
		}
		out = append(out, item)
	}
	return out, nil
}
