package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type FeedUseCase struct {
	accountRepo repository.AccountRepository
	jobRepo     repository.JobRepository
	swipeRepo   repository.SwipeRepository
}

func NewFeedUseCase(
	accountRepo repository.AccountRepository,
	jobRepo repository.JobRepository,
	swipeRepo repository.SwipeRepository,
) *FeedUseCase {
	return &FeedUseCase{
		accountRepo: accountRepo,
		jobRepo:     jobRepo,
		swipeRepo:   swipeRepo,
	}
}

// JobCard is a job posting in a seeker's feed.
type JobCard struct {
	Job        *domain.JobPosting `json:"job"`
	DistanceKm *float64           `json:"distance_km,omitempty"`
	Score      int                `json:"score"`
}

// CandidateCard is a seeker in an employer's feed for one posting.
type CandidateCard struct {
	SeekerID    int      `json:"seeker_id"`
	DisplayName string   `json:"display_name"`
	City        *string  `json:"city,omitempty"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
	Score       int      `json:"score"`
}

// NextJobs returns the best-scoring active postings the seeker has not
// swiped yet, highest score first.
func (uc *FeedUseCase) NextJobs(ctx context.Context, seekerID int, limit int) ([]*JobCard, error) {
	seeker, err := uc.accountRepo.GetByID(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seeker: %w", err)
	}

	jobs, err := uc.jobRepo.SearchActive(ctx, seekerID, 100, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to search postings: %w", err)
	}

	cards := make([]*JobCard, 0, len(jobs))
	for _, job := range jobs {
		if job.EmployerID == seekerID {
			continue
		}
		crit := Criteria{
			SeekerLat:       seeker.LocationLat,
			SeekerLon:       seeker.LocationLon,
			SeekerCity:      seeker.City,
			TargetLat:       job.LocationLat,
			TargetLon:       job.LocationLon,
			TargetCity:      job.City,
			SalaryDisclosed: job.SalaryMin != nil || job.SalaryMax != nil,
			IsFlex:          job.IsFlex,
		}
		card := &JobCard{Job: job, Score: Score(crit), DistanceKm: distance(crit)}
		cards = append(cards, card)
	}

	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Score > cards[j].Score })
	if limit > 0 && len(cards) > limit {
		cards = cards[:limit]
	}
	return cards, nil
}

// NextCandidates returns scored seekers for one of the employer's postings,
// skipping anyone the employer already swiped on for that posting.
func (uc *FeedUseCase) NextCandidates(ctx context.Context, employerID, jobID int, limit int) ([]*CandidateCard, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, domain.ErrNotJobOwner
	}

	filters := map[string]interface{}{}
	if job.City != nil && *job.City != "" {
		filters["city"] = *job.City
	}
	seekers, err := uc.accountRepo.SearchSeekers(ctx, filters, 100, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to search seekers: %w", err)
	}

	cards := make([]*CandidateCard, 0, len(seekers))
	for _, seeker := range seekers {
		swiped, err := uc.swipeRepo.GetByActorTarget(ctx, employerID, jobID, seeker.ID)
		if err != nil {
			return nil, err
		}
		if swiped != nil {
			continue
		}

		crit := Criteria{
			SeekerLat:  seeker.LocationLat,
			SeekerLon:  seeker.LocationLon,
			SeekerCity: seeker.City,
			TargetLat:  job.LocationLat,
			TargetLon:  job.LocationLon,
			TargetCity: job.City,
			IsFlex:     job.IsFlex,
		}
		cards = append(cards, &CandidateCard{
			SeekerID:    seeker.ID,
			DisplayName: seeker.DisplayName,
			City:        seeker.City,
			DistanceKm:  distance(crit),
			Score:       Score(crit),
		})
	}

	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Score > cards[j].Score })
	if limit > 0 && len(cards) > limit {
		cards = cards[:limit]
	}
	return cards, nil
}
