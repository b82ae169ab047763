package job

import (
	"context"
	"time"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type JobUseCase struct {
	jobRepo repository.JobRepository
}

func NewJobUseCase(jobRepo repository.JobRepository) *JobUseCase {
	return &JobUseCase{jobRepo: jobRepo}
}

type CreateJobRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	City        *string    `json:"city"`
	LocationLat *float64   `json:"location_lat"`
	LocationLon *float64   `json:"location_lon"`
	SalaryMin   *int       `json:"salary_min"`
	SalaryMax   *int       `json:"salary_max"`
	Tags        []string   `json:"tags"`
	IsFlex      bool       `json:"is_flex"`
	FlexStartAt *time.Time `json:"flex_start_at"`
	FlexEndAt   *time.Time `json:"flex_end_at"`
}

func (uc *JobUseCase) Create(ctx context.Context, employer *domain.Account, req *CreateJobRequest) (*domain.JobPosting, error) {
	if !employer.IsEmployer() {
		return nil, domain.ErrInvalidInput
	}
	if req.IsFlex && (req.FlexStartAt == nil || req.FlexEndAt == nil) {
		return nil, domain.ErrInvalidInput
	}

	job := &domain.JobPosting{
		EmployerID:  employer.ID,
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		LocationLat: req.LocationLat,
		LocationLon: req.LocationLon,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Tags:        req.Tags,
		IsFlex:      req.IsFlex,
		FlexStartAt: req.FlexStartAt,
		FlexEndAt:   req.FlexEndAt,
		IsActive:    true,
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUseCase) Update(ctx context.Context, employerID int, jobID int, req *CreateJobRequest) (*domain.JobPosting, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, domain.ErrNotJobOwner
	}

	job.Title = req.Title
	job.Description = req.Description
	job.City = req.City
	job.LocationLat = req.LocationLat
	job.LocationLon = req.LocationLon
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	job.Tags = req.Tags
	job.IsFlex = req.IsFlex
	job.FlexStartAt = req.FlexStartAt
	job.FlexEndAt = req.FlexEndAt

	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUseCase) ListMine(ctx context.Context, employerID int) ([]*domain.JobPosting, error) {
	return uc.jobRepo.GetByEmployer(ctx, employerID)
}

func (uc *JobUseCase) Get(ctx context.Context, jobID int) (*domain.JobPosting, error) {
	return uc.jobRepo.GetByID(ctx, jobID)
}

func (uc *JobUseCase) SetActive(ctx context.Context, employerID, jobID int, active bool) error {
	return uc.jobRepo.SetActive(ctx, jobID, employerID, active)
}
