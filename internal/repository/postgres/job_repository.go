package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type jobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `
	id, employer_id, title, description, city, location_lat, location_lon,
	salary_min, salary_max, tags, is_flex, flex_start_at, flex_end_at,
	is_active, created_at, updated_at
`

func scanJob(row *sql.Row) (*domain.JobPosting, error) {
	var job domain.JobPosting
	err := row.Scan(
		&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.City,
		&job.LocationLat, &job.LocationLon, &job.SalaryMin, &job.SalaryMax,
		pq.Array(&job.Tags), &job.IsFlex, &job.FlexStartAt, &job.FlexEndAt,
		&job.IsActive, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Create(ctx context.Context, job *domain.JobPosting) error {
	query := `
		INSERT INTO job_postings (
			employer_id, title, description, city, location_lat, location_lon,
			salary_min, salary_max, tags, is_flex, flex_start_at, flex_end_at, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		job.EmployerID, job.Title, job.Description, job.City,
		job.LocationLat, job.LocationLon, job.SalaryMin, job.SalaryMax,
		pq.Array(job.Tags), job.IsFlex, job.FlexStartAt, job.FlexEndAt, job.IsActive,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) GetByID(ctx context.Context, id int) (*domain.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM job_postings WHERE id = $1`
	return scanJob(r.db.QueryRowContext(ctx, query, id))
}

func (r *jobRepository) GetByEmployer(ctx context.Context, employerID int) ([]*domain.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM job_postings WHERE employer_id = $1 ORDER BY created_at DESC`
	return r.selectJobs(ctx, query, employerID)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobPosting) error {
	query := `
		UPDATE job_postings
		SET title = $1, description = $2, city = $3, location_lat = $4, location_lon = $5,
		    salary_min = $6, salary_max = $7, tags = $8,
		    is_flex = $9, flex_start_at = $10, flex_end_at = $11,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $12 AND employer_id = $13
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		job.Title, job.Description, job.City, job.LocationLat, job.LocationLon,
		job.SalaryMin, job.SalaryMax, pq.Array(job.Tags),
		job.IsFlex, job.FlexStartAt, job.FlexEndAt,
		job.ID, job.EmployerID,
	).Scan(&job.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrJobNotFound
	}
	return err
}

func (r *jobRepository) SetActive(ctx context.Context, id int, employerID int, active bool) error {
	query := `
		UPDATE job_postings
		SET is_active = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND employer_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, active, id, employerID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) SearchActive(ctx context.Context, seekerID int, limit, offset int) ([]*domain.JobPosting, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM job_postings j
		WHERE j.is_active = true
		  AND NOT EXISTS (
			SELECT 1 FROM swipes s
			WHERE s.actor_id = $1 AND s.job_id = j.id
		  )
		ORDER BY j.created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectJobs(ctx, query, seekerID, limit, offset)
}

func (r *jobRepository) selectJobs(ctx context.Context, query string, args ...interface{}) ([]*domain.JobPosting, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*domain.JobPosting
	for rows.Next() {
		var job domain.JobPosting
		if err := rows.Scan(
			&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.City,
			&job.LocationLat, &job.LocationLon, &job.SalaryMin, &job.SalaryMax,
			pq.Array(&job.Tags), &job.IsFlex, &job.FlexStartAt, &job.FlexEndAt,
			&job.IsActive, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}
