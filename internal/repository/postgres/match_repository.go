package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	query := `
		INSERT INTO matches (
			employer_id, seeker_id, job_id, status, initiator,
			employer_unlocked, employer_payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		match.EmployerID, match.SeekerID, match.JobID, match.Status, match.Initiator,
		match.EmployerUnlocked, match.EmployerPaymentStatus,
	).Scan(&match.ID, &match.CreatedAt)
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT * FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &match, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByPair(ctx context.Context, jobID, seekerID int) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT * FROM matches WHERE job_id = $1 AND seeker_id = $2`
	err := r.db.GetContext(ctx, &match, query, jobID, seekerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetEmployerMatches(ctx context.Context, employerID int, limit, offset int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE employer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &matches, query, employerID, limit, offset)
	return matches, err
}

func (r *matchRepository) GetSeekerMatches(ctx context.Context, seekerID int, limit, offset int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE seeker_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &matches, query, seekerID, limit, offset)
	return matches, err
}

func (r *matchRepository) CountUnlockedSince(ctx context.Context, employerID int, since time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM matches
		WHERE employer_id = $1 AND employer_unlocked = true AND employer_unlocked_at >= $2
	`
	err := r.db.GetContext(ctx, &count, query, employerID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count monthly unlocks: %w", err)
	}
	return count, nil
}

// advisoryLockClass namespaces the per-employer unlock advisory lock.
const advisoryLockClass = 7201

// ExecuteUnlock applies the locked→unlocked transition and appends the audit
// record in one transaction. A transaction-scoped advisory lock serializes
// unlock executions per employer, so the quota subquery and the UPDATE see a
// consistent monthly count even under concurrent requests.
func (r *matchRepository) ExecuteUnlock(ctx context.Context, exec repository.UnlockExecution) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin unlock transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, advisoryLockClass, exec.EmployerID); err != nil {
		return fmt.Errorf("failed to acquire employer unlock lock: %w", err)
	}

	query := `
		UPDATE matches
		SET employer_unlocked = true,
		    employer_unlocked_at = CURRENT_TIMESTAMP,
		    employer_payment_status = $1,
		    employer_price_charged = $2
		WHERE id = $3
		  AND employer_id = $4
		  AND employer_unlocked = false
		  AND (
			$5::int < 0
			OR (
				SELECT COUNT(*) FROM matches q
				WHERE q.employer_id = $4
				  AND q.employer_unlocked = true
				  AND q.employer_unlocked_at >= $6
			) < $5
		  )
	`
	result, err := tx.ExecContext(ctx, query,
		exec.Status, exec.AmountCents, exec.MatchID, exec.EmployerID,
		exec.Quota, exec.MonthStart,
	)
	if err != nil {
		return fmt.Errorf("failed to unlock match: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return r.classifyUnlockFailure(ctx, exec)
	}

	record := `
		INSERT INTO payment_records (id, match_id, employer_id, amount_cents, status, provider_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, record,
		uuid.New(), exec.MatchID, exec.EmployerID, exec.AmountCents, exec.Status, exec.ProviderRef,
	); err != nil {
		return fmt.Errorf("failed to append payment record: %w", err)
	}

	return tx.Commit()
}

// classifyUnlockFailure turns a zero-row conditional update into the precise
// domain error: missing row, foreign owner, already unlocked, or a quota
// slot lost to a concurrent grant.
func (r *matchRepository) classifyUnlockFailure(ctx context.Context, exec repository.UnlockExecution) error {
	match, err := r.GetByID(ctx, exec.MatchID)
	if err != nil {
		return err
	}
	if !match.IsOwnedBy(exec.EmployerID) {
		return domain.ErrNotMatchOwner
	}
	if match.EmployerUnlocked {
		return domain.ErrAlreadyUnlocked
	}
	return domain.ErrQuotaRace
}
