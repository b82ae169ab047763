package repository

import (
	"context"
	"time"

	"github.com/swipehire/backend/internal/domain"
)

// UnlockExecution describes one locked→unlocked transition. The repository
// applies it as a single transaction: a conditional UPDATE on the match row
// plus the append-only payment record. The quota guard is evaluated inside
// the same UPDATE statement, so two concurrent free grants can never both
// slip under the allowance.
type UnlockExecution struct {
	MatchID     int
	EmployerID  int
	Status      domain.PaymentStatus
	AmountCents int64
	ProviderRef *string

	// Quota is the monthly free allowance to enforce; domain.QuotaUnlimited
	// disables the check (premium grants and paid unlocks).
	Quota      int
	MonthStart time.Time
}

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	GetByPair(ctx context.Context, jobID, seekerID int) (*domain.Match, error)
	GetEmployerMatches(ctx context.Context, employerID int, limit, offset int) ([]*domain.Match, error)
	GetSeekerMatches(ctx context.Context, seekerID int, limit, offset int) ([]*domain.Match, error)

	// CountUnlockedSince is the monthly unlock counter: matches unlocked by
	// the employer with employer_unlocked_at at or after the boundary.
	CountUnlockedSince(ctx context.Context, employerID int, since time.Time) (int, error)

	// ExecuteUnlock performs the locked→unlocked transition. It returns
	// domain.ErrAlreadyUnlocked when the match was unlocked earlier,
	// domain.ErrQuotaRace when the quota guard failed at write time,
	// domain.ErrNotMatchOwner or domain.ErrMatchNotFound on ownership and
	// existence failures. No partial state is left behind on error.
	ExecuteUnlock(ctx context.Context, exec UnlockExecution) error
}

// PaymentRepository reads the append-only audit trail. Records are written
// exclusively inside MatchRepository.ExecuteUnlock so an unlock and its
// record can never diverge.
type PaymentRepository interface {
	GetByMatch(ctx context.Context, matchID int) ([]*domain.PaymentRecord, error)
	GetByEmployer(ctx context.Context, employerID int, limit, offset int) ([]*domain.PaymentRecord, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByMatch(ctx context.Context, matchID int, limit, offset int) ([]*domain.Message, error)
}
