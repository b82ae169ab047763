package match

import (
	"context"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	accountRepo repository.AccountRepository
	paymentRepo repository.PaymentRepository
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	accountRepo repository.AccountRepository,
	paymentRepo repository.PaymentRepository,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:   matchRepo,
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
	}
}

// MatchView is a match as one party sees it. Contact details of the seeker
// appear only after the employer unlocked the match; the seeker side always
// sees the employer.
type MatchView struct {
	Match         *domain.Match `json:"match"`
	OtherParty    string        `json:"other_party"`
	ContactEmail  *string       `json:"contact_email,omitempty"`
	ContactLocked bool          `json:"contact_locked"`
}

func (uc *MatchUseCase) List(ctx context.Context, viewer *domain.Account, limit, offset int) ([]*MatchView, error) {
	var (
		matches []*domain.Match
		err     error
	)
	if viewer.IsEmployer() {
		matches, err = uc.matchRepo.GetEmployerMatches(ctx, viewer.ID, limit, offset)
	} else {
		matches, err = uc.matchRepo.GetSeekerMatches(ctx, viewer.ID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	views := make([]*MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, uc.buildView(ctx, viewer, m))
	}
	return views, nil
}

func (uc *MatchUseCase) Get(ctx context.Context, viewer *domain.Account, matchID int) (*MatchView, error) {
	m, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.EmployerID != viewer.ID && m.SeekerID != viewer.ID {
		return nil, domain.ErrMatchNotFound
	}
	return uc.buildView(ctx, viewer, m), nil
}

// PaymentHistory lists everything the employer was ever charged (or granted)
// across all matches, newest first.
func (uc *MatchUseCase) PaymentHistory(ctx context.Context, employerID int, limit, offset int) ([]*domain.PaymentRecord, error) {
	return uc.paymentRepo.GetByEmployer(ctx, employerID, limit, offset)
}

// Payments lists the audit trail for a match, employer side only.
func (uc *MatchUseCase) Payments(ctx context.Context, employerID, matchID int) ([]*domain.PaymentRecord, error) {
	m, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsOwnedBy(employerID) {
		return nil, domain.ErrNotMatchOwner
	}
	return uc.paymentRepo.GetByMatch(ctx, matchID)
}

func (uc *MatchUseCase) buildView(ctx context.Context, viewer *domain.Account, m *domain.Match) *MatchView {
	view := &MatchView{Match: m}

	otherID := m.SeekerID
	if !viewer.IsEmployer() {
		otherID = m.EmployerID
	}

	other, err := uc.accountRepo.GetByID(ctx, otherID)
	if err != nil {
		return view
	}
	view.OtherParty = other.DisplayName

	if viewer.IsEmployer() {
		view.ContactLocked = !m.EmployerUnlocked
		if m.EmployerUnlocked {
			view.ContactEmail = &other.Email
		}
	} else {
		view.ContactEmail = &other.Email
	}
	return view
}
