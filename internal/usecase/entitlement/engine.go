package entitlement

import (
	"context"
	"fmt"
	"time"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

// Outcome is what the engine tells its caller to do with a match.
type Outcome string

const (
	// OutcomeAlreadyUnlocked is a pure read; nothing is charged again.
	OutcomeAlreadyUnlocked Outcome = "already_unlocked"
	// OutcomeFree means the unlock was (or can be) granted without payment.
	OutcomeFree Outcome = "free"
	// OutcomeRequiresPayment means the caller must route to checkout; the
	// engine mutates nothing on this path.
	OutcomeRequiresPayment Outcome = "requires_payment"
)

// Decision is the engine's structured answer. The engine never talks to the
// user; the delivery layer translates decisions into responses.
type Decision struct {
	Outcome       Outcome              `json:"outcome"`
	PriceCents    int64                `json:"price_cents"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Reason        string               `json:"reason"`
}

// Engine decides whether an employer may unlock a match for free, has
// already paid, or must be charged, and executes the free-path grant.
// Paid-path mutation belongs to checkout orchestration and happens only
// after the gateway confirms success.
type Engine struct {
	accountRepo repository.AccountRepository
	matchRepo   repository.MatchRepository
	jobRepo     repository.JobRepository
	pricing     domain.Pricing
	now         func() time.Time
}

func NewEngine(
	accountRepo repository.AccountRepository,
	matchRepo repository.MatchRepository,
	jobRepo repository.JobRepository,
	pricing domain.Pricing,
) *Engine {
	return &Engine{
		accountRepo: accountRepo,
		matchRepo:   matchRepo,
		jobRepo:     jobRepo,
		pricing:     pricing,
		now:         time.Now,
	}
}

// monthStart returns the first instant of the current calendar month in UTC.
// The monthly counter is bounded by employer_unlocked_at: the quota is about
// unlocks consumed, not matches formed.
func (e *Engine) monthStart() time.Time {
	now := e.now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Decide evaluates the entitlement rules for an employer against a match.
// It performs reads only and never mutates unlock state.
func (e *Engine) Decide(ctx context.Context, employerID int, match *domain.Match) (*Decision, error) {
	if !match.IsOwnedBy(employerID) {
		return nil, domain.ErrNotMatchOwner
	}

	// The seeker completed the match second, which means the employer
	// already resolved entitlement at swipe time.
	if match.Initiator == domain.RoleJobSeeker && match.EmployerUnlocked {
		return &Decision{
			Outcome:       OutcomeAlreadyUnlocked,
			PriceCents:    match.ChargedCents(),
			PaymentStatus: match.EmployerPaymentStatus,
			Reason:        "paid at swipe time",
		}, nil
	}

	if match.EmployerUnlocked {
		return &Decision{
			Outcome:       OutcomeAlreadyUnlocked,
			PriceCents:    match.ChargedCents(),
			PaymentStatus: match.EmployerPaymentStatus,
			Reason:        "previously unlocked",
		}, nil
	}

	employer, err := e.accountRepo.GetByID(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employer: %w", err)
	}
	plan := domain.ResolvePlan(string(employer.SubscriptionPlan))

	job, err := e.jobRepo.GetByID(ctx, match.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve job context: %w", err)
	}

	if job.IsFlex {
		// Flex unlocks are a separate product: flat-priced for paid
		// plans, declined outright on basic.
		if plan == domain.PlanBasic {
			return nil, domain.ErrFlexUnavailableOnPlan
		}
		return &Decision{
			Outcome:       OutcomeRequiresPayment,
			PriceCents:    e.pricing.FlexUnlockCents,
			PaymentStatus: domain.PaymentPaid,
			Reason:        "flex unlock",
		}, nil
	}

	switch plan {
	case domain.PlanPremium:
		return &Decision{
			Outcome:       OutcomeFree,
			PriceCents:    0,
			PaymentStatus: domain.PaymentIncluded,
			Reason:        "included in premium plan",
		}, nil

	case domain.PlanStandard:
		used, err := e.matchRepo.CountUnlockedSince(ctx, employerID, e.monthStart())
		if err != nil {
			// Never guess the free path when the counter is unknown.
			return nil, fmt.Errorf("monthly unlock counter unavailable: %w", err)
		}
		if used < e.pricing.StandardFreeQuota {
			return &Decision{
				Outcome:       OutcomeFree,
				PriceCents:    0,
				PaymentStatus: domain.PaymentFree,
				Reason:        fmt.Sprintf("monthly allowance (%d of %d used)", used, e.pricing.StandardFreeQuota),
			}, nil
		}
		return &Decision{
			Outcome:       OutcomeRequiresPayment,
			PriceCents:    e.pricing.StandardUnlockCents,
			PaymentStatus: domain.PaymentPaid,
			Reason:        "monthly allowance exhausted",
		}, nil

	default:
		return &Decision{
			Outcome:       OutcomeRequiresPayment,
			PriceCents:    e.pricing.BasicUnlockCents,
			PaymentStatus: domain.PaymentPaid,
			Reason:        "basic plan",
		}, nil
	}
}

// Unlock is the manual-unlock entry point: decide, and when the decision is
// free, execute the grant. A requires-payment decision is returned untouched
// for the caller to route to checkout.
func (e *Engine) Unlock(ctx context.Context, employerID, matchID int) (*Decision, error) {
	match, err := e.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	decision, err := e.Decide(ctx, employerID, match)
	if err != nil {
		return nil, err
	}
	if decision.Outcome != OutcomeFree {
		return decision, nil
	}

	if err := e.grantFree(ctx, employerID, matchID, decision.PaymentStatus); err != nil {
		switch err {
		case domain.ErrAlreadyUnlocked:
			// A concurrent call won; report the state it left behind.
			decision.Outcome = OutcomeAlreadyUnlocked
			decision.Reason = "previously unlocked"
			return decision, nil
		case domain.ErrQuotaRace:
			// The last free slot went to a concurrent grant between
			// decision and write. Fall through to the paid path.
			return &Decision{
				Outcome:       OutcomeRequiresPayment,
				PriceCents:    e.pricing.StandardUnlockCents,
				PaymentStatus: domain.PaymentPaid,
				Reason:        "monthly allowance exhausted",
			}, nil
		default:
			return nil, err
		}
	}
	return decision, nil
}

// grantFree runs the free-path execution: unlocked=true, timestamp, status,
// zero price and a zero-amount payment record, all in one transaction. The
// quota bound is re-checked atomically inside the write.
func (e *Engine) grantFree(ctx context.Context, employerID, matchID int, status domain.PaymentStatus) error {
	quota := domain.QuotaUnlimited
	if status == domain.PaymentFree {
		quota = e.pricing.StandardFreeQuota
	}
	return e.matchRepo.ExecuteUnlock(ctx, repository.UnlockExecution{
		MatchID:     matchID,
		EmployerID:  employerID,
		Status:      status,
		AmountCents: 0,
		Quota:       quota,
		MonthStart:  e.monthStart(),
	})
}

// CompletePaid is invoked by checkout orchestration after the gateway
// confirmed a charge. Replaying a success callback is a no-op.
func (e *Engine) CompletePaid(ctx context.Context, employerID, matchID int, amountCents int64, providerRef string) error {
	err := e.matchRepo.ExecuteUnlock(ctx, repository.UnlockExecution{
		MatchID:     matchID,
		EmployerID:  employerID,
		Status:      domain.PaymentPaid,
		AmountCents: amountCents,
		ProviderRef: &providerRef,
		Quota:       domain.QuotaUnlimited,
		MonthStart:  e.monthStart(),
	})
	if err == domain.ErrAlreadyUnlocked {
		return nil
	}
	return err
}
