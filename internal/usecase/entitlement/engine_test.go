package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type fakeAccounts struct {
	accounts map[int]*domain.Account
}

func (f *fakeAccounts) GetByID(_ context.Context, id int) (*domain.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeAccounts) Create(context.Context, *domain.Account) error { panic("unexpected call") }
func (f *fakeAccounts) GetByEmail(context.Context, string) (*domain.Account, error) {
	panic("unexpected call")
}
func (f *fakeAccounts) GetByStripeCustomerID(context.Context, string) (*domain.Account, error) {
	panic("unexpected call")
}
func (f *fakeAccounts) Update(context.Context, *domain.Account) error { panic("unexpected call") }
func (f *fakeAccounts) UpdateSubscriptionPlan(context.Context, int, domain.SubscriptionPlan) error {
	panic("unexpected call")
}
func (f *fakeAccounts) SetStripeCustomerID(context.Context, int, string) error {
	panic("unexpected call")
}
func (f *fakeAccounts) SearchSeekers(context.Context, map[string]interface{}, int, int) ([]*domain.Account, error) {
	panic("unexpected call")
}

type fakeJobs struct {
	jobs map[int]*domain.JobPosting
}

func (f *fakeJobs) GetByID(_ context.Context, id int) (*domain.JobPosting, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return j, nil
}

func (f *fakeJobs) Create(context.Context, *domain.JobPosting) error { panic("unexpected call") }
func (f *fakeJobs) GetByEmployer(context.Context, int) ([]*domain.JobPosting, error) {
	panic("unexpected call")
}
func (f *fakeJobs) Update(context.Context, *domain.JobPosting) error  { panic("unexpected call") }
func (f *fakeJobs) SetActive(context.Context, int, int, bool) error   { panic("unexpected call") }
func (f *fakeJobs) SearchActive(context.Context, int, int, int) ([]*domain.JobPosting, error) {
	panic("unexpected call")
}

// fakeMatches mirrors the transactional semantics of the SQL repository:
// ExecuteUnlock re-checks ownership, unlock state and the quota bound before
// mutating, and appends exactly one payment record on success.
type fakeMatches struct {
	matches  map[int]*domain.Match
	payments []*domain.PaymentRecord

	now      time.Time
	countErr error
	// forcedUsed overrides the counter seen by ExecuteUnlock, simulating
	// a concurrent grant between decision and write.
	forcedUsed *int
}

func (f *fakeMatches) GetByID(_ context.Context, id int) (*domain.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeMatches) unlockedSince(employerID int, since time.Time) int {
	used := 0
	for _, m := range f.matches {
		if m.EmployerID == employerID && m.EmployerUnlocked &&
			m.EmployerUnlockedAt != nil && !m.EmployerUnlockedAt.Before(since) {
			used++
		}
	}
	return used
}

func (f *fakeMatches) CountUnlockedSince(_ context.Context, employerID int, since time.Time) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.unlockedSince(employerID, since), nil
}

func (f *fakeMatches) ExecuteUnlock(_ context.Context, exec repository.UnlockExecution) error {
	m, ok := f.matches[exec.MatchID]
	if !ok {
		return domain.ErrMatchNotFound
	}
	if m.EmployerID != exec.EmployerID {
		return domain.ErrNotMatchOwner
	}
	if m.EmployerUnlocked {
		return domain.ErrAlreadyUnlocked
	}
	if exec.Quota != domain.QuotaUnlimited {
		used := f.unlockedSince(exec.EmployerID, exec.MonthStart)
		if f.forcedUsed != nil {
			used = *f.forcedUsed
		}
		if used >= exec.Quota {
			return domain.ErrQuotaRace
		}
	}

	at := f.now
	m.EmployerUnlocked = true
	m.EmployerUnlockedAt = &at
	m.EmployerPaymentStatus = exec.Status
	m.EmployerPriceCharged = &exec.AmountCents

	f.payments = append(f.payments, &domain.PaymentRecord{
		ID:          uuid.New(),
		MatchID:     exec.MatchID,
		EmployerID:  exec.EmployerID,
		AmountCents: exec.AmountCents,
		Status:      exec.Status,
		ProviderRef: exec.ProviderRef,
		CreatedAt:   at,
	})
	return nil
}

func (f *fakeMatches) Create(context.Context, *domain.Match) error { panic("unexpected call") }
func (f *fakeMatches) GetByPair(context.Context, int, int) (*domain.Match, error) {
	panic("unexpected call")
}
func (f *fakeMatches) GetEmployerMatches(context.Context, int, int, int) ([]*domain.Match, error) {
	panic("unexpected call")
}
func (f *fakeMatches) GetSeekerMatches(context.Context, int, int, int) ([]*domain.Match, error) {
	panic("unexpected call")
}

type engineFixture struct {
	engine   *Engine
	accounts *fakeAccounts
	matches  *fakeMatches
	jobs     *fakeJobs
	now      time.Time
}

func newEngineFixture(plan domain.SubscriptionPlan) *engineFixture {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	accounts := &fakeAccounts{accounts: map[int]*domain.Account{
		1: {ID: 1, Role: domain.RoleEmployer, SubscriptionPlan: plan},
		2: {ID: 2, Role: domain.RoleJobSeeker, SubscriptionPlan: domain.PlanBasic},
	}}
	jobs := &fakeJobs{jobs: map[int]*domain.JobPosting{
		10: {ID: 10, EmployerID: 1, Title: "Barista", IsActive: true},
	}}
	matches := &fakeMatches{
		matches: map[int]*domain.Match{
			100: {
				ID: 100, EmployerID: 1, SeekerID: 2, JobID: 10,
				Status:                domain.MatchConfirmed,
				Initiator:             domain.RoleJobSeeker,
				EmployerPaymentStatus: domain.PaymentPending,
			},
		},
		now: now,
	}

	engine := NewEngine(accounts, matches, jobs, domain.DefaultPricing())
	engine.now = func() time.Time { return now }

	return &engineFixture{engine: engine, accounts: accounts, matches: matches, jobs: jobs, now: now}
}

// seedUnlocked adds n matches already unlocked this month for employer 1.
func (fx *engineFixture) seedUnlocked(n int) {
	for i := 0; i < n; i++ {
		at := fx.now.Add(-time.Duration(i+1) * time.Hour)
		id := 1000 + i
		fx.matches.matches[id] = &domain.Match{
			ID: id, EmployerID: 1, SeekerID: 50 + i, JobID: 10,
			Status:                domain.MatchConfirmed,
			Initiator:             domain.RoleJobSeeker,
			EmployerUnlocked:      true,
			EmployerPaymentStatus: domain.PaymentFree,
			EmployerUnlockedAt:    &at,
		}
	}
}

func TestUnlockPremiumAlwaysIncluded(t *testing.T) {
	fx := newEngineFixture(domain.PlanPremium)
	fx.seedUnlocked(50)

	decision, err := fx.engine.Unlock(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, OutcomeFree, decision.Outcome)
	assert.Equal(t, int64(0), decision.PriceCents)
	assert.Equal(t, domain.PaymentIncluded, decision.PaymentStatus)

	m := fx.matches.matches[100]
	assert.True(t, m.EmployerUnlocked)
	assert.Equal(t, domain.PaymentIncluded, m.EmployerPaymentStatus)
	require.Len(t, fx.matches.payments, 1)
	assert.Equal(t, int64(0), fx.matches.payments[0].AmountCents)
}

func TestUnlockStandardWithinAllowanceIsFree(t *testing.T) {
	fx := newEngineFixture(domain.PlanStandard)
	fx.seedUnlocked(9)

	decision, err := fx.engine.Unlock(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, OutcomeFree, decision.Outcome)
	assert.Equal(t, domain.PaymentFree, decision.PaymentStatus)
	assert.True(t, fx.matches.matches[100].EmployerUnlocked)
}

func TestUnlockStandardBeyondAllowanceIsPaid(t *testing.T) {
	fx := newEngineFixture(domain.PlanStandard)
	fx.seedUnlocked(10)

	decision, err := fx.engine.Unlock(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, OutcomeRequiresPayment, decision.Outcome)
	assert.Equal(t, domain.DefaultStandardUnlockCents, decision.PriceCents)
	// Nothing mutates on the paid path until checkout settles.
	assert.False(t, fx.matches.matches[100].EmployerUnlocked)
	assert.Empty(t, fx.matches.payments)
}

func TestUnlockBasicAlwaysPaysFullPrice(t *testing.T) {
	fx := newEngineFixture(domain.PlanBasic)

	decision, err := fx.engine.Unlock(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, OutcomeRequiresPayment, decision.Outcome)
	assert.Equal(t, domain.DefaultBasicUnlockCents, decision.PriceCents)
	assert.False(t, fx.matches.matches[100].EmployerUnlocked)
}

func TestUnlockFlexJobFlatPriceOnPaidPlans(t *testing.T) {
	for _, plan := range []domain.SubscriptionPlan{domain.PlanStandard, domain.PlanPremium} {
		fx := newEngineFixture(plan)
		fx.jobs.jobs[10].IsFlex = true

		decision, err := fx.engine.Unlock(context.Background(), 1, 100)
		require.NoError(t, err, "plan %s", plan)

		assert.Equal(t, OutcomeRequiresPayment, decision.Outcome)
		assert.Equal(t, domain.DefaultFlexUnlockCents, decision.PriceCents, "plan %s", plan)
	}
}

func TestUnlockFlexJobDeclinedOnBasic(t *testing.T) {
	fx := newEngineFixture(domain.PlanBasic)
	fx.jobs.jobs[10].IsFlex = true

	_, err := fx.engine.Unlock(context.Background(), 1, 100)
	assert.ErrorIs(t, err, domain.ErrFlexUnavailableOnPlan)
	assert.False(t, fx.matches.matches[100].EmployerUnlocked)
}

func TestUnlockIsIdempotent(t *testing.T) {
	fx := newEngineFixture(domain.PlanPremium)

	first, err := fx.engine.Unlock(context.Background(), 1, 100)
	require.NoError(t, err)
	require.Equal(t, OutcomeFree, first.Outcome)

	second, err := fx.engine.Unlock(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, OutcomeAlreadyUnlocked, second.Outcome)
	assert.Equal(t, domain.PaymentIncluded, second.PaymentStatus)
	assert.Len(t, fx.matches.payments, 1)
}

func TestUnlockQuotaRaceFallsThroughToPaid(t *testing.T) {
	fx := newEngineFixture(domain.PlanStandard)
	fx.seedUnlocked(9)
	// The write-time counter sees the last free slot already taken.
	used := 10
	fx.matches.forcedUsed = &used

	decision, err := fx.engine.Unlock(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, OutcomeRequiresPayment, decision.Outcome)
	assert.Equal(t, domain.DefaultStandardUnlockCents, decision.PriceCents)
	assert.False(t, fx.matches.matches[100].EmployerUnlocked)
	assert.Empty(t, fx.matches.payments)
}

func TestDecideCounterFailureBlocksFreePath(t *testing.T) {
	fx := newEngineFixture(domain.PlanStandard)
	fx.matches.countErr = errors.New("connection reset")

	_, err := fx.engine.Unlock(context.Background(), 1, 100)
	assert.Error(t, err)
	assert.False(t, fx.matches.matches[100].EmployerUnlocked)
}

func TestDecideRejectsNonOwner(t *testing.T) {
	fx := newEngineFixture(domain.PlanPremium)

	_, err := fx.engine.Unlock(context.Background(), 99, 100)
	assert.ErrorIs(t, err, domain.ErrNotMatchOwner)
}

func TestDecideReportsSwipeTimePayment(t *testing.T) {
	fx := newEngineFixture(domain.PlanBasic)
	at := fx.now.Add(-time.Minute)
	price := int64(2999)
	m := fx.matches.matches[100]
	m.Initiator = domain.RoleEmployer
	m.EmployerUnlocked = true
	m.EmployerPaymentStatus = domain.PaymentPaid
	m.EmployerUnlockedAt = &at
	m.EmployerPriceCharged = &price

	decision, err := fx.engine.Decide(context.Background(), 1, m)
	require.NoError(t, err)

	assert.Equal(t, OutcomeAlreadyUnlocked, decision.Outcome)
	assert.Equal(t, price, decision.PriceCents)
}

func TestCompletePaidRoundTrip(t *testing.T) {
	fx := newEngineFixture(domain.PlanBasic)

	err := fx.engine.CompletePaid(context.Background(), 1, 100, 2999, "cs_test_123")
	require.NoError(t, err)

	m := fx.matches.matches[100]
	assert.True(t, m.EmployerUnlocked)
	assert.Equal(t, domain.PaymentPaid, m.EmployerPaymentStatus)
	require.NotNil(t, m.EmployerPriceCharged)
	assert.Equal(t, int64(2999), *m.EmployerPriceCharged)
	require.Len(t, fx.matches.payments, 1)
	require.NotNil(t, fx.matches.payments[0].ProviderRef)
	assert.Equal(t, "cs_test_123", *fx.matches.payments[0].ProviderRef)

	// Replaying the success callback must not double-charge.
	require.NoError(t, fx.engine.CompletePaid(context.Background(), 1, 100, 2999, "cs_test_123"))
	assert.Len(t, fx.matches.payments, 1)
}

func TestMonthStartIsCalendarBoundary(t *testing.T) {
	fx := newEngineFixture(domain.PlanStandard)

	// Unlocks from last month never count against this month's allowance.
	lastMonth := time.Date(2026, time.February, 27, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		at := lastMonth.Add(time.Duration(i) * time.Minute)
		id := 2000 + i
		fx.matches.matches[id] = &domain.Match{
			ID: id, EmployerID: 1, SeekerID: 80 + i, JobID: 10,
			EmployerUnlocked:      true,
			EmployerPaymentStatus: domain.PaymentFree,
			EmployerUnlockedAt:    &at,
		}
	}

	decision, err := fx.engine.Unlock(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFree, decision.Outcome)
}
