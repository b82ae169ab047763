package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
	"github.com/swipehire/backend/internal/usecase/entitlement"
)

type stubAccounts struct {
	accounts map[int]*domain.Account
	plans    map[int]domain.SubscriptionPlan
}

func (s *stubAccounts) GetByID(_ context.Context, id int) (*domain.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (s *stubAccounts) GetByStripeCustomerID(_ context.Context, customerID string) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.StripeCustomerID != nil && *a.StripeCustomerID == customerID {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (s *stubAccounts) UpdateSubscriptionPlan(_ context.Context, id int, plan domain.SubscriptionPlan) error {
	if s.plans == nil {
		s.plans = map[int]domain.SubscriptionPlan{}
	}
	s.plans[id] = plan
	s.accounts[id].SubscriptionPlan = plan
	return nil
}

func (s *stubAccounts) Create(context.Context, *domain.Account) error { panic("unexpected call") }
func (s *stubAccounts) GetByEmail(context.Context, string) (*domain.Account, error) {
	panic("unexpected call")
}
func (s *stubAccounts) SetStripeCustomerID(_ context.Context, id int, customerID string) error {
	s.accounts[id].StripeCustomerID = &customerID
	return nil
}

func (s *stubAccounts) Update(context.Context, *domain.Account) error { panic("unexpected call") }
func (s *stubAccounts) SearchSeekers(context.Context, map[string]interface{}, int, int) ([]*domain.Account, error) {
	panic("unexpected call")
}

type stubJobs struct {
	jobs map[int]*domain.JobPosting
}

func (s *stubJobs) GetByID(_ context.Context, id int) (*domain.JobPosting, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return j, nil
}
func (s *stubJobs) Create(context.Context, *domain.JobPosting) error { panic("unexpected call") }
func (s *stubJobs) GetByEmployer(context.Context, int) ([]*domain.JobPosting, error) {
	panic("unexpected call")
}
func (s *stubJobs) Update(context.Context, *domain.JobPosting) error { panic("unexpected call") }
func (s *stubJobs) SetActive(context.Context, int, int, bool) error  { panic("unexpected call") }
func (s *stubJobs) SearchActive(context.Context, int, int, int) ([]*domain.JobPosting, error) {
	panic("unexpected call")
}

type stubMatches struct {
	matches  map[int]*domain.Match
	unlocks  int
	payments []*domain.PaymentRecord
}

func (s *stubMatches) GetByID(_ context.Context, id int) (*domain.Match, error) {
	m, ok := s.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return m, nil
}

func (s *stubMatches) CountUnlockedSince(context.Context, int, time.Time) (int, error) {
	return 0, nil
}

func (s *stubMatches) ExecuteUnlock(_ context.Context, exec repository.UnlockExecution) error {
	m, ok := s.matches[exec.MatchID]
	if !ok {
		return domain.ErrMatchNotFound
	}
	if m.EmployerID != exec.EmployerID {
		return domain.ErrNotMatchOwner
	}
	if m.EmployerUnlocked {
		return domain.ErrAlreadyUnlocked
	}
	now := time.Now()
	m.EmployerUnlocked = true
	m.EmployerUnlockedAt = &now
	m.EmployerPaymentStatus = exec.Status
	m.EmployerPriceCharged = &exec.AmountCents
	s.unlocks++
	s.payments = append(s.payments, &domain.PaymentRecord{
		MatchID:     exec.MatchID,
		EmployerID:  exec.EmployerID,
		AmountCents: exec.AmountCents,
		Status:      exec.Status,
		ProviderRef: exec.ProviderRef,
	})
	return nil
}

func (s *stubMatches) Create(context.Context, *domain.Match) error { panic("unexpected call") }
func (s *stubMatches) GetByPair(context.Context, int, int) (*domain.Match, error) {
	panic("unexpected call")
}
func (s *stubMatches) GetEmployerMatches(context.Context, int, int, int) ([]*domain.Match, error) {
	panic("unexpected call")
}
func (s *stubMatches) GetSeekerMatches(context.Context, int, int, int) ([]*domain.Match, error) {
	panic("unexpected call")
}

// memSessionStore is an in-memory stand-in for the Redis pending store.
type memSessionStore struct {
	pending map[string]*domain.PendingCheckout
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{pending: map[string]*domain.PendingCheckout{}}
}

func (m *memSessionStore) SavePending(_ context.Context, p *domain.PendingCheckout, _ time.Duration) error {
	m.pending[p.SessionID] = p
	return nil
}

func (m *memSessionStore) GetPending(_ context.Context, sessionID string) (*domain.PendingCheckout, error) {
	p, ok := m.pending[sessionID]
	if !ok {
		return nil, domain.ErrCheckoutSessionNotFound
	}
	return p, nil
}

func (m *memSessionStore) DeletePending(_ context.Context, sessionID string) error {
	delete(m.pending, sessionID)
	return nil
}

type stubGateway struct {
	sessions  int
	charges   []int64
	chargeErr error
	event     *Event
	parseErr  error
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, params SessionParams) (*Session, error) {
	g.sessions++
	id := fmt.Sprintf("cs_test_%d", g.sessions)
	return &Session{ID: id, URL: "https://checkout.example/" + id}, nil
}

func (g *stubGateway) ChargeSavedCard(_ context.Context, customerID string, amountCents int64, _ string) (string, error) {
	if g.chargeErr != nil {
		return "", g.chargeErr
	}
	g.charges = append(g.charges, amountCents)
	return fmt.Sprintf("pi_test_%d", len(g.charges)), nil
}

func (g *stubGateway) ParseWebhook([]byte, string) (*Event, error) {
	if g.parseErr != nil {
		return nil, g.parseErr
	}
	return g.event, nil
}

type checkoutFixture struct {
	uc       *CheckoutUseCase
	accounts *stubAccounts
	matches  *stubMatches
	store    *memSessionStore
	gateway  *stubGateway
}

func newCheckoutFixture(plan domain.SubscriptionPlan) *checkoutFixture {
	customerID := "cus_test_1"
	accounts := &stubAccounts{accounts: map[int]*domain.Account{
		1: {ID: 1, Role: domain.RoleEmployer, SubscriptionPlan: plan, StripeCustomerID: &customerID},
	}}
	jobs := &stubJobs{jobs: map[int]*domain.JobPosting{
		10: {ID: 10, EmployerID: 1, Title: "Line Cook", IsActive: true},
	}}
	matches := &stubMatches{matches: map[int]*domain.Match{
		100: {
			ID: 100, EmployerID: 1, SeekerID: 2, JobID: 10,
			Status:                domain.MatchConfirmed,
			Initiator:             domain.RoleJobSeeker,
			EmployerPaymentStatus: domain.PaymentPending,
		},
	}}
	store := newMemSessionStore()
	gateway := &stubGateway{}

	engine := entitlement.NewEngine(accounts, matches, jobs, domain.DefaultPricing())
	uc := NewCheckoutUseCase(engine, matches, accounts, store, gateway)

	return &checkoutFixture{uc: uc, accounts: accounts, matches: matches, store: store, gateway: gateway}
}

func TestStartUnlockCheckoutFreePathSkipsGateway(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanPremium)

	result, err := fx.uc.StartUnlockCheckout(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, entitlement.OutcomeFree, result.Decision.Outcome)
	assert.Empty(t, result.CheckoutURL)
	assert.Zero(t, fx.gateway.sessions)
	assert.True(t, fx.matches.matches[100].EmployerUnlocked)
}

func TestStartUnlockCheckoutPaidPathOpensSession(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)

	result, err := fx.uc.StartUnlockCheckout(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, entitlement.OutcomeRequiresPayment, result.Decision.Outcome)
	assert.NotEmpty(t, result.CheckoutURL)
	assert.NotEmpty(t, result.SessionID)
	// The match stays locked; only the pending marker exists.
	assert.False(t, fx.matches.matches[100].EmployerUnlocked)
	pending, err := fx.store.GetPending(context.Background(), result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(2999), pending.AmountCents)
	assert.Equal(t, 100, pending.MatchID)
}

func TestWebhookCompletesPaidUnlock(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)

	result, err := fx.uc.StartUnlockCheckout(context.Background(), 1, 100)
	require.NoError(t, err)

	fx.gateway.event = &Event{Type: EventCheckoutCompleted, SessionID: result.SessionID}
	require.NoError(t, fx.uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	m := fx.matches.matches[100]
	assert.True(t, m.EmployerUnlocked)
	assert.Equal(t, domain.PaymentPaid, m.EmployerPaymentStatus)
	require.NotNil(t, m.EmployerPriceCharged)
	assert.Equal(t, int64(2999), *m.EmployerPriceCharged)

	// The pending marker is consumed.
	_, err = fx.store.GetPending(context.Background(), result.SessionID)
	assert.ErrorIs(t, err, domain.ErrCheckoutSessionNotFound)
}

func TestWebhookRemembersFirstTimeCustomer(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)
	fx.accounts.accounts[1].StripeCustomerID = nil

	result, err := fx.uc.StartUnlockCheckout(context.Background(), 1, 100)
	require.NoError(t, err)

	fx.gateway.event = &Event{Type: EventCheckoutCompleted, SessionID: result.SessionID, CustomerID: "cus_new"}
	require.NoError(t, fx.uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	require.NotNil(t, fx.accounts.accounts[1].StripeCustomerID)
	assert.Equal(t, "cus_new", *fx.accounts.accounts[1].StripeCustomerID)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)

	result, err := fx.uc.StartUnlockCheckout(context.Background(), 1, 100)
	require.NoError(t, err)

	fx.gateway.event = &Event{Type: EventCheckoutCompleted, SessionID: result.SessionID}
	require.NoError(t, fx.uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	require.NoError(t, fx.uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	assert.Equal(t, 1, fx.matches.unlocks)
	assert.Len(t, fx.matches.payments, 1)
}

func TestWebhookUnknownSessionIgnored(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)

	fx.gateway.event = &Event{Type: EventCheckoutCompleted, SessionID: "cs_expired"}
	require.NoError(t, fx.uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	assert.False(t, fx.matches.matches[100].EmployerUnlocked)
	assert.Zero(t, fx.matches.unlocks)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)
	fx.gateway.parseErr = errors.New("signature mismatch")

	err := fx.uc.HandleWebhook(context.Background(), []byte("{}"), "bad")
	assert.Error(t, err)
}

func TestAbandonedCheckoutChangesNothing(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)

	result, err := fx.uc.StartUnlockCheckout(context.Background(), 1, 100)
	require.NoError(t, err)

	// Simulate TTL expiry before the buyer ever pays.
	require.NoError(t, fx.store.DeletePending(context.Background(), result.SessionID))

	fx.gateway.event = &Event{Type: EventCheckoutCompleted, SessionID: result.SessionID}
	require.NoError(t, fx.uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	m := fx.matches.matches[100]
	assert.False(t, m.EmployerUnlocked)
	assert.Equal(t, domain.PaymentPending, m.EmployerPaymentStatus)
	assert.Empty(t, fx.matches.payments)
}

func TestChargeSavedCardSettlesInline(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)

	decision, err := fx.uc.ChargeSavedCard(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, entitlement.OutcomeAlreadyUnlocked, decision.Outcome)
	assert.Equal(t, []int64{2999}, fx.gateway.charges)
	assert.True(t, fx.matches.matches[100].EmployerUnlocked)
	require.Len(t, fx.matches.payments, 1)
	require.NotNil(t, fx.matches.payments[0].ProviderRef)
}

func TestChargeSavedCardDeclineLeavesMatchLocked(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)
	fx.gateway.chargeErr = errors.New("card declined")

	_, err := fx.uc.ChargeSavedCard(context.Background(), 1, 100)
	assert.Error(t, err)
	assert.False(t, fx.matches.matches[100].EmployerUnlocked)
}

func TestChargeSavedCardRequiresSavedCard(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)
	fx.accounts.accounts[1].StripeCustomerID = nil

	_, err := fx.uc.ChargeSavedCard(context.Background(), 1, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubscriptionWebhooksUpdatePlan(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)

	fx.gateway.event = &Event{Type: EventSubscriptionChanged, CustomerID: "cus_test_1", Plan: "premium"}
	require.NoError(t, fx.uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	assert.Equal(t, domain.PlanPremium, fx.accounts.accounts[1].SubscriptionPlan)

	fx.gateway.event = &Event{Type: EventSubscriptionEnded, CustomerID: "cus_test_1"}
	require.NoError(t, fx.uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	assert.Equal(t, domain.PlanBasic, fx.accounts.accounts[1].SubscriptionPlan)
}

func TestSubscriptionWebhookUnknownCustomerIgnored(t *testing.T) {
	fx := newCheckoutFixture(domain.PlanBasic)

	fx.gateway.event = &Event{Type: EventSubscriptionChanged, CustomerID: "cus_unknown", Plan: "premium"}
	assert.NoError(t, fx.uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
}
