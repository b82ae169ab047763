package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
	"github.com/swipehire/backend/internal/usecase/entitlement"
)

// pendingTTL bounds how long an unfinished hosted checkout can still
// complete. Stripe expires its sessions after 24 hours as well.
const pendingTTL = 24 * time.Hour

// SessionParams is what the gateway needs to open a hosted checkout.
type SessionParams struct {
	AmountCents int64
	Description string
	MatchID     int
	EmployerID  int
	CustomerID  *string
}

// Session is the gateway's handle for a hosted checkout.
type Session struct {
	ID  string
	URL string
}

// Event is a gateway webhook notification reduced to what this service
// reacts to.
type Event struct {
	Type       string
	SessionID  string
	CustomerID string
	Plan       string
}

const (
	EventCheckoutCompleted   = "checkout.completed"
	EventSubscriptionChanged = "subscription.changed"
	EventSubscriptionEnded   = "subscription.ended"
)

// Gateway abstracts the payment provider: hosted checkout creation,
// off-session charges against a saved card, and webhook verification.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error)
	ChargeSavedCard(ctx context.Context, customerID string, amountCents int64, description string) (chargeID string, err error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
}

// CheckoutUseCase drives paid unlocks to completion. Entitlement state is
// mutated only after the gateway confirms money moved.
type CheckoutUseCase struct {
	engine       *entitlement.Engine
	matchRepo    repository.MatchRepository
	accountRepo  repository.AccountRepository
	sessionStore repository.CheckoutSessionStore
	gateway      Gateway
}

func NewCheckoutUseCase(
	engine *entitlement.Engine,
	matchRepo repository.MatchRepository,
	accountRepo repository.AccountRepository,
	sessionStore repository.CheckoutSessionStore,
	gateway Gateway,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		engine:       engine,
		matchRepo:    matchRepo,
		accountRepo:  accountRepo,
		sessionStore: sessionStore,
		gateway:      gateway,
	}
}

// StartResult is the outcome of asking to pay for an unlock. When the
// engine resolved the unlock without payment, CheckoutURL stays empty.
type StartResult struct {
	Decision    *entitlement.Decision `json:"decision"`
	CheckoutURL string                `json:"checkout_url,omitempty"`
	SessionID   string                `json:"session_id,omitempty"`
}

// StartUnlockCheckout re-runs the entitlement decision and, when payment is
// required, opens a hosted checkout session. Nothing in the database
// changes until the success webhook arrives.
func (uc *CheckoutUseCase) StartUnlockCheckout(ctx context.Context, employerID, matchID int) (*StartResult, error) {
	decision, err := uc.engine.Unlock(ctx, employerID, matchID)
	if err != nil {
		return nil, err
	}
	if decision.Outcome != entitlement.OutcomeRequiresPayment {
		return &StartResult{Decision: decision}, nil
	}

	employer, err := uc.accountRepo.GetByID(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employer: %w", err)
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, SessionParams{
		AmountCents: decision.PriceCents,
		Description: fmt.Sprintf("Unlock match #%d", matchID),
		MatchID:     matchID,
		EmployerID:  employerID,
		CustomerID:  employer.StripeCustomerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	pending := &domain.PendingCheckout{
		SessionID:   session.ID,
		MatchID:     matchID,
		EmployerID:  employerID,
		AmountCents: decision.PriceCents,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.sessionStore.SavePending(ctx, pending, pendingTTL); err != nil {
		return nil, err
	}

	return &StartResult{
		Decision:    decision,
		CheckoutURL: session.URL,
		SessionID:   session.ID,
	}, nil
}

// ChargeSavedCard settles a payable unlock against the employer's saved
// card in one call, then executes the paid-path mutation.
func (uc *CheckoutUseCase) ChargeSavedCard(ctx context.Context, employerID, matchID int) (*entitlement.Decision, error) {
	decision, err := uc.engine.Unlock(ctx, employerID, matchID)
	if err != nil {
		return nil, err
	}
	if decision.Outcome != entitlement.OutcomeRequiresPayment {
		return decision, nil
	}

	employer, err := uc.accountRepo.GetByID(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employer: %w", err)
	}
	if employer.StripeCustomerID == nil {
		return nil, domain.ErrInvalidInput
	}

	chargeID, err := uc.gateway.ChargeSavedCard(ctx, *employer.StripeCustomerID, decision.PriceCents,
		fmt.Sprintf("Unlock match #%d", matchID))
	if err != nil {
		return nil, fmt.Errorf("charge declined: %w", err)
	}

	if err := uc.engine.CompletePaid(ctx, employerID, matchID, decision.PriceCents, chargeID); err != nil {
		// Money moved but the unlock write failed; the charge id is in
		// the log for manual reconciliation.
		return nil, fmt.Errorf("charge %s succeeded but unlock failed: %w", chargeID, err)
	}

	done := *decision
	done.Outcome = entitlement.OutcomeAlreadyUnlocked
	done.PaymentStatus = domain.PaymentPaid
	return &done, nil
}

// HandleWebhook processes a verified gateway notification. Completed
// checkouts finish the paid-path unlock; unknown or expired sessions are
// ignored, which is exactly the abandoned-checkout semantics. Subscription
// lifecycle events only ever touch the account's plan.
func (uc *CheckoutUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := uc.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return fmt.Errorf("webhook verification failed: %w", err)
	}

	switch event.Type {
	case EventCheckoutCompleted:
		return uc.completeCheckout(ctx, event)

	case EventSubscriptionChanged:
		return uc.updatePlan(ctx, event.CustomerID, domain.ResolvePlan(event.Plan))

	case EventSubscriptionEnded:
		return uc.updatePlan(ctx, event.CustomerID, domain.PlanBasic)

	default:
		return nil
	}
}

func (uc *CheckoutUseCase) completeCheckout(ctx context.Context, event *Event) error {
	pending, err := uc.sessionStore.GetPending(ctx, event.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrCheckoutSessionNotFound) {
			// Replayed or expired session; nothing to do.
			log.Printf("checkout: ignoring completion for unknown session %s", event.SessionID)
			return nil
		}
		return err
	}

	if err := uc.engine.CompletePaid(ctx, pending.EmployerID, pending.MatchID, pending.AmountCents, event.SessionID); err != nil {
		return fmt.Errorf("failed to finish paid unlock for session %s: %w", event.SessionID, err)
	}
	if err := uc.sessionStore.DeletePending(ctx, event.SessionID); err != nil {
		log.Printf("checkout: failed to drop pending session %s: %v", event.SessionID, err)
	}

	// Stripe creates a customer for first-time buyers; remember it so the
	// next unlock can charge the saved card.
	uc.rememberCustomer(ctx, pending.EmployerID, event.CustomerID)
	return nil
}

func (uc *CheckoutUseCase) rememberCustomer(ctx context.Context, employerID int, customerID string) {
	if customerID == "" {
		return
	}
	employer, err := uc.accountRepo.GetByID(ctx, employerID)
	if err != nil || employer.StripeCustomerID != nil {
		return
	}
	if err := uc.accountRepo.SetStripeCustomerID(ctx, employerID, customerID); err != nil {
		log.Printf("checkout: failed to save customer id for employer %d: %v", employerID, err)
	}
}

func (uc *CheckoutUseCase) updatePlan(ctx context.Context, customerID string, plan domain.SubscriptionPlan) error {
	account, err := uc.accountRepo.GetByStripeCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			log.Printf("checkout: subscription event for unknown customer %s", customerID)
			return nil
		}
		return err
	}
	return uc.accountRepo.UpdateSubscriptionPlan(ctx, account.ID, plan)
}
