package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"
	checkoutuc "github.com/swipehire/backend/internal/usecase/checkout"
)

// StripeGateway implements checkout.Gateway against the Stripe API.
type StripeGateway struct {
	webhookSecret string
	successURL    string
	cancelURL     string
	currency      string
}

func NewStripeGateway(secretKey, webhookSecret, successURL, cancelURL, currency string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
		currency:      currency,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p checkoutuc.SessionParams) (*checkoutuc.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.currency),
					UnitAmount: stripe.Int64(p.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("match_id", strconv.Itoa(p.MatchID))
	params.AddMetadata("employer_id", strconv.Itoa(p.EmployerID))
	if p.CustomerID != nil {
		params.Customer = stripe.String(*p.CustomerID)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &checkoutuc.Session{ID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeGateway) ChargeSavedCard(ctx context.Context, customerID string, amountCents int64, description string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(g.currency),
		Customer:    stripe.String(customerID),
		Description: stripe.String(description),
		Confirm:     stripe.Bool(true),
		OffSession:  stripe.Bool(true),
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return "", fmt.Errorf("payment intent %s not settled: %s", intent.ID, intent.Status)
	}
	return intent.ID, nil
}

// ParseWebhook verifies the Stripe signature and reduces the event to the
// neutral shape checkout orchestration consumes.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*checkoutuc.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, err
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("malformed checkout.session payload: %w", err)
		}
		out := &checkoutuc.Event{
			Type:      checkoutuc.EventCheckoutCompleted,
			SessionID: sess.ID,
		}
		if sess.Customer != nil {
			out.CustomerID = sess.Customer.ID
		}
		return out, nil

	case "customer.subscription.updated", "customer.subscription.created":
		sub, err := decodeSubscription(event.Data.Raw)
		if err != nil {
			return nil, err
		}
		return &checkoutuc.Event{
			Type:       checkoutuc.EventSubscriptionChanged,
			CustomerID: subCustomerID(sub),
			Plan:       subPlan(sub),
		}, nil

	case "customer.subscription.deleted":
		sub, err := decodeSubscription(event.Data.Raw)
		if err != nil {
			return nil, err
		}
		return &checkoutuc.Event{
			Type:       checkoutuc.EventSubscriptionEnded,
			CustomerID: subCustomerID(sub),
		}, nil

	default:
		return &checkoutuc.Event{Type: string(event.Type)}, nil
	}
}

func decodeSubscription(raw json.RawMessage) (*stripe.Subscription, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return nil, fmt.Errorf("malformed subscription payload: %w", err)
	}
	return &sub, nil
}

func subCustomerID(sub *stripe.Subscription) string {
	if sub.Customer == nil {
		return ""
	}
	return sub.Customer.ID
}

// subPlan extracts the plan name from the subscription's price lookup key,
// which is provisioned as basic/standard/premium in the Stripe dashboard.
func subPlan(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return ""
	}
	price := sub.Items.Data[0].Price
	if price == nil {
		return ""
	}
	if price.LookupKey != "" {
		return price.LookupKey
	}
	return price.Nickname
}
