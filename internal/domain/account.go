package domain

import "time"

// Role determines which side of the marketplace an account is on.
// It is set at registration and never changes.
type Role string

const (
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "jobseeker"
)

// SubscriptionPlan is the employer's billing tier. Job seekers always stay on
// the default plan; plans only affect unlock pricing for employers.
type SubscriptionPlan string

const (
	PlanBasic    SubscriptionPlan = "basic"
	PlanStandard SubscriptionPlan = "standard"
	PlanPremium  SubscriptionPlan = "premium"
)

// ResolvePlan maps a raw plan string to a known plan, falling back to basic.
// Basic is the most expensive path, so an unresolvable plan can never grant
// unintended free access.
func ResolvePlan(raw string) SubscriptionPlan {
	switch SubscriptionPlan(raw) {
	case PlanStandard:
		return PlanStandard
	case PlanPremium:
		return PlanPremium
	default:
		return PlanBasic
	}
}

type Account struct {
	ID               int              `json:"id" db:"id"`
	Email            string           `json:"email" db:"email"`
	PasswordHash     string           `json:"-" db:"password_hash"`
	Role             Role             `json:"role" db:"role"`
	SubscriptionPlan SubscriptionPlan `json:"subscription_plan" db:"subscription_plan"`
	DisplayName      string           `json:"display_name" db:"display_name"`
	CompanyName      *string          `json:"company_name" db:"company_name"`
	City             *string          `json:"city" db:"city"`
	LocationLat      *float64         `json:"location_lat" db:"location_lat"`
	LocationLon      *float64         `json:"location_lon" db:"location_lon"`
	StripeCustomerID *string          `json:"-" db:"stripe_customer_id"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

func (a *Account) IsEmployer() bool {
	return a.Role == RoleEmployer
}
