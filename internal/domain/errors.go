package domain

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")

	ErrJobNotFound   = errors.New("job posting not found")
	ErrNotJobOwner   = errors.New("job posting belongs to another employer")
	ErrMatchNotFound = errors.New("match not found")
	ErrNotMatchOwner = errors.New("match belongs to another employer")

	ErrSwipeAlreadyExists = errors.New("already swiped on this target")

	// ErrFlexUnavailableOnPlan is a decline, not a price: basic-plan
	// employers cannot unlock flex matches at any price.
	ErrFlexUnavailableOnPlan = errors.New("flex unlocks are not available on your plan")

	// ErrQuotaRace means a concurrent unlock consumed the last free slot
	// between decision and grant. The caller should re-decide; the usual
	// outcome is a route to payment.
	ErrQuotaRace = errors.New("monthly free allowance exhausted")

	// ErrAlreadyUnlocked is returned by the conditional unlock write when
	// the match was unlocked earlier. Callers treat it as an idempotent
	// no-op, never as a second charge.
	ErrAlreadyUnlocked = errors.New("match already unlocked")

	ErrMatchLocked = errors.New("match is not unlocked")

	ErrCheckoutSessionNotFound = errors.New("checkout session not found or expired")
)
