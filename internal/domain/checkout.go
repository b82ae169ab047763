package domain

import "time"

// PendingCheckout correlates a hosted checkout session with the unlock it
// will pay for. It lives in Redis with a TTL: an abandoned checkout simply
// expires and no state ever changes.
type PendingCheckout struct {
	SessionID   string    `json:"session_id"`
	MatchID     int       `json:"match_id"`
	EmployerID  int       `json:"employer_id"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}
