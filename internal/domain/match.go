package domain

import "time"

type MatchStatus string

const (
	MatchConfirmed MatchStatus = "confirmed"
)

// PaymentStatus tracks how an employer's unlock of a match was settled.
// A match starts pending; once unlocked the status is free, included or paid
// and never reverts to pending.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentFree     PaymentStatus = "free"
	PaymentPaid     PaymentStatus = "paid"
	PaymentIncluded PaymentStatus = "included"
)

// Match is a confirmed mutual interest between one employer and one job
// seeker, tied to exactly one job posting. Initiator is the party whose like
// came FIRST, i.e. whose swipe did not trigger match creation.
type Match struct {
	ID                    int           `json:"id" db:"id"`
	EmployerID            int           `json:"employer_id" db:"employer_id"`
	SeekerID              int           `json:"seeker_id" db:"seeker_id"`
	JobID                 int           `json:"job_id" db:"job_id"`
	Status                MatchStatus   `json:"status" db:"status"`
	Initiator             Role          `json:"initiator" db:"initiator"`
	EmployerUnlocked      bool          `json:"employer_unlocked" db:"employer_unlocked"`
	EmployerPaymentStatus PaymentStatus `json:"employer_payment_status" db:"employer_payment_status"`
	EmployerUnlockedAt    *time.Time    `json:"employer_unlocked_at" db:"employer_unlocked_at"`
	EmployerPriceCharged  *int64        `json:"employer_price_charged" db:"employer_price_charged"`
	CreatedAt             time.Time     `json:"created_at" db:"created_at"`
}

func (m *Match) IsOwnedBy(employerID int) bool {
	return m.EmployerID == employerID
}

// ChargedCents returns the recorded charge for an unlocked match, defaulting
// to zero when no price was recorded.
func (m *Match) ChargedCents() int64 {
	if m.EmployerPriceCharged == nil {
		return 0
	}
	return *m.EmployerPriceCharged
}
