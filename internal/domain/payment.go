package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRecord is an append-only audit entry. One record is written every
// time an unlock decision is executed, including zero-amount free grants.
// Records are never mutated after creation.
type PaymentRecord struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	MatchID     int           `json:"match_id" db:"match_id"`
	EmployerID  int           `json:"employer_id" db:"employer_id"`
	AmountCents int64         `json:"amount_cents" db:"amount_cents"`
	Status      PaymentStatus `json:"status" db:"status"`
	ProviderRef *string       `json:"provider_ref" db:"provider_ref"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// Message is one chat message inside a match conversation.
type Message struct {
	ID        int       `json:"id" db:"id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	SenderID  int       `json:"sender_id" db:"sender_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
