package domain

import "time"

// Session backs a JWT: tokens carry the session id so logout can revoke
// server-side before expiry.
type Session struct {
	ID         int       `json:"id" db:"id"`
	AccountID  int       `json:"account_id" db:"account_id"`
	Token      string    `json:"-" db:"token"`
	DeviceInfo *string   `json:"device_info" db:"device_info"`
	IPAddress  *string   `json:"ip_address" db:"ip_address"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
