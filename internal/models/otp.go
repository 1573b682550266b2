package models

import "time"

// OTPCode is one issued email verification code. At most one live row per
// email: every issuance replaces all prior rows for that address.
type OTPCode struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
