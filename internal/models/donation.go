package models

import "time"

// Donation mirrors one completed checkout session from the payment provider.
// Amounts are in the smallest currency unit (cents). StripeSessionID carries
// a UNIQUE constraint; rows are written once and never mutated here.
type Donation struct {
	ID              int     `json:"id"`
	StripeSessionID string  `json:"stripe_session_id"`
	Amount          int64   `json:"amount"`
	Currency        string  `json:"currency"`
	DonorID         *string `json:"donor_id,omitempty"`
	DonorEmail      *string `json:"donor_email,omitempty"`
	BrandPartner    *string `json:"brand_partner,omitempty"`
	PaymentMethod   string  `json:"payment_method"`
	StripeFee       *int64  `json:"stripe_fee,omitempty"`
	NetAmount       *int64  `json:"net_amount,omitempty"`
	ReceiptURL      string  `json:"receipt_url"`
	Status          string  `json:"status"`
	// CreatedAt is the provider-side event time, not ingestion time.
	CreatedAt time.Time `json:"created_at"`
}
