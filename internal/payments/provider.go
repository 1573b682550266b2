package payments

import "time"

// Session is the provider-neutral view of one completed checkout session.
type Session struct {
	ID              string
	Amount          int64 // smallest currency unit
	Currency        string
	CreatedAt       time.Time // provider-side event time
	Metadata        map[string]string
	ReceiptEmail    string
	PaymentIntentID string
}

// SessionDetails holds the fields that require secondary lookups
// (charge, balance transaction). Fee/Net stay nil when unknown.
type SessionDetails struct {
	PaymentMethod string
	ReceiptURL    string
	Fee           *int64
	Net           *int64
}

// Provider is the payment collaborator consumed by the reconciliation job.
// It is the sole source of truth for amounts, fees and receipt URLs.
type Provider interface {
	// ListCompletedSessions returns up to limit paid sessions, oldest data
	// the provider chooses to return first, optionally created at or after
	// since.
	ListCompletedSessions(limit int64, since *time.Time) ([]*Session, error)
	// SessionDetails resolves the payment instrument summary, receipt link
	// and fees for one session. Errors here are per-session, not fatal to a
	// batch.
	SessionDetails(s *Session) (*SessionDetails, error)
}
