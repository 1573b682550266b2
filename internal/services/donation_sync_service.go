package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"givestream/internal/models"
	"givestream/internal/payments"
	"givestream/internal/repositories"
)

// SessionOutcome is the per-session result of a reconciliation run.
type SessionOutcome struct {
	SessionID string `json:"session_id"`
	Outcome   string `json:"outcome"` // inserted | skipped | failed
	Error     string `json:"error,omitempty"`
}

type SyncSummary struct {
	Inserted int              `json:"inserted"`
	Skipped  int              `json:"skipped"`
	Failed   int              `json:"failed"`
	Total    int              `json:"total"`
	Results  []SessionOutcome `json:"results"`
}

type DonationSyncService interface {
	// Run mirrors up to limit completed provider sessions into the local
	// ledger. Safe to re-run over the same or overlapping windows: sessions
	// already present by stripe_session_id are skipped. One session's
	// lookup or insert failure never aborts the batch.
	Run(limit int64, since *time.Time) (*SyncSummary, error)
}

type donationSyncService struct {
	provider payments.Provider
	repo     repositories.DonationRepository
	alerts   AlertService // optional
}

func NewDonationSyncService(provider payments.Provider, repo repositories.DonationRepository, alerts AlertService) DonationSyncService {
	return &donationSyncService{provider: provider, repo: repo, alerts: alerts}
}

func (s *donationSyncService) Run(limit int64, since *time.Time) (*SyncSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	sessions, err := s.provider.ListCompletedSessions(limit, since)
	if err != nil {
		return nil, fmt.Errorf("donation sync: %w", err)
	}

	summary := &SyncSummary{Total: len(sessions)}
	for _, sess := range sessions {
		outcome := s.processSession(sess)
		summary.Results = append(summary.Results, outcome)
		switch outcome.Outcome {
		case "inserted":
			summary.Inserted++
		case "skipped":
			summary.Skipped++
		default:
			summary.Failed++
		}
	}

	log.Printf("[donations][sync] done: inserted=%d skipped=%d failed=%d total=%d",
		summary.Inserted, summary.Skipped, summary.Failed, summary.Total)
	return summary, nil
}

func (s *donationSyncService) processSession(sess *payments.Session) SessionOutcome {
	exists, err := s.repo.ExistsBySessionID(sess.ID)
	if err != nil {
		return SessionOutcome{SessionID: sess.ID, Outcome: "failed", Error: err.Error()}
	}
	if exists {
		return SessionOutcome{SessionID: sess.ID, Outcome: "skipped"}
	}

	details, err := s.provider.SessionDetails(sess)
	if err != nil {
		return SessionOutcome{SessionID: sess.ID, Outcome: "failed", Error: err.Error()}
	}

	d := normalizeDonation(sess, details)
	inserted, err := s.repo.InsertIfAbsent(d)
	if err != nil {
		return SessionOutcome{SessionID: sess.ID, Outcome: "failed", Error: err.Error()}
	}
	if !inserted {
		// unique constraint caught a concurrent run
		return SessionOutcome{SessionID: sess.ID, Outcome: "skipped"}
	}

	if s.alerts != nil {
		if err := s.alerts.DonationReceived(d); err != nil {
			log.Printf("[donations][sync] alert failed: session=%s err=%v", sess.ID, err)
		}
	}
	return SessionOutcome{SessionID: sess.ID, Outcome: "inserted"}
}

// normalizeDonation maps provider metadata onto a ledger row: placeholder
// donor ids ("anonymous", blank) mean no donor, and a donor-supplied email
// in metadata wins over the provider's receipt email.
func normalizeDonation(sess *payments.Session, details *payments.SessionDetails) *models.Donation {
	d := &models.Donation{
		StripeSessionID: sess.ID,
		Amount:          sess.Amount,
		Currency:        strings.ToLower(sess.Currency),
		PaymentMethod:   details.PaymentMethod,
		StripeFee:       details.Fee,
		ReceiptURL:      details.ReceiptURL,
		Status:          "completed",
		CreatedAt:       sess.CreatedAt,
	}

	if details.Net != nil {
		d.NetAmount = details.Net
	} else if details.Fee != nil {
		net := sess.Amount - *details.Fee
		d.NetAmount = &net
	}

	if id := strings.TrimSpace(sess.Metadata["donor_id"]); id != "" && !strings.EqualFold(id, "anonymous") {
		d.DonorID = &id
	}
	email := strings.TrimSpace(sess.Metadata["donor_email"])
	if email == "" {
		email = strings.TrimSpace(sess.ReceiptEmail)
	}
	if email != "" {
		d.DonorEmail = &email
	}
	if bp := strings.TrimSpace(sess.Metadata["brand_partner"]); bp != "" {
		d.BrandPartner = &bp
	}
	return d
}
