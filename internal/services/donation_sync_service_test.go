package services

import (
	"errors"
	"testing"
	"time"

	"givestream/internal/models"
	"givestream/internal/payments"
)

type fakeProvider struct {
	sessions   []*payments.Session
	details    map[string]*payments.SessionDetails
	detailsErr map[string]error
}

func (p *fakeProvider) ListCompletedSessions(limit int64, since *time.Time) ([]*payments.Session, error) {
	var out []*payments.Session
	for _, s := range p.sessions {
		if since != nil && s.CreatedAt.Before(*since) {
			continue
		}
		out = append(out, s)
		if int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (p *fakeProvider) SessionDetails(s *payments.Session) (*payments.SessionDetails, error) {
	if err := p.detailsErr[s.ID]; err != nil {
		return nil, err
	}
	if d, ok := p.details[s.ID]; ok {
		return d, nil
	}
	return &payments.SessionDetails{}, nil
}

type fakeDonationRepo struct {
	bySession map[string]*models.Donation
	nextID    int
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{bySession: make(map[string]*models.Donation)}
}

func (r *fakeDonationRepo) ExistsBySessionID(id string) (bool, error) {
	_, ok := r.bySession[id]
	return ok, nil
}

func (r *fakeDonationRepo) InsertIfAbsent(d *models.Donation) (bool, error) {
	if _, ok := r.bySession[d.StripeSessionID]; ok {
		return false, nil
	}
	r.nextID++
	d.ID = r.nextID
	r.bySession[d.StripeSessionID] = d
	return true, nil
}

func (r *fakeDonationRepo) GetByID(id int) (*models.Donation, error) {
	for _, d := range r.bySession {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDonationRepo) ListRecent(limit int) ([]*models.Donation, error) {
	var out []*models.Donation
	for _, d := range r.bySession {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDonationRepo) TotalRaised() (int64, error) {
	var total int64
	for _, d := range r.bySession {
		total += d.Amount
	}
	return total, nil
}

func sessionAt(id string, amount int64, created time.Time) *payments.Session {
	return &payments.Session{
		ID: id, Amount: amount, Currency: "usd",
		CreatedAt: created, Metadata: map[string]string{},
	}
}

func TestDonationSync_Run(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("mixed batch: one known, one new", func(t *testing.T) {
		repo := newFakeDonationRepo()
		repo.bySession["cs_old"] = &models.Donation{ID: 1, StripeSessionID: "cs_old"}
		provider := &fakeProvider{sessions: []*payments.Session{
			sessionAt("cs_old", 1000, base),
			sessionAt("cs_new", 2500, base.Add(time.Hour)),
		}}
		svc := NewDonationSyncService(provider, repo, nil)

		summary, err := svc.Run(100, nil)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if summary.Inserted != 1 || summary.Skipped != 1 || summary.Failed != 0 {
			t.Errorf("got inserted=%d skipped=%d failed=%d", summary.Inserted, summary.Skipped, summary.Failed)
		}
	})

	t.Run("re-running the same window inserts nothing", func(t *testing.T) {
		repo := newFakeDonationRepo()
		provider := &fakeProvider{sessions: []*payments.Session{
			sessionAt("cs_1", 1000, base),
			sessionAt("cs_2", 2000, base.Add(time.Minute)),
		}}
		svc := NewDonationSyncService(provider, repo, nil)

		first, err := svc.Run(100, nil)
		if err != nil {
			t.Fatalf("first run: %v", err)
		}
		if first.Inserted != 2 {
			t.Fatalf("first run inserted=%d", first.Inserted)
		}

		second, err := svc.Run(100, nil)
		if err != nil {
			t.Fatalf("second run: %v", err)
		}
		if second.Inserted != 0 || second.Skipped != 2 {
			t.Errorf("second run must skip everything, got inserted=%d skipped=%d", second.Inserted, second.Skipped)
		}
		if len(repo.bySession) != 2 {
			t.Errorf("ledger grew to %d rows", len(repo.bySession))
		}
	})

	t.Run("a failing detail lookup does not abort the batch", func(t *testing.T) {
		repo := newFakeDonationRepo()
		provider := &fakeProvider{
			sessions: []*payments.Session{
				sessionAt("cs_bad", 1000, base),
				sessionAt("cs_ok", 2000, base.Add(time.Minute)),
			},
			detailsErr: map[string]error{"cs_bad": errors.New("stripe 500")},
		}
		svc := NewDonationSyncService(provider, repo, nil)

		summary, err := svc.Run(100, nil)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if summary.Failed != 1 || summary.Inserted != 1 {
			t.Errorf("got inserted=%d failed=%d", summary.Inserted, summary.Failed)
		}
		if _, ok := repo.bySession["cs_ok"]; !ok {
			t.Error("the healthy session must still be mirrored")
		}
		var failed *SessionOutcome
		for i := range summary.Results {
			if summary.Results[i].SessionID == "cs_bad" {
				failed = &summary.Results[i]
			}
		}
		if failed == nil || failed.Outcome != "failed" || failed.Error == "" {
			t.Errorf("per-session failure not reported: %+v", failed)
		}
	})

	t.Run("since filters on provider event time", func(t *testing.T) {
		repo := newFakeDonationRepo()
		provider := &fakeProvider{sessions: []*payments.Session{
			sessionAt("cs_before", 1000, base),
			sessionAt("cs_after", 2000, base.Add(2*time.Hour)),
		}}
		svc := NewDonationSyncService(provider, repo, nil)

		since := base.Add(time.Hour)
		summary, err := svc.Run(100, &since)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if summary.Total != 1 || summary.Inserted != 1 {
			t.Errorf("got total=%d inserted=%d", summary.Total, summary.Inserted)
		}
	})
}

func TestNormalizeDonation(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("anonymous sentinel and blanks mean no donor", func(t *testing.T) {
		for _, donorID := range []string{"", "  ", "anonymous", "Anonymous"} {
			s := sessionAt("cs_1", 1000, base)
			s.Metadata["donor_id"] = donorID
			d := normalizeDonation(s, &payments.SessionDetails{})
			if d.DonorID != nil {
				t.Errorf("donor_id %q should normalize to nil, got %q", donorID, *d.DonorID)
			}
		}
	})

	t.Run("metadata email wins over receipt email", func(t *testing.T) {
		s := sessionAt("cs_1", 1000, base)
		s.ReceiptEmail = "receipt@x.com"
		s.Metadata["donor_email"] = "donor@x.com"
		d := normalizeDonation(s, &payments.SessionDetails{})
		if d.DonorEmail == nil || *d.DonorEmail != "donor@x.com" {
			t.Errorf("expected donor@x.com, got %v", d.DonorEmail)
		}
	})

	t.Run("receipt email is the fallback", func(t *testing.T) {
		s := sessionAt("cs_1", 1000, base)
		s.ReceiptEmail = "receipt@x.com"
		d := normalizeDonation(s, &payments.SessionDetails{})
		if d.DonorEmail == nil || *d.DonorEmail != "receipt@x.com" {
			t.Errorf("expected receipt@x.com, got %v", d.DonorEmail)
		}
	})

	t.Run("net amount derives from the fee when the provider omits it", func(t *testing.T) {
		fee := int64(59)
		s := sessionAt("cs_1", 1000, base)
		d := normalizeDonation(s, &payments.SessionDetails{Fee: &fee})
		if d.NetAmount == nil || *d.NetAmount != 941 {
			t.Errorf("expected net 941, got %v", d.NetAmount)
		}
	})

	t.Run("unknown fee leaves net unset", func(t *testing.T) {
		s := sessionAt("cs_1", 1000, base)
		d := normalizeDonation(s, &payments.SessionDetails{})
		if d.NetAmount != nil || d.StripeFee != nil {
			t.Error("fee and net must stay nil when unknown")
		}
	})

	t.Run("created_at is the provider event time", func(t *testing.T) {
		s := sessionAt("cs_1", 1000, base)
		d := normalizeDonation(s, &payments.SessionDetails{})
		if !d.CreatedAt.Equal(base) {
			t.Errorf("expected %v, got %v", base, d.CreatedAt)
		}
	})
}
