package repositories

import (
	"database/sql"
	"fmt"

	"givestream/internal/models"
)

type DonationRepository interface {
	ExistsBySessionID(sessionID string) (bool, error)
	// InsertIfAbsent relies on the UNIQUE constraint on stripe_session_id:
	// it returns false (and no error) when the session is already mirrored.
	InsertIfAbsent(d *models.Donation) (bool, error)
	GetByID(id int) (*models.Donation, error)
	ListRecent(limit int) ([]*models.Donation, error)
	TotalRaised() (int64, error)
}

type donationRepository struct {
	DB *sql.DB
}

func NewDonationRepository(db *sql.DB) DonationRepository {
	return &donationRepository{DB: db}
}

func (r *donationRepository) ExistsBySessionID(sessionID string) (bool, error) {
	const q = `
		SELECT EXISTS(SELECT 1 FROM donations WHERE stripe_session_id = $1)
	`
	var exists bool
	if err := r.DB.QueryRow(q, sessionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("donation exists: %w", err)
	}
	return exists, nil
}

func (r *donationRepository) InsertIfAbsent(d *models.Donation) (bool, error) {
	const q = `
		INSERT INTO donations (
			stripe_session_id, amount, currency, donor_id, donor_email,
			brand_partner, payment_method, stripe_fee, net_amount,
			receipt_url, status, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (stripe_session_id) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRow(q,
		d.StripeSessionID, d.Amount, d.Currency, d.DonorID, d.DonorEmail,
		d.BrandPartner, d.PaymentMethod, d.StripeFee, d.NetAmount,
		d.ReceiptURL, d.Status, d.CreatedAt,
	).Scan(&d.ID)
	if err == sql.ErrNoRows {
		// conflict: another run already mirrored this session
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("donation insert: %w", err)
	}
	return true, nil
}

func (r *donationRepository) GetByID(id int) (*models.Donation, error) {
	const q = `
		SELECT id, stripe_session_id, amount, currency, donor_id, donor_email,
		       brand_partner, payment_method, stripe_fee, net_amount,
		       receipt_url, status, created_at
		FROM donations
		WHERE id = $1
	`
	d := &models.Donation{}
	if err := r.DB.QueryRow(q, id).Scan(
		&d.ID, &d.StripeSessionID, &d.Amount, &d.Currency, &d.DonorID, &d.DonorEmail,
		&d.BrandPartner, &d.PaymentMethod, &d.StripeFee, &d.NetAmount,
		&d.ReceiptURL, &d.Status, &d.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("donation get: %w", err)
	}
	return d, nil
}

func (r *donationRepository) ListRecent(limit int) ([]*models.Donation, error) {
	const q = `
		SELECT id, stripe_session_id, amount, currency, donor_id, donor_email,
		       brand_partner, payment_method, stripe_fee, net_amount,
		       receipt_url, status, created_at
		FROM donations
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("donation list: %w", err)
	}
	defer rows.Close()

	var out []*models.Donation
	for rows.Next() {
		d := &models.Donation{}
		if err := rows.Scan(
			&d.ID, &d.StripeSessionID, &d.Amount, &d.Currency, &d.DonorID, &d.DonorEmail,
			&d.BrandPartner, &d.PaymentMethod, &d.StripeFee, &d.NetAmount,
			&d.ReceiptURL, &d.Status, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("donation scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *donationRepository) TotalRaised() (int64, error) {
	const q = `
		SELECT COALESCE(SUM(amount), 0) FROM donations WHERE status = 'completed'
	`
	var total int64
	if err := r.DB.QueryRow(q).Scan(&total); err != nil {
		return 0, fmt.Errorf("donation total: %w", err)
	}
	return total, nil
}
