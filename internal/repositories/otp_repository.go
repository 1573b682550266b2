package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"givestream/internal/models"
)

type OTPRepository interface {
	// Replace deletes every code for the email and inserts the new one in a
	// single transaction, so at most one live code exists per address.
	Replace(email, code string, createdAt, expiresAt time.Time) (int64, error)
	GetByEmailAndCode(email, code string) (*models.OTPCode, error)
	LatestCreatedAt(email string) (*time.Time, error)
	DeleteByEmail(email string) error
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

func (r *otpRepository) Replace(email, code string, createdAt, expiresAt time.Time) (int64, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("otp replace begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM otp_codes WHERE email = $1`, email); err != nil {
		return 0, fmt.Errorf("otp replace delete: %w", err)
	}

	const q = `
		INSERT INTO otp_codes (email, code, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	if err := tx.QueryRow(q, email, code, createdAt, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("otp replace insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("otp replace commit: %w", err)
	}
	return id, nil
}

func (r *otpRepository) GetByEmailAndCode(email, code string) (*models.OTPCode, error) {
	const q = `
		SELECT id, email, code, expires_at, created_at
		FROM otp_codes
		WHERE email = $1 AND code = $2
	`
	row := r.DB.QueryRow(q, email, code)
	var c models.OTPCode
	if err := row.Scan(&c.ID, &c.Email, &c.Code, &c.ExpiresAt, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("otp get: %w", err)
	}
	return &c, nil
}

// LatestCreatedAt returns when the most recent code for the email was issued
// (nil if none), used for the resend throttle.
func (r *otpRepository) LatestCreatedAt(email string) (*time.Time, error) {
	const q = `
		SELECT created_at
		FROM otp_codes
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var t time.Time
	if err := r.DB.QueryRow(q, email).Scan(&t); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("otp latest: %w", err)
	}
	return &t, nil
}

func (r *otpRepository) DeleteByEmail(email string) error {
	if _, err := r.DB.Exec(`DELETE FROM otp_codes WHERE email = $1`, email); err != nil {
		return fmt.Errorf("otp delete by email: %w", err)
	}
	return nil
}
