package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"givestream/internal/models"
)

type PasswordResetRepository interface {
	// Replace deletes every token for the email and inserts the new one in a
	// single transaction (one live token per address).
	Replace(email, token string, expiresAt time.Time) (*models.PasswordResetToken, error)
	// GetActiveByToken matches only unused, unexpired tokens.
	GetActiveByToken(token string, now time.Time) (*models.PasswordResetToken, error)
	MarkUsed(id int) error
	DeleteByEmail(email string) error
	LatestCreatedAt(email string) (*time.Time, error)
}

type passwordResetRepository struct {
	DB *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{DB: db}
}

func (r *passwordResetRepository) Replace(email, token string, expiresAt time.Time) (*models.PasswordResetToken, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("reset replace begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM password_reset_tokens WHERE email = $1`, email); err != nil {
		return nil, fmt.Errorf("reset replace delete: %w", err)
	}

	const q = `
		INSERT INTO password_reset_tokens (email, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	pr := &models.PasswordResetToken{Email: email, Token: token, ExpiresAt: expiresAt}
	if err := tx.QueryRow(q, email, token, expiresAt).Scan(&pr.ID, &pr.CreatedAt); err != nil {
		return nil, fmt.Errorf("reset replace insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("reset replace commit: %w", err)
	}
	return pr, nil
}

func (r *passwordResetRepository) GetActiveByToken(token string, now time.Time) (*models.PasswordResetToken, error) {
	const q = `
		SELECT id, email, token, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE token = $1 AND used_at IS NULL AND expires_at > $2
	`
	pr := &models.PasswordResetToken{}
	var usedAt sql.NullTime
	if err := r.DB.QueryRow(q, token, now).Scan(
		&pr.ID, &pr.Email, &pr.Token, &pr.ExpiresAt, &usedAt, &pr.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("reset get active: %w", err)
	}
	if usedAt.Valid {
		pr.UsedAt = &usedAt.Time
	}
	return pr, nil
}

func (r *passwordResetRepository) MarkUsed(id int) error {
	const q = `
		UPDATE password_reset_tokens SET used_at = NOW() WHERE id = $1
	`
	if _, err := r.DB.Exec(q, id); err != nil {
		return fmt.Errorf("reset mark used: %w", err)
	}
	return nil
}

func (r *passwordResetRepository) DeleteByEmail(email string) error {
	if _, err := r.DB.Exec(`DELETE FROM password_reset_tokens WHERE email = $1`, email); err != nil {
		return fmt.Errorf("reset delete by email: %w", err)
	}
	return nil
}

func (r *passwordResetRepository) LatestCreatedAt(email string) (*time.Time, error) {
	const q = `
		SELECT created_at
		FROM password_reset_tokens
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var t time.Time
	if err := r.DB.QueryRow(q, email).Scan(&t); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("reset latest: %w", err)
	}
	return &t, nil
}
