package repositories

import (
	"database/sql"
	"fmt"

	"givestream/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(email, passwordHash string) error
	MarkVerified(email string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (email, display_name, password_hash, is_verified, verified_at)
		VALUES ($1, $2, $3, FALSE, NULL)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, user.Email, user.DisplayName, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, email, display_name, password_hash, is_verified, verified_at, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, email, display_name, password_hash, is_verified, verified_at, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRow(q, email))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var verifiedAt sql.NullTime
	if err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash,
		&u.IsVerified, &verifiedAt, &u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	if verifiedAt.Valid {
		u.VerifiedAt = &verifiedAt.Time
	}
	return u, nil
}

func (r *userRepository) UpdatePassword(email, passwordHash string) error {
	const q = `
		UPDATE users SET password_hash = $2 WHERE email = $1
	`
	if _, err := r.DB.Exec(q, email, passwordHash); err != nil {
		return fmt.Errorf("user update password: %w", err)
	}
	return nil
}

func (r *userRepository) MarkVerified(email string) error {
	const q = `
		UPDATE users SET is_verified = TRUE, verified_at = NOW() WHERE email = $1
	`
	if _, err := r.DB.Exec(q, email); err != nil {
		return fmt.Errorf("user mark verified: %w", err)
	}
	return nil
}
