package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"givestream/internal/repositories"
	"givestream/internal/utils"
)

var (
	ErrTokenInvalid = errors.New("invalid or expired token")
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

const (
	resetRequestWindow = 60 * time.Second
	resetTokenTTL      = 1 * time.Hour
	minPasswordLen     = 8
)

type PasswordResetService interface {
	// RequestReset always succeeds from the caller's point of view — the
	// response never reveals whether an account exists for the email.
	RequestReset(email string) error
	// ResetPassword consumes a token exactly once and returns the account
	// email for client-side messaging.
	ResetPassword(token, newPassword string) (string, error)
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	repo     repositories.PasswordResetRepository
	emails   EmailService
	auth     AuthService
	baseURL  string
	now      func() time.Time
}

func NewPasswordResetService(
	userRepo repositories.UserRepository,
	repo repositories.PasswordResetRepository,
	emails EmailService,
	auth AuthService,
	baseURL string,
) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		repo:     repo,
		emails:   emails,
		auth:     auth,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}
}

func (s *passwordResetService) RequestReset(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}

	// per-email throttle; failure branch indistinguishable from success
	last, err := s.repo.LatestCreatedAt(email)
	if err != nil {
		log.Printf("[password-reset] request for %q: throttle lookup error: %v", email, err)
		return nil
	}
	if last != nil && s.now().Sub(*last) < resetRequestWindow {
		log.Printf("[password-reset] request for %q: throttled", email)
		return nil
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user == nil {
		// don't leak existence
		log.Printf("[password-reset] request for %q: user not found or error: %v", email, err)
		return nil
	}

	token, err := utils.NewRandomToken(32)
	if err != nil {
		log.Printf("[password-reset] request for %q: token generation error: %v", email, err)
		return nil
	}
	if _, err := s.repo.Replace(email, token, s.now().Add(resetTokenTTL)); err != nil {
		log.Printf("[password-reset] request for %q: store error: %v", email, err)
		return nil
	}

	if s.emails != nil {
		link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
		if err := s.emails.SendPasswordResetEmail(user.Email, link); err != nil {
			log.Printf("[password-reset] failed to send email to %s: %v", user.Email, err)
		}
	}
	return nil
}

func (s *passwordResetService) ResetPassword(token, newPassword string) (string, error) {
	token = strings.TrimSpace(token)
	newPassword = strings.TrimSpace(newPassword)
	if token == "" {
		return "", ErrTokenInvalid
	}
	if len(newPassword) < minPasswordLen {
		return "", ErrWeakPassword
	}

	pr, err := s.repo.GetActiveByToken(token, s.now())
	if err != nil {
		return "", err
	}
	if pr == nil {
		return "", ErrTokenInvalid
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.UpdatePassword(pr.Email, hash); err != nil {
		return "", err
	}
	if err := s.repo.MarkUsed(pr.ID); err != nil {
		return "", err
	}
	// sweep every token for the email, covering races with a concurrent
	// reset attempt that read the row before MarkUsed landed
	if err := s.repo.DeleteByEmail(pr.Email); err != nil {
		log.Printf("[password-reset] sweep failed: email=%s err=%v", pr.Email, err)
	}

	log.Printf("[password-reset] ok: email=%s", pr.Email)
	return pr.Email, nil
}
