package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"givestream/internal/repositories"
	"givestream/internal/utils"
)

var (
	ErrRateLimited    = errors.New("rate limited")
	ErrCodeInvalid    = errors.New("code invalid")
	ErrDeliveryFailed = errors.New("delivery failed")
)

const (
	otpResendWindow = 60 * time.Second
	otpTTL          = 10 * time.Minute
)

type OTPService interface {
	// Issue generates a fresh 6-digit code for the email, replacing any
	// prior code, and mails it. ErrRateLimited within 60s of the previous
	// issuance; ErrDeliveryFailed when the mail could not be sent (the
	// stored code is discarded so a retry is not held to the window).
	Issue(email string) error
	// Verify checks the code against the stored row. On success the account
	// is marked verified, every code for the email is deleted so a verified
	// code can never be replayed, and a welcome mail goes out best-effort.
	Verify(email, code string) error
}

type otpService struct {
	repo     repositories.OTPRepository
	userRepo repositories.UserRepository
	emails   EmailService
	now      func() time.Time
}

func NewOTPService(repo repositories.OTPRepository, userRepo repositories.UserRepository, emails EmailService) OTPService {
	return &otpService{
		repo:     repo,
		userRepo: userRepo,
		emails:   emails,
		now:      time.Now,
	}
}

func (s *otpService) Issue(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return errors.New("email is required")
	}

	now := s.now()
	last, err := s.repo.LatestCreatedAt(email)
	if err != nil {
		return err
	}
	if last != nil && now.Sub(*last) < otpResendWindow {
		return ErrRateLimited
	}

	code, err := utils.NewOTPCode()
	if err != nil {
		return err
	}
	if _, err := s.repo.Replace(email, code, now, now.Add(otpTTL)); err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendVerificationCode(email, code); err != nil {
			log.Printf("[otp][issue] send failed: email=%s err=%v", email, err)
			// the code never reached the user; drop it so the next request
			// is not throttled against a send that failed
			if derr := s.repo.DeleteByEmail(email); derr != nil {
				log.Printf("[otp][issue] cleanup failed: email=%s err=%v", email, derr)
			}
			return ErrDeliveryFailed
		}
	}

	log.Printf("[otp][issue] ok: email=%s", email)
	return nil
}

func (s *otpService) Verify(email, code string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return ErrCodeInvalid
	}

	rec, err := s.repo.GetByEmailAndCode(email, code)
	if err != nil {
		return err
	}
	if rec == nil || s.now().After(rec.ExpiresAt) {
		return ErrCodeInvalid
	}

	if err := s.userRepo.MarkVerified(email); err != nil {
		return err
	}
	// a verified code must not stay consumable
	if err := s.repo.DeleteByEmail(email); err != nil {
		log.Printf("[otp][verify] cleanup failed: email=%s err=%v", email, err)
	}

	if s.emails != nil {
		if u, err := s.userRepo.GetByEmail(email); err == nil && u != nil {
			if err := s.emails.SendWelcomeEmail(u.Email, u.DisplayName); err != nil {
				log.Printf("[otp][verify] welcome email failed: email=%s err=%v", email, err)
			}
		}
	}

	log.Printf("[otp][verify] ok: email=%s", email)
	return nil
}
