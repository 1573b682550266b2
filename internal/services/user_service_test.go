package services

import (
	"errors"
	"testing"
	"time"

	"givestream/internal/models"
)

type recordingOTP struct {
	issued []string
	fail   error
}

func (o *recordingOTP) Issue(email string) error {
	if o.fail != nil {
		return o.fail
	}
	o.issued = append(o.issued, email)
	return nil
}

func (o *recordingOTP) Verify(email, code string) error { return nil }

func TestUserService_Register(t *testing.T) {
	t.Run("creates an unverified account and issues a code", func(t *testing.T) {
		users := newFakeUserRepo()
		otp := &recordingOTP{}
		svc := NewUserService(users, otp, fakeAuthService{})

		u, err := svc.Register(&models.RegisterRequest{
			Email: "New@X.com", DisplayName: "New", Password: "longenough",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if u.Email != "new@x.com" {
			t.Errorf("email not normalized: %q", u.Email)
		}
		if u.IsVerified {
			t.Error("fresh accounts must start unverified")
		}
		if len(otp.issued) != 1 || otp.issued[0] != "new@x.com" {
			t.Errorf("expected one code issuance, got %v", otp.issued)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		users := newFakeUserRepo()
		users.users["a@x.com"] = &models.User{ID: 1, Email: "a@x.com"}
		svc := NewUserService(users, &recordingOTP{}, fakeAuthService{})

		_, err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "longenough"})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("short password is rejected", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), &recordingOTP{}, fakeAuthService{})
		_, err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "short"})
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("a failed initial issuance does not fail registration", func(t *testing.T) {
		users := newFakeUserRepo()
		otp := &recordingOTP{fail: errors.New("smtp down")}
		svc := NewUserService(users, otp, fakeAuthService{})

		if _, err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "longenough"}); err != nil {
			t.Fatalf("register must survive a delivery failure: %v", err)
		}
		if users.users["a@x.com"] == nil {
			t.Error("account must exist so the client can hit resend")
		}
	})
}

func TestUserService_Login(t *testing.T) {
	verified := time.Now()
	seed := func(isVerified bool) *fakeUserRepo {
		users := newFakeUserRepo()
		u := &models.User{ID: 1, Email: "a@x.com", PasswordHash: "hashed:secret123"}
		if isVerified {
			u.IsVerified = true
			u.VerifiedAt = &verified
		}
		users.users["a@x.com"] = u
		return users
	}

	t.Run("verified account logs in", func(t *testing.T) {
		svc := NewUserService(seed(true), &recordingOTP{}, fakeAuthService{})
		token, user, err := svc.Login("a@x.com", "secret123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if token == "" || user.ID != 1 {
			t.Errorf("got token=%q user=%+v", token, user)
		}
	})

	t.Run("unverified account is rejected", func(t *testing.T) {
		svc := NewUserService(seed(false), &recordingOTP{}, fakeAuthService{})
		if _, _, err := svc.Login("a@x.com", "secret123"); !errors.Is(err, ErrNotVerified) {
			t.Errorf("expected ErrNotVerified, got %v", err)
		}
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		svc := NewUserService(seed(true), &recordingOTP{}, fakeAuthService{})
		_, _, errWrong := svc.Login("a@x.com", "nope")
		_, _, errUnknown := svc.Login("who@x.com", "secret123")
		if !errors.Is(errWrong, ErrInvalidCredentials) || !errors.Is(errUnknown, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for both, got %v / %v", errWrong, errUnknown)
		}
	})
}
