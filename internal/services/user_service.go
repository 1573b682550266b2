package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"givestream/internal/models"
	"givestream/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email not verified")
)

type UserService interface {
	// Register creates an unverified account and triggers the first
	// verification code issuance.
	Register(req *models.RegisterRequest) (*models.User, error)
	// Login checks credentials and returns a signed JWT. Unverified
	// accounts are rejected with ErrNotVerified.
	Login(email, password string) (string, *models.User, error)
	GetByID(id int) (*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
	otp  OTPService
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, otp OTPService, auth AuthService) UserService {
	return &userService{repo: repo, otp: otp, auth: auth}
}

func (s *userService) Register(req *models.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		PasswordHash: hash,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if err := s.otp.Issue(email); err != nil {
		// account exists; the client can hit resend
		log.Printf("[users][register] initial code issue failed: email=%s err=%v", email, err)
	}
	return user, nil
}

func (s *userService) Login(email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !s.auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *userService) GetByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}
