package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shoply/service/internal/config"
)

// ErrInvalidCredentials is returned when email/password verification fails.
var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginResult holds the outcome of a successful login.
type LoginResult struct {
	Token string `json:"token"`
	Admin *Admin `json:"admin"`
}

// Service contains the business logic for admin authentication.
type Service struct {
	repo *Repository
	cfg  config.AuthConfig
}

// NewService creates a new auth Service.
func NewService(repo *Repository, cfg config.AuthConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Login verifies the credentials and issues a JWT for the admin.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// A missing account and a wrong password are indistinguishable to the caller.
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(a)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, Admin: a}, nil
}

// Register creates a new admin account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password, role string) (*Admin, error) {
	if role == "" {
		role = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a, err := s.repo.Create(ctx, email, string(hash), role)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID returns an admin by their UUID.
func (s *Service) GetByID(ctx context.Context, id string) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}

// IsNotFound returns true when the error indicates an admin was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// issueToken creates a signed JWT for the given admin.
func (s *Service) issueToken(a *Admin) (string, error) {
	claims := jwt.MapClaims{
		"sub":   a.ID,
		"email": a.Email,
		"role":  a.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
