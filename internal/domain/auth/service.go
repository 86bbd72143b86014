package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/pkg/logger"
)

const minPasswordLength = 8

// Service provides registration and login.
type Service struct {
	repo Repository
	jwt  *JWTService
	txm  tx.Manager
}

// NewService creates an auth service.
func NewService(repo Repository, jwtSvc *JWTService, txm tx.Manager) *Service {
	return &Service{repo: repo, jwt: jwtSvc, txm: txm}
}

// Register creates a new user and returns an access token.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	if len(req.Password) < minPasswordLength {
		return nil, apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := NewUser(req.Email, req.Name, string(hash))
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if existing, err := s.repo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
			return apperror.NewDuplicate("user", "email", user.Email)
		} else if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID.String(), "email", user.Email)
	return s.issueToken(user)
}

// Login checks credentials and returns an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	user.RecordLogin()
	if err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, user)
	}); err != nil {
		logger.Warn(ctx, "record login failed", "error", err)
	}

	return s.issueToken(user)
}

// GetByID retrieves a user profile.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) issueToken(user *User) (*TokenResponse, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
		User:        user,
	}, nil
}
