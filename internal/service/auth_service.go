package service

import (
	"campaign/internal/auth"
	"campaign/internal/entity"
	"campaign/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LoginObserver records login outcomes.
type LoginObserver interface {
	ObserveLogin(result string)
}

// AuthService authenticates admins and verifies their tokens.
type AuthService struct {
	repo     model.Repository
	tokens   *auth.Manager
	observer LoginObserver
}

// NewAuthService creates the auth service.
func NewAuthService(repo model.Repository, tokens *auth.Manager, observer LoginObserver) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, observer: observer}
}

// Login checks the credentials of an active admin and issues a token.
// Unknown usernames and wrong passwords produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req entity.AuthLoginRequest) (*entity.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	var missing []FieldError
	if username == "" {
		missing = append(missing, FieldError{Field: "username", Message: "Username is required"})
	}
	if strings.TrimSpace(req.Password) == "" {
		missing = append(missing, FieldError{Field: "password", Message: "Password is required"})
	}
	if len(missing) > 0 {
		s.observe("invalid")
		return nil, &ValidationError{Fields: missing}
	}

	user, err := s.repo.GetActiveAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.CompareDecoy(req.Password)
			s.observe("failure")
			return nil, ErrInvalidCredentials
		}
		s.observe("error")
		return nil, fmt.Errorf("load admin: %w", err)
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		s.observe("failure")
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateAdminUser(ctx, user.ID, entity.AdminUserUpdates{LastLogin: &now}); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		s.observe("error")
		return nil, fmt.Errorf("generate token: %w", err)
	}
	s.observe("success")
	return &entity.AuthResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      entity.UserSummary{ID: user.ID, Username: user.Username, Email: user.Email},
	}, nil
}

// Verify validates a bearer token and returns its claims.
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	return s.tokens.ParseToken(token)
}

func (s *AuthService) observe(result string) {
	if s.observer != nil {
		s.observer.ObserveLogin(result)
	}
}
