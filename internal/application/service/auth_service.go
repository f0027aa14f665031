package service

import (
	"context"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/enum"
	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sangkips/shopflow/pkg/utils"
	"github.com/sirupsen/logrus"
)

// AuthService handles login, logout and the persisted session
type AuthService struct {
	sessionRepo repository.SessionRepository
	jwtManager  *utils.JWTManager
	log         *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	sessionRepo repository.SessionRepository,
	jwtManager *utils.JWTManager,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// LoginInput represents the login input. Password is accepted and ignored.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User      `json:"user"`
	AccessToken  string            `json:"access_token"`
	Capabilities []enum.Capability `json:"capabilities"`
}

// Login looks the username up in the roster, stores it as the current
// session and issues an access token for it.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user := entity.FindUser(input.Username)
	if user == nil {
		s.log.WithField("username", input.Username).Warn("login rejected")
		return nil, apperror.ErrInvalidCredentials
	}

	if err := s.sessionRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	caps := user.Role.Capabilities()
	claims := make([]string, len(caps))
	for i, c := range caps {
		claims[i] = string(c)
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role.String(), claims)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"username": user.Username,
		"role":     user.Role.String(),
	}).Info("user logged in")

	return &LoginOutput{
		User:         user,
		AccessToken:  token,
		Capabilities: caps,
	}, nil
}

// Logout ends the current session
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessionRepo.Delete(ctx)
}

// CurrentUser returns the logged-in user
func (s *AuthService) CurrentUser(ctx context.Context) (*entity.User, error) {
	user, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotLoggedIn
	}
	return user, nil
}

// ValidateToken checks the token signature and that it belongs to the
// session that is still active. Tokens issued before a logout or a login
// as someone else are rejected.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Username != claims.Username {
		return nil, apperror.ErrNotLoggedIn
	}

	// Roles come from the roster, not from the token.
	if current := entity.FindUser(user.Username); current != nil {
		return current, nil
	}
	return nil, apperror.ErrNotLoggedIn
}
