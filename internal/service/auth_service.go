package service

import (
	"context"
	"log/slog"

	"github.com/homefin/hearth/internal/auth"
	"github.com/homefin/hearth/internal/domain"
	"github.com/homefin/hearth/internal/models"
	"github.com/homefin/hearth/internal/storage"
)

// AuthService owns registration, login and profile operations.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

// Register creates a new user account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, username, email, fullName, password string) (*models.User, string, error) {
	s.logger.Info("Register request", "username", username)

	user, err := s.authenticator.Register(ctx, username, email, fullName, password)
	if err != nil {
		s.logger.Warn("Registration failed", "username", username, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "username", username, "error", err)
		return nil, "", err
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login authenticates a user and returns it with a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	s.logger.Info("Login request", "username", username)

	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		s.logger.Warn("Login failed", "username", username, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "username", username, "error", err)
		return nil, "", err
	}

	s.logger.Info("User logged in", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// CurrentUser returns the account for an authenticated username.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes a user's display name and email, returning the
// updated account.
func (s *AuthService) UpdateProfile(ctx context.Context, username, fullName, email string) (*models.User, error) {
	// Reject an email that belongs to someone else.
	if other, err := s.store.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if other != nil && other.Username != username {
		return nil, domain.ErrEmailTaken
	}

	if err := s.store.UpdateUserProfile(ctx, username, fullName, email); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", "username", username)
	return s.CurrentUser(ctx, username)
}

// ListUsers returns the user directory with credentials stripped, for
// recipient selection.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
