package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/pulse/internal/logging"
	"github.com/example/pulse/internal/ports/primary"
	"github.com/example/pulse/internal/ports/secondary"
)

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	identity secondary.IdentityProvider
	logger   *zap.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(identity secondary.IdentityProvider, logger *zap.Logger) *SessionServiceImpl {
	return &SessionServiceImpl{identity: identity, logger: logging.OrNop(logger)}
}

// SignIn makes the given user current.
func (s *SessionServiceImpl) SignIn(ctx context.Context, req primary.SignInRequest) (*primary.User, error) {
	id := strings.TrimSpace(req.UserID)
	if id == "" {
		return nil, errors.New("user id is required")
	}

	err := s.identity.SignIn(ctx, secondary.User{ID: id, Email: strings.TrimSpace(req.Email)})
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	s.logger.Info("signed in", zap.String("user_id", id))

	return s.WhoAmI(ctx)
}

// SignOut clears the current user. Signing out twice is not an error.
func (s *SessionServiceImpl) SignOut(ctx context.Context) error {
	if err := s.identity.SignOut(ctx); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	s.logger.Info("signed out")
	return nil
}

// WhoAmI returns the current user, or nil when nobody is signed in.
func (s *SessionServiceImpl) WhoAmI(ctx context.Context) (*primary.User, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	return &primary.User{ID: user.ID, Email: user.Email}, nil
}
