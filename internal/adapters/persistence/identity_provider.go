package persistence

import (
	"context"
	"fmt"

	"github.com/example/pulse/internal/config"
	"github.com/example/pulse/internal/ctxutil"
	"github.com/example/pulse/internal/ports/secondary"
)

// ConfigIdentityProvider resolves the current user from the pulse config file.
// A user id carried in the context (ctxutil.WithUserID) takes precedence.
type ConfigIdentityProvider struct {
	dir string
}

// NewConfigIdentityProvider creates a provider backed by the config in dir.
func NewConfigIdentityProvider(dir string) *ConfigIdentityProvider {
	return &ConfigIdentityProvider{dir: dir}
}

// CurrentUser returns the signed-in user, or nil when nobody is signed in.
func (p *ConfigIdentityProvider) CurrentUser(ctx context.Context) (*secondary.User, error) {
	cfg, err := config.Load(p.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	if id := ctxutil.UserFromContext(ctx); id != "" {
		user := &secondary.User{ID: id}
		if id == cfg.UserID {
			user.Email = cfg.UserEmail
		}
		return user, nil
	}

	if !cfg.SignedIn() {
		return nil, nil
	}
	return &secondary.User{ID: cfg.UserID, Email: cfg.UserEmail}, nil
}

// SignIn stores the user in the config file.
func (p *ConfigIdentityProvider) SignIn(ctx context.Context, user secondary.User) error {
	if user.ID == "" {
		return fmt.Errorf("user id is required")
	}
	cfg, err := config.Load(p.dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.UserID = user.ID
	cfg.UserEmail = user.Email
	if err := config.Save(p.dir, cfg); err != nil {
		return fmt.Errorf("failed to save identity: %w", err)
	}
	return nil
}

// SignOut clears the stored identity, leaving other settings in place.
func (p *ConfigIdentityProvider) SignOut(ctx context.Context) error {
	cfg, err := config.Load(p.dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.UserID = ""
	cfg.UserEmail = ""
	if err := config.Save(p.dir, cfg); err != nil {
		return fmt.Errorf("failed to clear identity: %w", err)
	}
	return nil
}

// Ensure ConfigIdentityProvider implements the interface
var _ secondary.IdentityProvider = (*ConfigIdentityProvider)(nil)
