package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/pulse/internal/ports/primary"
)

// SessionAdapter translates login, logout and whoami to SessionService calls.
type SessionAdapter struct {
	service primary.SessionService
	out     io.Writer
}

// NewSessionAdapter creates a new SessionAdapter with the given service.
func NewSessionAdapter(service primary.SessionService, out io.Writer) *SessionAdapter {
	return &SessionAdapter{
		service: service,
		out:     out,
	}
}

// Login signs the user in.
func (a *SessionAdapter) Login(ctx context.Context, userID, email string) error {
	user, err := a.service.SignIn(ctx, primary.SignInRequest{UserID: userID, Email: email})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Signed in as %s\n", describeUser(user))
	return nil
}

// Logout signs the current user out.
func (a *SessionAdapter) Logout(ctx context.Context) error {
	if err := a.service.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✓ Signed out")
	return nil
}

// WhoAmI prints the current user.
func (a *SessionAdapter) WhoAmI(ctx context.Context) error {
	user, err := a.service.WhoAmI(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in. Run: pulse login --user-id ID")
		return nil
	}
	fmt.Fprintln(a.out, describeUser(user))
	return nil
}

func describeUser(user *primary.User) string {
	if user.Email == "" {
		return user.ID
	}
	return fmt.Sprintf("%s <%s>", user.ID, user.Email)
}
