package primary

import "context"

// SessionService defines the primary port for the signed-in identity.
type SessionService interface {
	// SignIn makes the given user current.
	SignIn(ctx context.Context, req SignInRequest) (*User, error)

	// SignOut clears the current user.
	SignOut(ctx context.Context) error

	// WhoAmI returns the current user, or nil when nobody is signed in.
	WhoAmI(ctx context.Context) (*User, error)
}

// SignInRequest contains parameters for signing in.
type SignInRequest struct {
	UserID string
	Email  string
}

// User is the signed-in identity at the port boundary.
type User struct {
	ID    string
	Email string
}
