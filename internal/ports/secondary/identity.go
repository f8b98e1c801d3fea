package secondary

import "context"

// IdentityProvider defines the secondary port for resolving the signed-in user.
// Authentication itself happens elsewhere; only the opaque user id is needed
// to scope initiative ownership.
type IdentityProvider interface {
	// CurrentUser returns the signed-in user, or nil when nobody is signed in.
	CurrentUser(ctx context.Context) (*User, error)

	// SignIn records the given user as the current identity.
	SignIn(ctx context.Context, user User) error

	// SignOut clears the current identity.
	SignOut(ctx context.Context) error
}

// User is the identity returned by the provider.
type User struct {
	ID    string
	Email string
}
