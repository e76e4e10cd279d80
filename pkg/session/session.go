package session

import (
	"context"

	"github.com/studyhubapp/studyhub-go/pkg/roles"
)

// Status is the lifecycle state of the client session.
type Status int

const (
	// StatusUninitialized means Initialize has not run yet.
	StatusUninitialized Status = iota

	// StatusRestoring means a persisted session is being verified against
	// the backend. Views must treat the session as undecided and render a
	// neutral loading state.
	StatusRestoring

	// StatusAuthenticated means a user and token are present.
	StatusAuthenticated

	// StatusAnonymous means nobody is logged in.
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusRestoring:
		return "restoring"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// User is the client-side view of the authenticated user.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       roles.Role `json:"role"`
	Department string     `json:"department"`
	Semester   int        `json:"semester"`
}

// Snapshot is an immutable view of the session at one point in time.
// Consumers must re-read rather than cache a snapshot across awaits, since
// a concurrent login or logout may replace the session underneath them.
type Snapshot struct {
	Status Status
	User   User
}

// Authenticated reports whether the snapshot carries a logged-in user.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// AuthResult is what the backend returns on successful login or
// registration: a bearer token and the user it belongs to.
type AuthResult struct {
	Token string
	User  User
}

// Registration carries the registration form fields.
type Registration struct {
	Name       string
	Email      string
	Password   string
	Department string
	Semester   int
}

// Authenticator is the backend auth surface the manager depends on.
// *apiclient.Client satisfies it through the adapter in the root package;
// tests plug in fakes.
type Authenticator interface {
	// Login exchanges credentials for a token and user.
	Login(ctx context.Context, email, password string) (AuthResult, error)

	// Register creates an account; a success behaves like a login.
	Register(ctx context.Context, reg Registration) (AuthResult, error)

	// Verify fetches the user record for a stored token. Used during
	// restore before the token becomes current.
	Verify(ctx context.Context, token string) (User, error)
}

// persistedSession is the single record written to storage. Token and user
// live in one document so one write keeps them together: both on disk, or
// neither.
type persistedSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
