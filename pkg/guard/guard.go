package guard

import (
	"github.com/studyhubapp/studyhub-go/pkg/roles"
	"github.com/studyhubapp/studyhub-go/pkg/session"
)

// Requirement describes what a view demands of the session before it may
// render. The zero value requires nothing and admits everyone.
type Requirement struct {
	// LoginRequired rejects anonymous sessions.
	LoginRequired bool

	// AllowedRoles restricts access to the listed roles. Implies
	// LoginRequired when non-empty.
	AllowedRoles []roles.Role
}

// Public admits everyone.
func Public() Requirement {
	return Requirement{}
}

// Authenticated admits any logged-in user.
func Authenticated() Requirement {
	return Requirement{LoginRequired: true}
}

// RequireRoles admits only logged-in users holding one of the given roles.
func RequireRoles(allowed ...roles.Role) Requirement {
	return Requirement{LoginRequired: true, AllowedRoles: allowed}
}

// Check evaluates the requirement against a session snapshot. Pure
// predicate, no side effects:
//
//   - ErrSessionUndecided while the session is still restoring: callers
//     must render a neutral loading state, neither logged-in nor
//     logged-out UI.
//   - ErrLoginRequired when the view needs a user and the session is
//     anonymous: callers typically redirect to the login form.
//   - ErrAccessDenied when a user is present but the role is not in the
//     allowed set: callers render an explicit "Access Denied" view, never
//     a crash or a silent blank.
func (r Requirement) Check(snap session.Snapshot) error {
	if !r.LoginRequired && len(r.AllowedRoles) == 0 {
		return nil
	}

	switch snap.Status {
	case session.StatusUninitialized, session.StatusRestoring:
		return ErrSessionUndecided
	case session.StatusAuthenticated:
	default:
		return ErrLoginRequired
	}

	if len(r.AllowedRoles) > 0 && !snap.User.Role.In(r.AllowedRoles...) {
		return ErrAccessDenied
	}

	return nil
}

// Allowed is a convenience wrapper for conditional UI: true only when
// Check passes.
func (r Requirement) Allowed(snap session.Snapshot) bool {
	return r.Check(snap) == nil
}
