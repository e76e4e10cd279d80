// Package guard gates views on session state and roles.
//
// A Requirement is evaluated against a session.Snapshot right before a
// view renders. The three failure modes map one-to-one onto what the
// presentation layer should show: a loading state while the session is
// undecided, a login prompt for anonymous users, and an explicit
// "Access Denied" view for authenticated users outside the allowed roles.
//
//	adminOnly := guard.RequireRoles(roles.Admin)
//
//	switch err := adminOnly.Check(manager.Snapshot()); {
//	case errors.Is(err, guard.ErrSessionUndecided):
//	    // spinner
//	case errors.Is(err, guard.ErrLoginRequired):
//	    // redirect to login
//	case errors.Is(err, guard.ErrAccessDenied):
//	    // access denied view
//	default:
//	    // render the admin dashboard
//	}
package guard
