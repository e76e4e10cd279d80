package guard

import "errors"

var (
	// ErrSessionUndecided indicates the session is still restoring;
	// render a neutral loading state.
	ErrSessionUndecided = errors.New("guard.session_undecided")

	// ErrLoginRequired indicates the view needs an authenticated user.
	ErrLoginRequired = errors.New("guard.login_required")

	// ErrAccessDenied indicates the user's role is not in the allowed set.
	ErrAccessDenied = errors.New("guard.access_denied")
)
