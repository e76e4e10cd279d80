// Package session owns the client-side authentication lifecycle: who is
// logged in, with what token and role, carried across restarts through the
// storage layer.
//
// A single Manager per process moves through four states:
//
//	Uninitialized ──Initialize──► Restoring ──verify ok──► Authenticated
//	                   │              └──anything else──►  Anonymous
//	                   └──nothing stored───────────────►   Anonymous
//
// Login and Register produce Authenticated; Logout produces Anonymous and
// clears storage without ever calling the backend. The invariant the whole
// package is built around: user and token are set and cleared together,
// and the session is Authenticated exactly when both are present.
//
// Restore is verify-first: a persisted record is not trusted until the
// backend accepts its token, and while that check is in flight the status
// is Restoring, which consumers must render as "undecided" rather than
// logged in or out. Every restore failure, including corrupt stored data,
// resolves silently to Anonymous.
//
// # Ordering
//
// Responses are applied in arrival order, and a logout always beats an
// in-flight login: each authentication attempt records the session epoch
// when issued, Logout and ExpireSession bump it, and a response whose
// epoch is stale is discarded with ErrSuperseded instead of resurrecting
// the session.
//
// # Usage
//
//	manager := session.New(authAdapter, store, session.WithLogger(log))
//	manager.Initialize(ctx)
//
//	user, err := manager.Login(ctx, email, password)
//	if err != nil {
//	    // show inline on the form; session state is unchanged
//	}
//
//	if manager.HasRole(roles.StudentAdmin, roles.Admin) {
//	    // reveal the upload entry point
//	}
package session
