// Package apiclient is the typed HTTP client for the studyhub backend.
//
// It covers the full API surface the frontend consumes: auth (login,
// register, session verify), materials browsing with keyword, department
// and semester filters, multipart material upload, and the admin
// operations (user listing, role updates, material deletion).
//
// Authenticated calls pull a bearer token from the configured TokenSource
// on every request, and a 401 from any of them fires the OnUnauthorized
// hook exactly once before the error is returned. The session layer
// registers its local-clear path there, so an expired token observed
// anywhere in the application tears the session down the same way a
// failed verify does.
//
// # Errors
//
// Failures map onto a small taxonomy:
//
//   - ErrInvalidCredentials — login/register rejected; wrapped with the
//     server's message for inline display.
//   - ValidationError — field-attributable rejection of form input.
//   - ErrUnauthorized — expired or invalid token on an authenticated call.
//   - *NetworkError — transport failure; no HTTP response was received.
//   - ErrServer — 5xx responses.
//
// # Usage
//
//	client, err := apiclient.New("https://api.studyhub.example",
//	    apiclient.WithTokenSource(manager),
//	    apiclient.OnUnauthorized(manager.ExpireSession),
//	)
//
//	materials, err := client.ListMaterials(ctx, apiclient.MaterialFilter{
//	    Department: "Computer Science",
//	    Semester:   3,
//	})
package apiclient
