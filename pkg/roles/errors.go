package roles

import "errors"

// Domain errors for role checks.
var (
	// ErrInvalidRole is returned when a role is outside the closed set.
	ErrInvalidRole = errors.New("roles.invalid_role")

	// ErrInsufficientPermissions is returned when a permission is not granted.
	ErrInsufficientPermissions = errors.New("roles.insufficient_permissions")
)
