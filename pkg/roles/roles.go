package roles

import "slices"

// Role is one of the platform's closed set of user roles.
type Role string

const (
	// Student is the default role assigned on registration.
	Student Role = "student"

	// StudentAdmin may upload study materials in addition to browsing them.
	StudentAdmin Role = "student_admin"

	// Admin manages users and materials platform-wide.
	Admin Role = "admin"
)

// Permission scopes granted to roles. Scopes are dot-separated,
// grouped by the API surface they gate.
const (
	PermMaterialsRead   = "materials.read"
	PermMaterialsUpload = "materials.upload"
	PermAdminUsers      = "admin.users"
	PermAdminMaterials  = "admin.materials"
)

// rolePermissions contains all permissions (direct and inherited) for each
// role. The map is treated as immutable for thread safety; StudentAdmin
// inherits everything Student can do, Admin everything StudentAdmin can do.
var rolePermissions = map[Role][]string{
	Student: {
		PermMaterialsRead,
	},
	StudentAdmin: {
		PermMaterialsRead,
		PermMaterialsUpload,
	},
	Admin: {
		PermMaterialsRead,
		PermMaterialsUpload,
		PermAdminUsers,
		PermAdminMaterials,
	},
}

// All returns every valid role, lowest privilege first.
func All() []Role {
	return []Role{Student, StudentAdmin, Admin}
}

// Parse maps a raw role string from the backend onto the closed role set.
// Unrecognized values degrade to Student rather than failing: an unknown
// role must never crash the client and must never grant privileges.
func Parse(s string) Role {
	switch Role(s) {
	case Student, StudentAdmin, Admin:
		return Role(s)
	default:
		return Student
	}
}

// ParseStrict is like Parse but rejects values outside the closed set.
func ParseStrict(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// Can checks if the role grants the given permission scope.
func (r Role) Can(permission string) error {
	permissions, ok := rolePermissions[r]
	if !ok {
		return ErrInvalidRole
	}
	if !slices.Contains(permissions, permission) {
		return ErrInsufficientPermissions
	}
	return nil
}

// In reports whether the role is a member of the allowed set.
func (r Role) In(allowed ...Role) bool {
	return slices.Contains(allowed, r)
}

// Permissions returns all permission scopes granted to the role.
// The returned slice is a copy and safe to modify.
func (r Role) Permissions() []string {
	return slices.Clone(rolePermissions[r])
}
