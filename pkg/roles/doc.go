// Package roles defines the platform's closed set of user roles and the
// permission scopes they grant.
//
// The role hierarchy is fixed: student < student_admin < admin, where each
// role inherits the permissions of the roles below it. Role values arrive
// from the backend as plain strings; Parse maps anything outside the closed
// set to Student so that an unexpected value can neither crash the client
// nor elevate privileges.
//
// Usage:
//
//	role := roles.Parse(user.Role)
//	if err := role.Can(roles.PermMaterialsUpload); err != nil {
//	    // render upload entry point disabled
//	}
//
//	if role.In(roles.StudentAdmin, roles.Admin) {
//	    // show the upload page link
//	}
package roles
