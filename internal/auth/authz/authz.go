// Package authz holds the role-to-permission mapping for the CRM.
// The predicate is pure so it can be evaluated at the HTTP boundary
// and in any front end without divergence.
package authz

import (
	"github.com/ubuntu-bounty/crm/internal/common/cnst"
)

// Can reports whether a user of the given type may perform the action.
//
// super_admin: everything, including user and settings management and
// releasing claimed leads.
// view_edit: reads plus creating agents and leads and claiming leads.
// view_only: reads only.
func Can(userType cnst.UserType, action cnst.Action) bool {
	switch userType {
	case cnst.RoleSuperAdmin:
		return true
	case cnst.RoleViewEdit:
		switch action {
		case cnst.ActionView, cnst.ActionCreate, cnst.ActionClaim:
			return true
		}
		return false
	case cnst.RoleViewOnly:
		return action == cnst.ActionView
	}
	return false
}
