// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Staff Roles

// UserRole represents the authorization level granted to a staff account.
type UserRole string

const (
	// Full access, including deletes.
	RoleAdmin UserRole = "admin"

	// Can record sales, edit books and mark royalties as paid
	RoleEditor UserRole = "editor"

	// Read-only access to the ledger
	RoleViewer UserRole = "viewer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleViewer:
		return 10
	default:
		return 0
	}
}
