// Package constants defines shared constant values: table names and
// pagination bounds.
package constants

// Database table names.
const (
	TableRentals         = "rentals"
	TableRentalRates     = "rental_rates"
	TableTimesheets      = "rental_timesheets"
	TableClientContacts  = "client_contacts"
	TableAssets          = "assets"
	TableRoles           = "roles"
	TablePermissions     = "permissions"
	TableRolePermissions = "role_permissions"
	TableRoleAssignments = "user_role_assignments"
)

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)
