package authgate

import "github.com/lotwise/dealerd/internal/domain"

// Permission is a fixed capability checked at operation entry points. New
// operations add a constant here and a row in rolePermissions; call sites
// never test raw role strings.
type Permission int

const (
	PermRecordSale Permission = iota
	PermDeleteVehicle
	PermManageInventory
	PermManageLeads
	PermViewAnalytics
	PermManageProfiles
)

// String returns the permission name for logs and error messages.
func (p Permission) String() string {
	switch p {
	case PermRecordSale:
		return "record_sale"
	case PermDeleteVehicle:
		return "delete_vehicle"
	case PermManageInventory:
		return "manage_inventory"
	case PermManageLeads:
		return "manage_leads"
	case PermViewAnalytics:
		return "view_analytics"
	case PermManageProfiles:
		return "manage_profiles"
	default:
		return "unknown"
	}
}

var rolePermissions = map[domain.Role]map[Permission]struct{}{
	domain.RoleAdmin: {
		PermRecordSale:      {},
		PermDeleteVehicle:   {},
		PermManageInventory: {},
		PermManageLeads:     {},
		PermViewAnalytics:   {},
		PermManageProfiles:  {},
	},
	domain.RoleSales: {
		PermRecordSale:      {},
		PermManageInventory: {},
		PermManageLeads:     {},
		PermViewAnalytics:   {},
	},
	domain.RoleService: {
		PermManageLeads: {},
	},
	domain.RoleViewer: {
		PermViewAnalytics: {},
	},
}

// RoleHasPermission reports whether the role's capability set contains perm.
// Unknown roles have no capabilities.
func RoleHasPermission(role domain.Role, perm Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = perms[perm]
	return ok
}
