package access

import "time"

// Status values for users and grants. Only active grants any permission.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Feature modules of the dashboard against which access is granted.
const (
	ModuleDashboard       = "Dashboard"
	ModuleJobCards        = "JobCards"
	ModuleReturnInventory = "ReturnInventory"
	ModuleReadyInventory  = "ReadyInventory"
	ModulePurchaseOrders  = "PurchaseOrders"
	ModuleProductLibrary  = "ProductLibrary"
	ModuleAdmin           = "Admin"
	ModuleAdminOnboarding = "AdminOnboarding"
)

// RoleRecord is a row of the role catalog.
type RoleRecord struct {
	ID          int64  `json:"role_id"`
	Name        string `json:"role_name"`
	Description string `json:"role_description,omitempty"`
	Active      bool   `json:"is_active"`
}

// ModuleRecord is a row of the module catalog.
type ModuleRecord struct {
	ID          int64  `json:"module_id"`
	Name        string `json:"module_name"`
	Description string `json:"module_description,omitempty"`
	Active      bool   `json:"is_active"`
}

// UserRow mirrors the external store's users table.
type UserRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id,omitempty"`
	Status     Status `json:"status"`
}

// Grant pairs a module with the capability tier granted for it.
type Grant struct {
	Module ModuleRecord `json:"module"`
	Level  Level        `json:"access_level"`
}

// Record is a single user_access row joined with its role and module.
type Record struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	RoleID    int64        `json:"role_id"`
	ModuleID  int64        `json:"module_id"`
	Level     Level        `json:"access_level"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	CreatedBy string       `json:"created_by,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
	UpdatedBy string       `json:"updated_by,omitempty"`
	Role      RoleRecord   `json:"role"`
	Module    ModuleRecord `json:"module"`
}

// UserWithAccess aggregates a user with their resolved role and module
// grants. One user holds many grants but exactly one role; when the backing
// query returns rows with differing roles the first row's role wins.
type UserWithAccess struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	EmployeeID string  `json:"employee_id,omitempty"`
	Status     Status  `json:"status"`
	Role       RoleRecord `json:"role"`
	Modules    []Grant    `json:"modules"`
}

// CanAccessModule reports whether the user holds any grant for the named
// module. Presence alone grants read; finer tiers go through HasPermission.
// Safe on a nil receiver.
func (u *UserWithAccess) CanAccessModule(moduleName string) bool {
	if u == nil || u.Status != StatusActive {
		return false
	}
	for _, g := range u.Modules {
		if g.Module.Name == moduleName {
			return true
		}
	}
	return false
}

// HasPermission reports whether the user's grant for the named module
// satisfies the required level under the read < write < admin order.
func (u *UserWithAccess) HasPermission(moduleName string, level Level) bool {
	if u == nil || u.Status != StatusActive {
		return false
	}
	for _, g := range u.Modules {
		if g.Module.Name == moduleName {
			return g.Level.Satisfies(level)
		}
	}
	return false
}

// DefaultAccess is the bootstrap grant set for a newly created user.
type DefaultAccess struct {
	RoleID  int64    `json:"role_id"`
	Modules []string `json:"modules"`
	Level   Level    `json:"access_level"`
}
