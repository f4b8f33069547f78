package access

import "strings"

// RolePolicy is the static permission matrix for one named role. It is the
// fallback consulted when no dynamic assignment exists and the source of
// default-access bootstrapping for new users.
type RolePolicy struct {
	Name        string
	Description string
	// Permissions maps module name to the highest level granted. The
	// ordered Level type makes "write implies read" hold by construction.
	Permissions map[string]Level
	// Resources are the broader tags associated with the role, separate
	// from per-module grants.
	Resources []string
}

var rolePolicies = map[string]RolePolicy{
	"admin": {
		Name:        "Admin",
		Description: "Full system access with user management capabilities",
		Permissions: map[string]Level{
			ModuleDashboard:       LevelAdmin,
			ModuleJobCards:        LevelAdmin,
			ModuleReturnInventory: LevelAdmin,
			ModuleReadyInventory:  LevelAdmin,
			ModulePurchaseOrders:  LevelAdmin,
			ModuleProductLibrary:  LevelAdmin,
			ModuleAdmin:           LevelAdmin,
			ModuleAdminOnboarding: LevelAdmin,
		},
		Resources: []string{"production", "inventory", "logistics", "procurement", "quality", "reports", "users", "finance", "sales"},
	},
	"editor": {
		Name:        "Editor",
		Description: "Can edit and manage operational data",
		Permissions: map[string]Level{
			ModuleDashboard:       LevelWrite,
			ModuleJobCards:        LevelWrite,
			ModuleReturnInventory: LevelWrite,
			ModuleReadyInventory:  LevelWrite,
			ModulePurchaseOrders:  LevelWrite,
			ModuleProductLibrary:  LevelWrite,
		},
		Resources: []string{"production", "inventory", "logistics", "procurement"},
	},
	"viewer": {
		Name:        "Viewer",
		Description: "Read-only access to view data",
		Permissions: map[string]Level{
			ModuleDashboard:      LevelRead,
			ModuleProductLibrary: LevelRead,
		},
		Resources: []string{"production", "productlibrary"},
	},
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// RolePermissions returns the module permission map for a role. Unknown
// roles yield an empty map.
func RolePermissions(role string) map[string]Level {
	if p, ok := rolePolicies[normalizeRole(role)]; ok {
		return p.Permissions
	}
	return map[string]Level{}
}

// RoleResources returns the resource tags for a role, empty for unknown roles.
func RoleResources(role string) []string {
	if p, ok := rolePolicies[normalizeRole(role)]; ok {
		return p.Resources
	}
	return nil
}

// CanAccessComponent reports whether the role's policy has any entry for the
// component at all.
func CanAccessComponent(role, component string) bool {
	_, ok := RolePermissions(role)[component]
	return ok
}

// PolicyHasPermission checks the static matrix: the role's granted level for
// the component must satisfy the requested level.
func PolicyHasPermission(role, component string, level Level) bool {
	granted, ok := RolePermissions(role)[component]
	if !ok {
		return false
	}
	return granted.Satisfies(level)
}

// DefaultAccessForRole returns the bootstrap grant set for a role name,
// matched case-insensitively. Unknown names fall back to the viewer default.
func DefaultAccessForRole(role string) DefaultAccess {
	switch normalizeRole(role) {
	case "admin":
		return DefaultAccess{
			RoleID: 1,
			Modules: []string{
				ModuleDashboard, ModuleJobCards, ModuleProductLibrary,
				ModuleReturnInventory, ModuleReadyInventory,
				ModulePurchaseOrders, ModuleAdmin, ModuleAdminOnboarding,
			},
			Level: LevelAdmin,
		}
	case "editor":
		return DefaultAccess{
			RoleID: 2,
			Modules: []string{
				ModuleDashboard, ModuleJobCards, ModuleReturnInventory,
				ModuleReadyInventory, ModulePurchaseOrders, ModuleProductLibrary,
			},
			Level: LevelWrite,
		}
	default:
		return DefaultAccess{
			RoleID:  3,
			Modules: []string{ModuleDashboard, ModuleProductLibrary},
			Level:   LevelRead,
		}
	}
}
