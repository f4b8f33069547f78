package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAccessForRole(t *testing.T) {
	tests := []struct {
		role    string
		roleID  int64
		modules int
		level   Level
	}{
		{"admin", 1, 8, LevelAdmin},
		{"Admin", 1, 8, LevelAdmin},
		{"editor", 2, 6, LevelWrite},
		{"EDITOR", 2, 6, LevelWrite},
		{"viewer", 3, 2, LevelRead},
		{"intern", 3, 2, LevelRead},
		{"", 3, 2, LevelRead},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got := DefaultAccessForRole(tt.role)
			assert.Equal(t, tt.roleID, got.RoleID)
			assert.Len(t, got.Modules, tt.modules)
			assert.Equal(t, tt.level, got.Level)
		})
	}
}

func TestDefaultViewerModules(t *testing.T) {
	got := DefaultAccessForRole("viewer")
	assert.Equal(t, []string{ModuleDashboard, ModuleProductLibrary}, got.Modules)
}

func TestPolicyHasPermissionOrder(t *testing.T) {
	// admin level satisfies every tier
	for _, lvl := range []Level{LevelRead, LevelWrite, LevelAdmin} {
		assert.True(t, PolicyHasPermission("admin", ModuleJobCards, lvl), "admin should satisfy %s", lvl)
	}
	// editor holds write: read and write pass, admin does not
	assert.True(t, PolicyHasPermission("editor", ModuleJobCards, LevelRead))
	assert.True(t, PolicyHasPermission("editor", ModuleJobCards, LevelWrite))
	assert.False(t, PolicyHasPermission("editor", ModuleJobCards, LevelAdmin))
	// viewer holds read only
	assert.True(t, PolicyHasPermission("viewer", ModuleDashboard, LevelRead))
	assert.False(t, PolicyHasPermission("viewer", ModuleDashboard, LevelWrite))
}

func TestPolicyUnknownRoleAndComponent(t *testing.T) {
	assert.False(t, CanAccessComponent("ghost", ModuleDashboard))
	assert.False(t, CanAccessComponent("viewer", ModuleAdmin))
	assert.False(t, PolicyHasPermission("ghost", ModuleDashboard, LevelRead))
	assert.Empty(t, RolePermissions("ghost"))
	assert.Nil(t, RoleResources("ghost"))
}

func TestCanAccessComponent(t *testing.T) {
	assert.True(t, CanAccessComponent("viewer", ModuleDashboard))
	assert.True(t, CanAccessComponent("admin", ModuleAdminOnboarding))
	assert.False(t, CanAccessComponent("editor", ModuleAdmin))
}

func TestRoleResources(t *testing.T) {
	assert.Contains(t, RoleResources("admin"), "finance")
	assert.Contains(t, RoleResources("editor"), "procurement")
	assert.NotContains(t, RoleResources("viewer"), "finance")
}
