package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLandingRoute(t *testing.T) {
	assert.Equal(t, "/admin", LandingRoute(RoleSuperAdmin))
	assert.Equal(t, "/manager", LandingRoute(RoleManager))
	assert.Equal(t, "/staff-dashboard", LandingRoute(RoleStaff))
}

// Unknown and empty roles must land somewhere; the mapping is total.
func TestLandingRoute_UnknownRoleDefaultsToStaffDashboard(t *testing.T) {
	assert.Equal(t, "/staff-dashboard", LandingRoute(Role("owner")))
	assert.Equal(t, "/staff-dashboard", LandingRoute(Role("")))
}

func TestNavigation_EveryRoleHasEntries(t *testing.T) {
	for _, role := range []Role{RoleSuperAdmin, RoleManager, RoleStaff} {
		entries := Navigation(role)
		assert.NotEmpty(t, entries, "role %s has no navigation", role)
	}
}

func TestNavigation_UnknownRoleGetsStaffMenu(t *testing.T) {
	assert.Equal(t, Navigation(RoleStaff), Navigation(Role("mystery")))
}

// Every navigation entry a role sees must be a route the gate admits for
// that role. Menu and gate read the same table; this pins that.
func TestNavigationAndGateAgree(t *testing.T) {
	for _, role := range []Role{RoleSuperAdmin, RoleManager, RoleStaff} {
		for _, entry := range Navigation(role) {
			assert.True(t, CanVisit(role, entry.Path),
				"role %s is shown %s but the gate refuses it", role, entry.Path)
		}
	}
}

func TestCanVisit_StaffDeniedPrivilegedRoutes(t *testing.T) {
	assert.False(t, CanVisit(RoleStaff, "/admin"))
	assert.False(t, CanVisit(RoleStaff, "/manager"))
	assert.False(t, CanVisit(RoleStaff, "/staff"))
	assert.False(t, CanVisit(RoleStaff, "/attendance"))
}

func TestCanVisit_ManagerDeniedAdminRoute(t *testing.T) {
	assert.False(t, CanVisit(RoleManager, "/admin"))
	assert.True(t, CanVisit(RoleManager, "/manager"))
	assert.True(t, CanVisit(RoleManager, "/attendance"))
}

func TestCanVisit_SuperAdminSeesEverything(t *testing.T) {
	for _, path := range []string{"/admin", "/tasks", "/staff", "/attendance", "/files", "/whiteboard", "/settings"} {
		assert.True(t, CanVisit(RoleSuperAdmin, path), "super admin denied %s", path)
	}
}

func TestCanVisit_UnownedRoutesOpenToAll(t *testing.T) {
	// Routes in nobody's table are plain authenticated routes.
	assert.True(t, CanVisit(RoleStaff, "/some-future-page"))
	assert.True(t, CanVisit(Role("unknown"), "/tasks"))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("super_admin")
	assert.True(t, ok)
	assert.Equal(t, RoleSuperAdmin, role)

	_, ok = ParseRole("admin")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestRoleChecks(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsSuperAdmin())
	assert.True(t, RoleSuperAdmin.IsManager())
	assert.True(t, RoleManager.IsManager())
	assert.False(t, RoleManager.IsSuperAdmin())
	assert.False(t, RoleStaff.IsManager())
}
