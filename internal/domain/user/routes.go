package user

// NavEntry is one sidebar item the frontend renders for a role.
type NavEntry struct {
	Icon       string `json:"icon"`
	Label      string `json:"label"`
	Path       string `json:"path"`
	ComingSoon bool   `json:"coming_soon,omitempty"`
}

// roleRoutes binds everything that branches on a role: the landing route the
// gate redirects to, the set of routes the gate admits, and the navigation
// entries shown for that role. Gate and navigation read the same rows so the
// three call sites cannot drift.
type roleRoutes struct {
	landing string
	nav     []NavEntry
}

const defaultLanding = "/staff-dashboard"

var routeTable = map[Role]roleRoutes{
	RoleSuperAdmin: {
		landing: "/admin",
		nav: []NavEntry{
			{Icon: "layout-dashboard", Label: "Dashboard", Path: "/admin"},
			{Icon: "check-square", Label: "Tasks", Path: "/tasks"},
			{Icon: "users", Label: "Staff", Path: "/staff"},
			{Icon: "clock", Label: "Attendance", Path: "/attendance"},
			{Icon: "folder", Label: "Files", Path: "/files"},
			{Icon: "pen-tool", Label: "Whiteboard", Path: "/whiteboard"},
			{Icon: "bell", Label: "Notifications", Path: "/notifications"},
			{Icon: "message-circle", Label: "Chat", Path: "/chat", ComingSoon: true},
			{Icon: "bot", Label: "AI Assistant", Path: "/assistant"},
			{Icon: "settings", Label: "Settings", Path: "/settings"},
		},
	},
	RoleManager: {
		landing: "/manager",
		nav: []NavEntry{
			{Icon: "layout-dashboard", Label: "Dashboard", Path: "/manager"},
			{Icon: "check-square", Label: "Tasks", Path: "/tasks"},
			{Icon: "users", Label: "Staff", Path: "/staff"},
			{Icon: "clock", Label: "Attendance", Path: "/attendance"},
			{Icon: "folder", Label: "Files", Path: "/files"},
			{Icon: "pen-tool", Label: "Whiteboard", Path: "/whiteboard"},
			{Icon: "bell", Label: "Notifications", Path: "/notifications"},
			{Icon: "message-circle", Label: "Chat", Path: "/chat", ComingSoon: true},
			{Icon: "bot", Label: "AI Assistant", Path: "/assistant"},
			{Icon: "settings", Label: "Settings", Path: "/settings"},
		},
	},
	RoleStaff: {
		landing: defaultLanding,
		nav: []NavEntry{
			{Icon: "layout-dashboard", Label: "Dashboard", Path: defaultLanding},
			{Icon: "check-square", Label: "Tasks", Path: "/tasks"},
			{Icon: "folder", Label: "Files", Path: "/files"},
			{Icon: "pen-tool", Label: "Whiteboard", Path: "/whiteboard"},
			{Icon: "bell", Label: "Notifications", Path: "/notifications"},
			{Icon: "message-circle", Label: "Chat", Path: "/chat", ComingSoon: true},
			{Icon: "bot", Label: "AI Assistant", Path: "/assistant"},
			{Icon: "settings", Label: "Settings", Path: "/settings"},
		},
	},
}

// LandingRoute returns the dashboard route for a role. The mapping is total:
// unknown and unresolved roles land on the staff dashboard.
func LandingRoute(role Role) string {
	if rr, ok := routeTable[role]; ok {
		return rr.landing
	}
	return defaultLanding
}

// Navigation returns the ordered sidebar entries for a role. Unresolved roles
// get the staff menu, which only lists routes every authenticated user may
// visit.
func Navigation(role Role) []NavEntry {
	rr, ok := routeTable[role]
	if !ok {
		rr = routeTable[RoleStaff]
	}
	entries := make([]NavEntry, len(rr.nav))
	copy(entries, rr.nav)
	return entries
}

// CanVisit reports whether the gate admits the role to a route. Routes not in
// any role's table are open to all authenticated users.
func CanVisit(role Role, path string) bool {
	if rr, ok := routeTable[role]; ok {
		for _, e := range rr.nav {
			if e.Path == path {
				return true
			}
		}
	}
	// A path owned by some other role's table is privileged; everything else
	// is a plain authenticated route.
	return !isPrivileged(path)
}

func isPrivileged(path string) bool {
	owners := map[string]Role{
		"/admin":      RoleSuperAdmin,
		"/manager":    RoleManager,
		"/staff":      RoleManager, // staff directory is manager-and-above
		"/attendance": RoleManager, // team attendance view
	}
	_, ok := owners[path]
	return ok
}
