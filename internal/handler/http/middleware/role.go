package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/user"
	"github.com/taskora/taskora-backend-go/internal/handler/http/response"
)

// roleFromClaims resolves the token's role claim. Anything missing or
// unknown is least privilege: plain staff.
func roleFromClaims(r *http.Request) user.Role {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.RoleStaff
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return user.RoleStaff
	}
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return user.RoleStaff
	}
	return role
}

// RequireSuperAdmin admits only the super admin. The denial carries the
// caller's own landing route.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := roleFromClaims(r)
		if !role.IsSuperAdmin() {
			response.ForbiddenWithRedirect(w, "Super admin access required", user.LandingRoute(role))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManager admits managers and the super admin.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := roleFromClaims(r)
		if !role.IsManager() {
			response.ForbiddenWithRedirect(w, "Manager access required", user.LandingRoute(role))
			return
		}
		next.ServeHTTP(w, r)
	})
}
