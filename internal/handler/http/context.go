package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/user"
)

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// getRoleFromContext resolves the role claim, defaulting to staff.
func getRoleFromContext(r *http.Request) user.Role {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if roleStr, ok := claims["role"].(string); ok {
		if role, ok := user.ParseRole(roleStr); ok {
			return role
		}
	}
	return user.RoleStaff
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}
