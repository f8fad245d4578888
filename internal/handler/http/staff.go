package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/user"
	"github.com/taskora/taskora-backend-go/internal/handler/http/response"
)

type StaffHandler interface {
	// Directory
	List(w http.ResponseWriter, r *http.Request)

	// Own profile
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)

	// Role-derived client surface
	Navigation(w http.ResponseWriter, r *http.Request)
	ResolveRoute(w http.ResponseWriter, r *http.Request)

	// Admin provisioning
	CreateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
	SetUserActive(w http.ResponseWriter, r *http.Request)
}

type StaffHandlerImpl struct {
	userService user.UserService
}

func NewStaffHandler(userService user.UserService) StaffHandler {
	return &StaffHandlerImpl{userService: userService}
}

// List implements StaffHandler. Manager and above.
func (h *StaffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	staff, err := h.userService.ListStaff(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, staff)
}

// GetProfile implements StaffHandler.
func (h *StaffHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

// UpdateProfile implements StaffHandler.
func (h *StaffHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

// Navigation implements StaffHandler. The sidebar and the landing route come
// from the same table the gate enforces.
func (h *StaffHandlerImpl) Navigation(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	nav, err := h.userService.Navigation(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, nav)
}

// ResolveRoute implements StaffHandler.
func (h *StaffHandlerImpl) ResolveRoute(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		response.BadRequest(w, "path is required", nil)
		return
	}

	resolution, err := h.userService.ResolveRoute(r.Context(), userID, path)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resolution)
}

// CreateUser implements StaffHandler. Super admin only; the service
// re-verifies the caller's role from the store.
func (h *StaffHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	callerID := getUserIDFromContext(r)
	if callerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.userService.CreateUser(r.Context(), callerID, req)
	if err != nil {
		slog.Error("CreateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User provisioned", "user_id", created.UserID)
	response.Created(w, "User created", created)
}

// DeleteUser implements StaffHandler.
func (h *StaffHandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	callerID := getUserIDFromContext(r)
	if callerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), callerID, targetID); err != nil {
		slog.Error("DeleteUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User deleted", "user_id", targetID)
	response.SuccessWithMessage(w, "User deleted", nil)
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetUserActive implements StaffHandler.
func (h *StaffHandlerImpl) SetUserActive(w http.ResponseWriter, r *http.Request) {
	callerID := getUserIDFromContext(r)
	if callerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.userService.SetUserActive(r.Context(), callerID, targetID, req.IsActive); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", nil)
}
