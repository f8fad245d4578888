package user

import (
	"time"

	"github.com/taskora/taskora-backend-go/internal/pkg/validator"
)

type ProfileResponse struct {
	UserID      string    `json:"user_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	CompanyName *string   `json:"company_name,omitempty"`
	ManagerID   *string   `json:"manager_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	Role        *Role     `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p Profile) ToResponse() ProfileResponse {
	return ProfileResponse{
		UserID:      p.UserID,
		FullName:    p.FullName,
		Email:       p.Email,
		CompanyName: p.CompanyName,
		ManagerID:   p.ManagerID,
		IsActive:    p.IsActive,
		Role:        p.Role,
		CreatedAt:   p.CreatedAt,
	}
}

// CreateUserRequest is the admin provisioning path. Accounts created here
// can be managers or staff; the super admin only ever comes from bootstrap.
type CreateUserRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	ManagerID *string `json:"manager_id"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if !validator.IsValidPassword(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsInSlice(r.Role, []string{string(RoleManager), string(RoleStaff)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: manager, staff",
		})
	}

	if r.ManagerID != nil && !validator.IsValidUUID(*r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager_id must be a valid id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RouteResolutionResponse answers "may this session visit this route". A
// denial always carries the redirect target so the client never invents one.
type RouteResolutionResponse struct {
	Path       string `json:"path"`
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// NavigationResponse pairs the sidebar entries with the landing route for
// one resolved role.
type NavigationResponse struct {
	Landing string     `json:"landing_route"`
	Entries []NavEntry `json:"entries"`
}

type UpdateProfileRequest struct {
	FullName    string  `json:"full_name"`
	CompanyName *string `json:"company_name"`
	ManagerID   *string `json:"manager_id"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if r.ManagerID != nil && !validator.IsValidUUID(*r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager_id must be a valid id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
