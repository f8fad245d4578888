package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "github.com/taskora/taskora-backend-go/internal/domain/user"
)

type fakeRoleRepo struct {
	roles map[string]domain.Role
}

func (f *fakeRoleRepo) Assign(_ context.Context, userID string, role domain.Role) error {
	f.roles[userID] = role
	return nil
}

func (f *fakeRoleRepo) GetByUserID(_ context.Context, userID string) (domain.Role, error) {
	role, ok := f.roles[userID]
	if !ok {
		return "", domain.ErrRoleNotFound
	}
	return role, nil
}

func (f *fakeRoleRepo) SuperAdminExists(_ context.Context) (bool, error) {
	for _, role := range f.roles {
		if role == domain.RoleSuperAdmin {
			return true, nil
		}
	}
	return false, nil
}

type fakeProfileRepo struct {
	profiles map[string]domain.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, p domain.Profile) (domain.Profile, error) {
	f.profiles[p.UserID] = p
	return p, nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p domain.Profile) error {
	if _, ok := f.profiles[p.UserID]; !ok {
		return domain.ErrProfileNotFound
	}
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfileRepo) CountActive(_ context.Context) (int, error) {
	n := 0
	for _, p := range f.profiles {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func newTestUserService(roles map[string]domain.Role) *UserServiceImpl {
	return &UserServiceImpl{
		ProfileRepository: &fakeProfileRepo{profiles: make(map[string]domain.Profile)},
		RoleRepository:    &fakeRoleRepo{roles: roles},
	}
}

func TestDeleteUser_RequiresSuperAdmin(t *testing.T) {
	svc := newTestUserService(map[string]domain.Role{
		"manager-1": domain.RoleManager,
		"staff-1":   domain.RoleStaff,
	})

	err := svc.DeleteUser(context.Background(), "manager-1", "staff-1")
	assert.ErrorIs(t, err, domain.ErrSuperAdminRequired)
}

func TestDeleteUser_RefusesSelf(t *testing.T) {
	svc := newTestUserService(map[string]domain.Role{
		"admin-1": domain.RoleSuperAdmin,
	})

	err := svc.DeleteUser(context.Background(), "admin-1", "admin-1")
	assert.ErrorIs(t, err, domain.ErrCannotDeleteSelf)
}

func TestDeleteUser_RefusesSuperAdminTarget(t *testing.T) {
	svc := newTestUserService(map[string]domain.Role{
		"admin-1": domain.RoleSuperAdmin,
		"admin-2": domain.RoleSuperAdmin,
	})

	err := svc.DeleteUser(context.Background(), "admin-1", "admin-2")
	assert.ErrorIs(t, err, domain.ErrCannotDeleteSuperAdmin)
}

func TestCreateUser_RequiresStoredSuperAdminRole(t *testing.T) {
	// The caller claims nothing; the stored assignment decides.
	svc := newTestUserService(map[string]domain.Role{
		"staff-1": domain.RoleStaff,
	})

	_, err := svc.CreateUser(context.Background(), "staff-1", domain.CreateUserRequest{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New Person",
		Role:     "staff",
	})
	assert.ErrorIs(t, err, domain.ErrSuperAdminRequired)
}

func TestCreateUser_RefusesSuperAdminRole(t *testing.T) {
	svc := newTestUserService(map[string]domain.Role{
		"admin-1": domain.RoleSuperAdmin,
	})

	_, err := svc.CreateUser(context.Background(), "admin-1", domain.CreateUserRequest{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New Person",
		Role:     "super_admin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestResolveRoute_DenialCarriesCallerLanding(t *testing.T) {
	svc := newTestUserService(map[string]domain.Role{
		"staff-1": domain.RoleStaff,
	})

	resolution, err := svc.ResolveRoute(context.Background(), "staff-1", "/admin")
	require.NoError(t, err)
	assert.False(t, resolution.Allowed)
	assert.Equal(t, "/staff-dashboard", resolution.RedirectTo)
}

func TestResolveRoute_UnassignedRoleIsLeastPrivilege(t *testing.T) {
	svc := newTestUserService(map[string]domain.Role{})

	resolution, err := svc.ResolveRoute(context.Background(), "ghost", "/manager")
	require.NoError(t, err)
	assert.False(t, resolution.Allowed)
	assert.Equal(t, "/staff-dashboard", resolution.RedirectTo)
}

func TestNavigation_MatchesStoredRole(t *testing.T) {
	svc := newTestUserService(map[string]domain.Role{
		"admin-1": domain.RoleSuperAdmin,
	})

	nav, err := svc.Navigation(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "/admin", nav.Landing)
	assert.Equal(t, domain.Navigation(domain.RoleSuperAdmin), nav.Entries)
}
