package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskora/taskora-backend-go/internal/domain/user"
	"github.com/taskora/taskora-backend-go/internal/pkg/database"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, email string, passwordHash string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at, updated_at
	`

	var u user.User
	err := q.QueryRow(ctx, query, email, passwordHash).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

type profileRepository struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) user.ProfileRepository {
	return &profileRepository{db: db}
}

// Create implements user.ProfileRepository.
func (r *profileRepository) Create(ctx context.Context, profile user.Profile) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (user_id, full_name, email, company_name, manager_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		profile.UserID,
		profile.FullName,
		profile.Email,
		profile.CompanyName,
		profile.ManagerID,
		profile.IsActive,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return user.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// GetByUserID implements user.ProfileRepository.
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.user_id, p.full_name, p.email, p.company_name, p.manager_id, p.is_active,
		       p.created_at, p.updated_at,
		       r.role
		FROM profiles p
		LEFT JOIN user_roles r ON r.user_id = p.user_id
		WHERE p.user_id = $1
	`

	var p user.Profile
	var roleStr *string
	err := q.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Email, &p.CompanyName, &p.ManagerID, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
		&roleStr,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, user.ErrProfileNotFound
		}
		return user.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	p.Role = parseRolePtr(roleStr)
	return p, nil
}

// Update implements user.ProfileRepository.
func (r *profileRepository) Update(ctx context.Context, profile user.Profile) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE profiles
		SET full_name = $2, company_name = $3, manager_id = $4, is_active = $5, updated_at = NOW()
		WHERE user_id = $1
	`,
		profile.UserID,
		profile.FullName,
		profile.CompanyName,
		profile.ManagerID,
		profile.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrProfileNotFound
	}
	return nil
}

// List implements user.ProfileRepository.
func (r *profileRepository) List(ctx context.Context) ([]user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.user_id, p.full_name, p.email, p.company_name, p.manager_id, p.is_active,
		       p.created_at, p.updated_at,
		       r.role
		FROM profiles p
		LEFT JOIN user_roles r ON r.user_id = p.user_id
		ORDER BY p.full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []user.Profile
	for rows.Next() {
		var p user.Profile
		var roleStr *string
		if err := rows.Scan(
			&p.UserID, &p.FullName, &p.Email, &p.CompanyName, &p.ManagerID, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
			&roleStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.Role = parseRolePtr(roleStr)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// CountActive implements user.ProfileRepository.
func (r *profileRepository) CountActive(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active profiles: %w", err)
	}
	return count, nil
}

func parseRolePtr(s *string) *user.Role {
	if s == nil {
		return nil
	}
	role, ok := user.ParseRole(*s)
	if !ok {
		return nil
	}
	return &role
}

type roleRepository struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) user.RoleRepository {
	return &roleRepository{db: db}
}

// Assign implements user.RoleRepository.
func (r *roleRepository) Assign(ctx context.Context, userID string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`, userID, string(role))
	if err != nil {
		// The partial unique index on role = 'super_admin' is the
		// authoritative uniqueness guarantee; a concurrent duplicate
		// surfaces here.
		if isUniqueViolation(err) {
			return user.ErrSuperAdminExists
		}
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

// GetByUserID implements user.RoleRepository.
func (r *roleRepository) GetByUserID(ctx context.Context, userID string) (user.Role, error) {
	q := GetQuerier(ctx, r.db)

	var roleStr string
	err := q.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, userID).Scan(&roleStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", user.ErrRoleNotFound
		}
		return "", fmt.Errorf("failed to get role: %w", err)
	}

	role, ok := user.ParseRole(roleStr)
	if !ok {
		return "", user.ErrInvalidRole
	}
	return role, nil
}

// SuperAdminExists implements user.RoleRepository.
func (r *roleRepository) SuperAdminExists(ctx context.Context) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_roles WHERE role = 'super_admin')`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check super admin existence: %w", err)
	}
	return exists, nil
}
