package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"donorhub/internal/domain"
	"donorhub/internal/infra"
	"donorhub/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository over the profiles table.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(exec infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: exec}
}

// List returns profiles matching filter. Status filters by role.
func (r *UserRepositoryPG) List(ctx context.Context, filter domain.RecordFilter) ([]domain.User, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListUsers,
		filter.CreatedAfter,
		filter.CreatedBefore,
		filter.Status,
		filter.Search,
		filter.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	items := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches a profile by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id))
}

// GetByEmail fetches a profile by email, case-insensitively.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByEmail, email))
}

// UpdateRole changes a profile's role.
func (r *UserRepositoryPG) UpdateRole(ctx context.Context, id string, role domain.UserRole) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role %q", domain.ErrInvalidInput, role)
	}
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QUpdateUserRole, id, string(role)))
}

func scanUser(row infra.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
