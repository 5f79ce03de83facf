package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"donorhub/internal/domain"
	"donorhub/internal/infra"
	"donorhub/internal/sqlinline"
)

// VolunteerRepositoryPG implements domain.VolunteerRepository using PostgreSQL.
type VolunteerRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewVolunteerRepository(exec infra.SQLExecutor) *VolunteerRepositoryPG {
	return &VolunteerRepositoryPG{sql: exec}
}

// Create inserts a pending application and fills in the generated fields.
func (r *VolunteerRepositoryPG) Create(ctx context.Context, v *domain.Volunteer) error {
	var userID string
	if v.UserID != nil {
		userID = *v.UserID
	}
	skills := v.Skills
	if skills == nil {
		skills = []string{}
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertVolunteer,
		userID,
		v.Name,
		v.Email,
		v.Phone,
		pq.Array(skills),
		v.Availability,
		v.Message,
	)
	var status string
	if err := row.Scan(&v.ID, &status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return fmt.Errorf("insert volunteer: %w", err)
	}
	v.Status = domain.VolunteerStatus(status)
	return nil
}

// List returns applications matching filter, newest first. Program is ignored.
func (r *VolunteerRepositoryPG) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Volunteer, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListVolunteers,
		filter.CreatedAfter,
		filter.CreatedBefore,
		filter.Status,
		filter.Search,
		filter.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}
	defer rows.Close()

	items := []domain.Volunteer{}
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus reviews an application; see DonationRepositoryPG.UpdateStatus
// for the error contract.
func (r *VolunteerRepositoryPG) UpdateStatus(ctx context.Context, id string, status domain.VolunteerStatus) (*domain.Volunteer, error) {
	if !status.Valid() || len(status.Sources()) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	sources := make([]string, 0, len(status.Sources()))
	for _, s := range status.Sources() {
		sources = append(sources, string(s))
	}

	v, err := scanVolunteer(r.sql.QueryRow(ctx, sqlinline.QUpdateVolunteerStatus, id, string(status), pq.Array(sources)))
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update volunteer status: %w", err)
	}

	var exists bool
	if err := r.sql.QueryRow(ctx, sqlinline.QVolunteerExists, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check volunteer: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, fmt.Errorf("%w: cannot move to %q", domain.ErrInvalidStatus, status)
}

func scanVolunteer(row infra.Row) (*domain.Volunteer, error) {
	var (
		v      domain.Volunteer
		userID sql.NullString
		status string
	)
	if err := row.Scan(
		&v.ID,
		&userID,
		&v.Name,
		&v.Email,
		&v.Phone,
		pq.Array(&v.Skills),
		&v.Availability,
		&v.Message,
		&status,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if userID.Valid {
		v.UserID = &userID.String
	}
	if v.Skills == nil {
		v.Skills = []string{}
	}
	v.Status = domain.VolunteerStatus(status)
	return &v, nil
}

var _ domain.VolunteerRepository = (*VolunteerRepositoryPG)(nil)
