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

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(exec infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: exec}
}

// Create inserts a pending donation and fills in the generated fields.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	var userID string
	if d.UserID != nil {
		userID = *d.UserID
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonation,
		userID,
		d.DonorName,
		d.DonorEmail,
		d.Amount,
		d.Currency,
		d.Program,
		d.PaymentMethod,
		d.Message,
		d.Anonymous,
		d.Country,
	)
	var status string
	if err := row.Scan(&d.ID, &status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	d.Status = domain.DonationStatus(status)
	return nil
}

// List returns donations matching filter, newest first.
func (r *DonationRepositoryPG) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonations,
		filter.CreatedAfter,
		filter.CreatedBefore,
		filter.Status,
		filter.Program,
		filter.Search,
		filter.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return collectDonations(rows)
}

// ListByUser returns a donor's own donations, newest first.
func (r *DonationRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonationsByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("list user donations: %w", err)
	}
	return collectDonations(rows)
}

// UpdateStatus moves a donation to status. It returns domain.ErrNotFound for
// an unknown id and domain.ErrInvalidStatus when the current status cannot
// move to the requested one.
func (r *DonationRepositoryPG) UpdateStatus(ctx context.Context, id string, status domain.DonationStatus) (*domain.Donation, error) {
	if !status.Valid() || len(status.Sources()) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	sources := make([]string, 0, len(status.Sources()))
	for _, s := range status.Sources() {
		sources = append(sources, string(s))
	}

	row := r.sql.QueryRow(ctx, sqlinline.QUpdateDonationStatus, id, string(status), pq.Array(sources))
	d, err := scanDonation(row)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update donation status: %w", err)
	}

	var exists bool
	if err := r.sql.QueryRow(ctx, sqlinline.QDonationExists, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check donation: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, fmt.Errorf("%w: cannot move to %q", domain.ErrInvalidStatus, status)
}

func collectDonations(rows infra.Rows) ([]domain.Donation, error) {
	defer rows.Close()

	items := []domain.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanDonation(row infra.Row) (*domain.Donation, error) {
	var (
		d      domain.Donation
		userID sql.NullString
		status string
	)
	if err := row.Scan(
		&d.ID,
		&userID,
		&d.DonorName,
		&d.DonorEmail,
		&d.Amount,
		&d.Currency,
		&d.Program,
		&status,
		&d.PaymentMethod,
		&d.Message,
		&d.Anonymous,
		&d.Country,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if userID.Valid {
		d.UserID = &userID.String
	}
	d.Status = domain.DonationStatus(status)
	return &d, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
