package httpapi

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"donorhub/internal/domain"
)

var fixedNow = time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC)

type memDonations struct {
	mu    sync.Mutex
	items []domain.Donation
	err   error
}

func (m *memDonations) Create(_ context.Context, d *domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = fmt.Sprintf("d%d", len(m.items)+1)
	d.Status = domain.DonationStatusPending
	d.CreatedAt, d.UpdatedAt = fixedNow, fixedNow
	m.items = append(m.items, *d)
	return nil
}

func (m *memDonations) List(_ context.Context, f domain.RecordFilter) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.Donation{}
	for _, d := range m.items {
		if f.Status != "" && string(d.Status) != f.Status {
			continue
		}
		if f.Program != "" && d.Program != f.Program {
			continue
		}
		if f.CreatedAfter != nil && d.CreatedAt.Before(*f.CreatedAfter) {
			continue
		}
		if f.CreatedBefore != nil && !d.CreatedAt.Before(*f.CreatedBefore) {
			continue
		}
		out = append(out, d)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *memDonations) ListByUser(_ context.Context, userID string) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Donation{}
	for _, d := range m.items {
		if d.UserID != nil && *d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDonations) UpdateStatus(_ context.Context, id string, status domain.DonationStatus) (*domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if !slices.Contains(status.Sources(), m.items[i].Status) {
			return nil, domain.ErrInvalidStatus
		}
		m.items[i].Status = status
		d := m.items[i]
		return &d, nil
	}
	return nil, domain.ErrNotFound
}

type memVolunteers struct {
	mu    sync.Mutex
	items []domain.Volunteer
}

func (m *memVolunteers) Create(_ context.Context, v *domain.Volunteer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = fmt.Sprintf("v%d", len(m.items)+1)
	v.Status = domain.VolunteerStatusPending
	v.CreatedAt, v.UpdatedAt = fixedNow, fixedNow
	m.items = append(m.items, *v)
	return nil
}

func (m *memVolunteers) List(_ context.Context, f domain.RecordFilter) ([]domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Volunteer{}
	for _, v := range m.items {
		if f.Status != "" && string(v.Status) != f.Status {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *memVolunteers) UpdateStatus(_ context.Context, id string, status domain.VolunteerStatus) (*domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if !slices.Contains(status.Sources(), m.items[i].Status) {
			return nil, domain.ErrInvalidStatus
		}
		m.items[i].Status = status
		v := m.items[i]
		return &v, nil
	}
	return nil, domain.ErrNotFound
}

type memUsers struct {
	items []domain.User
}

func (m *memUsers) List(context.Context, domain.RecordFilter) ([]domain.User, error) {
	return m.items, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.items {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) UpdateRole(_ context.Context, id string, role domain.UserRole) (*domain.User, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Role = role
			u := m.items[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memFetcher struct {
	donations  *memDonations
	volunteers *memVolunteers
	users      *memUsers
}

func (f memFetcher) Donations(ctx context.Context, filter domain.RecordFilter) ([]domain.Donation, error) {
	return f.donations.List(ctx, filter)
}

func (f memFetcher) Volunteers(ctx context.Context, filter domain.RecordFilter) ([]domain.Volunteer, error) {
	return f.volunteers.List(ctx, filter)
}

func (f memFetcher) Users(ctx context.Context, filter domain.RecordFilter) ([]domain.User, error) {
	return f.users.List(ctx, filter)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

var errDatabaseDown = errors.New("database down")
