package domain

import "context"

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	List(ctx context.Context, filter RecordFilter) ([]Donation, error)
	ListByUser(ctx context.Context, userID string) ([]Donation, error)
	UpdateStatus(ctx context.Context, id string, status DonationStatus) (*Donation, error)
}

// VolunteerRepository handles volunteer applications.
type VolunteerRepository interface {
	Create(ctx context.Context, volunteer *Volunteer) error
	List(ctx context.Context, filter RecordFilter) ([]Volunteer, error)
	UpdateStatus(ctx context.Context, id string, status VolunteerStatus) (*Volunteer, error)
}

// UserRepository defines read access to profiles plus role management.
type UserRepository interface {
	List(ctx context.Context, filter RecordFilter) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateRole(ctx context.Context, id string, role UserRole) (*User, error)
}
