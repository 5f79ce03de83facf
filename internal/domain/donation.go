package domain

import "time"

// DonationStatus enumerates the payment lifecycle of a donation.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
	DonationStatusRefunded  DonationStatus = "refunded"
)

// Valid reports whether s is a known donation status.
func (s DonationStatus) Valid() bool {
	switch s {
	case DonationStatusPending, DonationStatusCompleted, DonationStatusFailed, DonationStatusRefunded:
		return true
	}
	return false
}

// Sources lists the statuses a donation may move to s from. Pending is the
// initial state and cannot be re-entered.
func (s DonationStatus) Sources() []DonationStatus {
	switch s {
	case DonationStatusCompleted, DonationStatusFailed:
		return []DonationStatus{DonationStatusPending}
	case DonationStatusRefunded:
		return []DonationStatus{DonationStatusPending, DonationStatusCompleted}
	}
	return nil
}

// Donation represents a supporter contribution record.
type Donation struct {
	ID            string
	UserID        *string
	DonorName     string
	DonorEmail    string
	Amount        float64
	Currency      string
	Program       string
	Status        DonationStatus
	PaymentMethod string
	Message       string
	Anonymous     bool
	Country       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
