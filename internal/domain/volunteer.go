package domain

import "time"

// VolunteerStatus enumerates the review states of a volunteer application.
type VolunteerStatus string

const (
	VolunteerStatusPending  VolunteerStatus = "pending"
	VolunteerStatusApproved VolunteerStatus = "approved"
	VolunteerStatusRejected VolunteerStatus = "rejected"
)

// Valid reports whether s is a known volunteer status.
func (s VolunteerStatus) Valid() bool {
	switch s {
	case VolunteerStatusPending, VolunteerStatusApproved, VolunteerStatusRejected:
		return true
	}
	return false
}

// Sources lists the statuses an application may move to s from.
func (s VolunteerStatus) Sources() []VolunteerStatus {
	switch s {
	case VolunteerStatusApproved, VolunteerStatusRejected:
		return []VolunteerStatus{VolunteerStatusPending}
	}
	return nil
}

// Volunteer is an application submitted through the get-involved pages.
type Volunteer struct {
	ID           string
	UserID       *string
	Name         string
	Email        string
	Phone        string
	Skills       []string
	Availability string
	Message      string
	Status       VolunteerStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
