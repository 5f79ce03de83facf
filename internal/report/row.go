package report

import (
	"bytes"
	"encoding/json"
	"time"

	"donorhub/internal/domain"
)

// Row is a record projected onto an ordered set of named fields. Fields
// defines the column order used by the delimited exporter; Field returns the
// value for one column and false when the row has no such column.
type Row interface {
	Fields() []string
	Field(name string) (any, bool)
}

var (
	donationFields  = []string{"id", "donor_name", "donor_email", "amount", "currency", "program", "status", "payment_method", "anonymous", "country", "created_at"}
	volunteerFields = []string{"id", "name", "email", "phone", "skills", "availability", "status", "created_at"}
	userFields      = []string{"id", "full_name", "email", "role", "created_at"}
	monthlyFields   = []string{"month", "donation_count", "donation_amount", "volunteer_count"}
	impactFields    = []string{"program", "donation_count", "total_amount", "average_amount"}
)

// DonationRow is the export projection of a donation.
type DonationRow struct {
	ID            string    `json:"id"`
	DonorName     string    `json:"donor_name"`
	DonorEmail    string    `json:"donor_email"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Program       string    `json:"program"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	Anonymous     bool      `json:"anonymous"`
	Country       string    `json:"country"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewDonationRow(d domain.Donation) DonationRow {
	return DonationRow{
		ID:            d.ID,
		DonorName:     d.DonorName,
		DonorEmail:    d.DonorEmail,
		Amount:        d.Amount,
		Currency:      d.Currency,
		Program:       d.Program,
		Status:        string(d.Status),
		PaymentMethod: d.PaymentMethod,
		Anonymous:     d.Anonymous,
		Country:       d.Country,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

func (r DonationRow) Fields() []string { return donationFields }

func (r DonationRow) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "donor_name":
		return r.DonorName, true
	case "donor_email":
		return r.DonorEmail, true
	case "amount":
		return r.Amount, true
	case "currency":
		return r.Currency, true
	case "program":
		return r.Program, true
	case "status":
		return r.Status, true
	case "payment_method":
		return r.PaymentMethod, true
	case "anonymous":
		return r.Anonymous, true
	case "country":
		return r.Country, true
	case "created_at":
		return r.CreatedAt, true
	}
	return nil, false
}

// VolunteerRow is the export projection of a volunteer application.
type VolunteerRow struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Skills       []string  `json:"skills"`
	Availability string    `json:"availability"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewVolunteerRow(v domain.Volunteer) VolunteerRow {
	skills := v.Skills
	if skills == nil {
		skills = []string{}
	}
	return VolunteerRow{
		ID:           v.ID,
		Name:         v.Name,
		Email:        v.Email,
		Phone:        v.Phone,
		Skills:       skills,
		Availability: v.Availability,
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt.UTC(),
	}
}

func (r VolunteerRow) Fields() []string { return volunteerFields }

func (r VolunteerRow) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "name":
		return r.Name, true
	case "email":
		return r.Email, true
	case "phone":
		return r.Phone, true
	case "skills":
		return r.Skills, true
	case "availability":
		return r.Availability, true
	case "status":
		return r.Status, true
	case "created_at":
		return r.CreatedAt, true
	}
	return nil, false
}

// UserRow is the export projection of a profile.
type UserRow struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserRow(u domain.User) UserRow {
	return UserRow{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func (r UserRow) Fields() []string { return userFields }

func (r UserRow) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "full_name":
		return r.FullName, true
	case "email":
		return r.Email, true
	case "role":
		return r.Role, true
	case "created_at":
		return r.CreatedAt, true
	}
	return nil, false
}

// MonthlySummaryRow is one calendar month of activity.
type MonthlySummaryRow struct {
	Month          string  `json:"month"`
	DonationCount  int     `json:"donation_count"`
	DonationAmount float64 `json:"donation_amount"`
	VolunteerCount int     `json:"volunteer_count"`
}

func (r MonthlySummaryRow) Fields() []string { return monthlyFields }

func (r MonthlySummaryRow) Field(name string) (any, bool) {
	switch name {
	case "month":
		return r.Month, true
	case "donation_count":
		return r.DonationCount, true
	case "donation_amount":
		return r.DonationAmount, true
	case "volunteer_count":
		return r.VolunteerCount, true
	}
	return nil, false
}

// ProgramImpactRow summarizes donations earmarked for one program.
type ProgramImpactRow struct {
	Program       string  `json:"program"`
	DonationCount int     `json:"donation_count"`
	TotalAmount   float64 `json:"total_amount"`
	AverageAmount float64 `json:"average_amount"`
}

func (r ProgramImpactRow) Fields() []string { return impactFields }

func (r ProgramImpactRow) Field(name string) (any, bool) {
	switch name {
	case "program":
		return r.Program, true
	case "donation_count":
		return r.DonationCount, true
	case "total_amount":
		return r.TotalAmount, true
	case "average_amount":
		return r.AverageAmount, true
	}
	return nil, false
}

// MapRow is an ad-hoc row with an explicit key order. It marshals to a JSON
// object whose keys follow Keys.
type MapRow struct {
	Keys   []string
	Values map[string]any
}

// NewMapRow builds a MapRow from alternating key/value pairs.
func NewMapRow(pairs ...any) MapRow {
	row := MapRow{Values: make(map[string]any, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		row.Set(key, pairs[i+1])
	}
	return row
}

// Set assigns a value, appending the key when it is new.
func (r *MapRow) Set(key string, value any) {
	if r.Values == nil {
		r.Values = map[string]any{}
	}
	if _, exists := r.Values[key]; !exists {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = value
}

func (r MapRow) Fields() []string { return r.Keys }

func (r MapRow) Field(name string) (any, bool) {
	v, ok := r.Values[name]
	return v, ok
}

func (r MapRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.Values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
