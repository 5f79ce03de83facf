package domain

import (
	"fmt"
	"math"
	"net/mail"
	"strings"
)

// MaxDonationAmount caps a single pledge so running totals stay finite.
const MaxDonationAmount = 1e9

// Validate checks a donation submitted through the public intake form.
func (d *Donation) Validate() error {
	if strings.TrimSpace(d.DonorName) == "" {
		return fmt.Errorf("%w: donor name is required", ErrInvalidInput)
	}
	if err := validEmail(d.DonorEmail); err != nil {
		return err
	}
	if math.IsNaN(d.Amount) || d.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if d.Amount > MaxDonationAmount {
		return fmt.Errorf("%w: amount exceeds %.0f", ErrInvalidInput, float64(MaxDonationAmount))
	}
	if len(d.Message) > 2000 {
		return fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}
	return nil
}

// Validate checks a volunteer application.
func (v *Volunteer) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validEmail(v.Email); err != nil {
		return err
	}
	if len(v.Skills) > 20 {
		return fmt.Errorf("%w: too many skills", ErrInvalidInput)
	}
	return nil
}

func validEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	return nil
}
