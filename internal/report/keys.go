package report

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"donorhub/internal/domain"
)

// Sentinel group labels for records missing the grouping field.
const (
	OtherProgram     = "Other"
	PendingStatus    = "pending"
	UnspecifiedSkill = "Unspecified"
	UnknownMonth     = "Unknown"
)

const monthLayout = "2006-01"

// TruncateToMonth returns the first instant of t's calendar month in UTC.
func TruncateToMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthKey buckets t into its UTC calendar month as YYYY-MM.
func MonthKey(t time.Time) string {
	if t.IsZero() {
		return UnknownMonth
	}
	return TruncateToMonth(t).Format(monthLayout)
}

// KeyOr returns the trimmed value or fallback when it is blank.
func KeyOr(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// NormalizeSlug folds a free-form label into a lower-case, dash separated
// slug so "Clean Water" and "clean-water" share a group.
func NormalizeSlug(value string) string {
	folded := cases.Lower(language.Und).String(strings.TrimSpace(value))
	return strings.Join(strings.FieldsFunc(folded, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
}

// ProgramKey groups donations by program with OtherProgram as fallback.
func ProgramKey(d domain.Donation) string {
	return KeyOr(NormalizeSlug(d.Program), OtherProgram)
}

// DonationStatusKey groups donations by status with PendingStatus as fallback.
func DonationStatusKey(d domain.Donation) string {
	return KeyOr(string(d.Status), PendingStatus)
}

// VolunteerStatusKey groups volunteers by status with PendingStatus as fallback.
func VolunteerStatusKey(v domain.Volunteer) string {
	return KeyOr(string(v.Status), PendingStatus)
}

// DonationMonthKey buckets donations by UTC creation month.
func DonationMonthKey(d domain.Donation) string { return MonthKey(d.CreatedAt) }

// VolunteerMonthKey buckets volunteers by UTC creation month.
func VolunteerMonthKey(v domain.Volunteer) string { return MonthKey(v.CreatedAt) }

// AmountMeasure sums donation amounts.
var AmountMeasure = Measure[domain.Donation]{
	Name:  "amount",
	Value: func(d domain.Donation) (float64, bool) { return d.Amount, true },
}

// SkillEntry pairs a volunteer with one of their skills. Skill grouping
// aggregates over entries so each entry still lands in exactly one group.
type SkillEntry struct {
	Skill     string
	Volunteer domain.Volunteer
}

// ExplodeSkills yields one entry per (volunteer, skill); volunteers without
// skills yield a single UnspecifiedSkill entry.
func ExplodeSkills(volunteers []domain.Volunteer) []SkillEntry {
	entries := make([]SkillEntry, 0, len(volunteers))
	for _, v := range volunteers {
		seen := map[string]struct{}{}
		for _, s := range v.Skills {
			skill := NormalizeSlug(s)
			if skill == "" {
				continue
			}
			if _, dup := seen[skill]; dup {
				continue
			}
			seen[skill] = struct{}{}
			entries = append(entries, SkillEntry{Skill: skill, Volunteer: v})
		}
		if len(seen) == 0 {
			entries = append(entries, SkillEntry{Skill: UnspecifiedSkill, Volunteer: v})
		}
	}
	return entries
}
