// Package report fetches donation, volunteer and user records, folds them
// into grouped summaries and renders the result as JSON or CSV.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"donorhub/internal/domain"
)

var (
	ErrUnknownType   = errors.New("unknown report type")
	ErrUnknownFormat = errors.New("unknown report format")
	ErrInvalidFilter = errors.New("invalid report filter")
)

// Type identifies a report.
type Type string

const (
	TypeDonations      Type = "donations"
	TypeVolunteers     Type = "volunteers"
	TypeUsers          Type = "users"
	TypeMonthlySummary Type = "monthly-summary"
	TypeImpactReport   Type = "impact-report"
)

// Types lists every supported report in a stable order.
var Types = []Type{TypeDonations, TypeVolunteers, TypeUsers, TypeMonthlySummary, TypeImpactReport}

// ParseType validates a report type name.
func ParseType(s string) (Type, error) {
	t := Type(strings.TrimSpace(strings.ToLower(s)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Format selects the export representation.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name; blank means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.TrimSpace(strings.ToLower(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Filters are the caller-facing report filters, echoed back in documents.
type Filters struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Program   string `json:"program,omitempty"`
	Status    string `json:"status,omitempty"`
}

// RecordFilter converts the filters into a storage filter. Dates accept
// YYYY-MM-DD or RFC 3339; a date-only end bound covers that whole UTC day.
func (f Filters) RecordFilter() (domain.RecordFilter, error) {
	var out domain.RecordFilter
	if f.StartDate != "" {
		t, _, err := parseDate(f.StartDate)
		if err != nil {
			return out, fmt.Errorf("%w: startDate: %v", ErrInvalidFilter, err)
		}
		out.CreatedAfter = &t
	}
	if f.EndDate != "" {
		t, dateOnly, err := parseDate(f.EndDate)
		if err != nil {
			return out, fmt.Errorf("%w: endDate: %v", ErrInvalidFilter, err)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1)
		}
		out.CreatedBefore = &t
	}
	if out.CreatedAfter != nil && out.CreatedBefore != nil && !out.CreatedAfter.Before(*out.CreatedBefore) {
		return out, fmt.Errorf("%w: startDate must precede endDate", ErrInvalidFilter)
	}
	if f.Program != "" {
		out.Program = NormalizeSlug(f.Program)
	}
	out.Status = strings.TrimSpace(strings.ToLower(f.Status))
	return out, nil
}

func parseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected YYYY-MM-DD or RFC 3339, got %q", s)
	}
	return t.UTC(), false, nil
}

// Request is a report request as accepted by the HTTP API.
type Request struct {
	Type    Type    `json:"reportType"`
	Format  Format  `json:"format"`
	Filters Filters `json:"filters"`
}

// Fetcher retrieves records for reports. Implementations surface storage
// failures as errors; the engine performs no retries.
type Fetcher interface {
	Donations(ctx context.Context, filter domain.RecordFilter) ([]domain.Donation, error)
	Volunteers(ctx context.Context, filter domain.RecordFilter) ([]domain.Volunteer, error)
	Users(ctx context.Context, filter domain.RecordFilter) ([]domain.User, error)
}

// Report is a computed report ready for export.
type Report struct {
	Type        Type
	Filters     Filters
	GeneratedAt time.Time
	Rows        []Row
	Summary     any
}

// Document returns the structured export of the report.
func (r *Report) Document() Document {
	return ToStructuredDocument(r.Rows, Metadata{
		Type:        r.Type,
		Filters:     r.Filters,
		GeneratedAt: r.GeneratedAt,
		Summary:     r.Summary,
	})
}

// CSV returns the delimited-text export of the report rows.
func (r *Report) CSV() string {
	return ToDelimitedText(r.Rows)
}

// Filename suggests a download name for the given format.
func (r *Report) Filename(f Format) string {
	return Filename(r.Type, f, r.GeneratedAt)
}
