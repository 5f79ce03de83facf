package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"donorhub/internal/domain"
)

// Generator builds reports from a Fetcher. It holds no per-request state.
type Generator struct {
	fetcher  Fetcher
	programs []domain.Program
	logger   zerolog.Logger
	now      func() time.Time
}

func NewGenerator(fetcher Fetcher, programs []domain.Program, logger zerolog.Logger) *Generator {
	return &Generator{
		fetcher:  fetcher,
		programs: programs,
		logger:   logger.With().Str("component", "report").Logger(),
		now:      time.Now,
	}
}

// WithClock overrides the clock used for generatedAt and filenames.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Output is a rendered report ready for the transport layer.
type Output struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// Render builds the requested report and serializes it in the requested
// format. Type and format are validated before any record is fetched.
func (g *Generator) Render(ctx context.Context, req Request) (*Output, error) {
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}
	rep, err := g.Build(ctx, req.Type, req.Filters)
	if err != nil {
		return nil, err
	}
	out := &Output{Filename: rep.Filename(format), Rows: len(rep.Rows)}
	switch format {
	case FormatCSV:
		out.ContentType = "text/csv; charset=utf-8"
		out.Body = []byte(rep.CSV())
	default:
		body, err := json.Marshal(rep.Document())
		if err != nil {
			return nil, fmt.Errorf("report: encode document: %w", err)
		}
		out.ContentType = "application/json"
		out.Body = body
	}
	g.logger.Debug().
		Str("type", string(rep.Type)).
		Str("format", string(format)).
		Int("bytes", len(out.Body)).
		Msg("report rendered")
	return out, nil
}

// Build fetches and aggregates the records for one report.
func (g *Generator) Build(ctx context.Context, t Type, filters Filters) (*Report, error) {
	t, err := ParseType(string(t))
	if err != nil {
		return nil, err
	}
	filter, err := filters.RecordFilter()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rep := &Report{Type: t, Filters: filters, GeneratedAt: g.now().UTC()}
	switch t {
	case TypeDonations:
		err = g.donations(ctx, filter, rep)
	case TypeVolunteers:
		err = g.volunteers(ctx, filter, rep)
	case TypeUsers:
		err = g.users(ctx, filter, rep)
	case TypeMonthlySummary:
		err = g.monthlySummary(ctx, filter, rep)
	case TypeImpactReport:
		err = g.impactReport(ctx, filter, rep)
	}
	if err != nil {
		g.logger.Error().Err(err).Str("type", string(t)).Msg("report failed")
		return nil, err
	}
	if rep.Rows == nil {
		rep.Rows = []Row{}
	}
	g.logger.Info().
		Str("type", string(t)).
		Int("rows", len(rep.Rows)).
		Dur("took", time.Since(start)).
		Msg("report built")
	return rep, nil
}

func (g *Generator) donations(ctx context.Context, filter domain.RecordFilter, rep *Report) error {
	items, err := g.fetcher.Donations(ctx, filter)
	if err != nil {
		return fmt.Errorf("report: fetch donations: %w", err)
	}
	rep.Rows = make([]Row, 0, len(items))
	for _, d := range items {
		rep.Rows = append(rep.Rows, NewDonationRow(d))
	}
	return nil
}

func (g *Generator) volunteers(ctx context.Context, filter domain.RecordFilter, rep *Report) error {
	filter.Program = ""
	items, err := g.fetcher.Volunteers(ctx, filter)
	if err != nil {
		return fmt.Errorf("report: fetch volunteers: %w", err)
	}
	rep.Rows = make([]Row, 0, len(items))
	for _, v := range items {
		rep.Rows = append(rep.Rows, NewVolunteerRow(v))
	}
	return nil
}

func (g *Generator) users(ctx context.Context, filter domain.RecordFilter, rep *Report) error {
	items, err := g.fetcher.Users(ctx, filter.DateRange())
	if err != nil {
		return fmt.Errorf("report: fetch users: %w", err)
	}
	rep.Rows = make([]Row, 0, len(items))
	for _, u := range items {
		rep.Rows = append(rep.Rows, NewUserRow(u))
	}
	return nil
}

func (g *Generator) monthlySummary(ctx context.Context, filter domain.RecordFilter, rep *Report) error {
	var (
		donations  []domain.Donation
		volunteers []domain.Volunteer
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		donations, err = g.fetcher.Donations(egCtx, filter)
		if err != nil {
			return fmt.Errorf("report: fetch donations: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		volunteers, err = g.fetcher.Volunteers(egCtx, filter.DateRange())
		if err != nil {
			return fmt.Errorf("report: fetch volunteers: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	byMonth := Aggregate(donations, DonationMonthKey, AmountMeasure)
	volunteersByMonth := Aggregate(volunteers, VolunteerMonthKey)

	months := map[string]struct{}{}
	for k := range byMonth {
		months[k] = struct{}{}
	}
	for k := range volunteersByMonth {
		months[k] = struct{}{}
	}
	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rep.Rows = make([]Row, 0, len(keys))
	for _, month := range keys {
		row := MonthlySummaryRow{Month: month}
		if grp := byMonth[month]; grp != nil {
			row.DonationCount = grp.Count
			row.DonationAmount = grp.Sum(AmountMeasure.Name)
		}
		if grp := volunteersByMonth[month]; grp != nil {
			row.VolunteerCount = grp.Count
		}
		rep.Rows = append(rep.Rows, row)
	}
	return nil
}

// ImpactSummary is the headline block of the impact report.
type ImpactSummary struct {
	TotalRaised        float64 `json:"totalRaised"`
	DonationCount      int     `json:"donationCount"`
	DonorCount         int     `json:"donorCount"`
	VolunteerCount     int     `json:"volunteerCount"`
	ApprovedVolunteers int     `json:"approvedVolunteers"`
	UserCount          int     `json:"userCount"`
	ProgramsSupported  int     `json:"programsSupported"`
}

func (g *Generator) impactReport(ctx context.Context, filter domain.RecordFilter, rep *Report) error {
	donationFilter := filter
	if donationFilter.Status == "" {
		donationFilter.Status = string(domain.DonationStatusCompleted)
	}

	var (
		donations  []domain.Donation
		volunteers []domain.Volunteer
		users      []domain.User
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		donations, err = g.fetcher.Donations(egCtx, donationFilter)
		if err != nil {
			return fmt.Errorf("report: fetch donations: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		volunteers, err = g.fetcher.Volunteers(egCtx, filter.DateRange())
		if err != nil {
			return fmt.Errorf("report: fetch volunteers: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		users, err = g.fetcher.Users(egCtx, filter.DateRange())
		if err != nil {
			return fmt.Errorf("report: fetch users: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	slugs := append(domain.ProgramSlugs(g.programs), OtherProgram)
	if filter.Program != "" {
		slugs = []string{filter.Program}
	}
	byProgram := NewAggregator(ProgramKey, AmountMeasure).Seed(slugs...).Add(donations...).Result()

	rep.Rows = make([]Row, 0, len(byProgram))
	for _, key := range impactOrder(slugs, byProgram) {
		grp := byProgram[key]
		rep.Rows = append(rep.Rows, ProgramImpactRow{
			Program:       key,
			DonationCount: grp.Count,
			TotalAmount:   grp.Sum(AmountMeasure.Name),
			AverageAmount: grp.Average(AmountMeasure.Name),
		})
	}

	summary := ImpactSummary{
		TotalRaised:    byProgram.Sum(AmountMeasure.Name),
		DonationCount:  byProgram.Total(),
		DonorCount:     distinctDonors(donations),
		VolunteerCount: len(volunteers),
		UserCount:      len(users),
	}
	for _, v := range volunteers {
		if v.Status == domain.VolunteerStatusApproved {
			summary.ApprovedVolunteers++
		}
	}
	for _, grp := range byProgram {
		if grp.Count > 0 {
			summary.ProgramsSupported++
		}
	}
	rep.Summary = summary
	return nil
}

// impactOrder lists catalog programs first, in catalog order, then any
// uncatalogued keys alphabetically, and OtherProgram last.
func impactOrder(catalog []string, groups Result) []string {
	order := make([]string, 0, len(groups))
	seen := map[string]struct{}{OtherProgram: {}}
	for _, slug := range catalog {
		if _, done := seen[slug]; done {
			continue
		}
		if _, ok := groups[slug]; ok {
			order = append(order, slug)
			seen[slug] = struct{}{}
		}
	}
	for _, key := range groups.Keys() {
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
	}
	if _, ok := groups[OtherProgram]; ok {
		order = append(order, OtherProgram)
	}
	return order
}

func distinctDonors(donations []domain.Donation) int {
	donors := map[string]struct{}{}
	for _, d := range donations {
		key := strings.ToLower(strings.TrimSpace(d.DonorEmail))
		if key == "" {
			key = "id:" + d.ID
		}
		donors[key] = struct{}{}
	}
	return len(donors)
}
