package report

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorhub/internal/domain"
)

type fakeFetcher struct {
	mu         sync.Mutex
	donations  []domain.Donation
	volunteers []domain.Volunteer
	users      []domain.User
	err        error
	calls      []string
	filters    map[string]domain.RecordFilter
}

func (f *fakeFetcher) record(name string, filter domain.RecordFilter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.filters == nil {
		f.filters = map[string]domain.RecordFilter{}
	}
	f.filters[name] = filter
}

func (f *fakeFetcher) Donations(_ context.Context, filter domain.RecordFilter) ([]domain.Donation, error) {
	f.record("donations", filter)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Donation, 0, len(f.donations))
	for _, d := range f.donations {
		if filter.Status != "" && string(d.Status) != filter.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeFetcher) Volunteers(_ context.Context, filter domain.RecordFilter) ([]domain.Volunteer, error) {
	f.record("volunteers", filter)
	return f.volunteers, nil
}

func (f *fakeFetcher) Users(_ context.Context, filter domain.RecordFilter) ([]domain.User, error) {
	f.record("users", filter)
	return f.users, nil
}

var fixedNow = time.Date(2024, 7, 4, 15, 0, 0, 0, time.UTC)

func newTestGenerator(f *fakeFetcher) *Generator {
	return NewGenerator(f, domain.DefaultPrograms, zerolog.Nop()).WithClock(func() time.Time { return fixedNow })
}

func seededFetcher() *fakeFetcher {
	feb := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	return &fakeFetcher{
		donations: []domain.Donation{
			{ID: "d1", DonorEmail: "ana@example.org", Program: "education", Amount: 50, Status: domain.DonationStatusCompleted, CreatedAt: feb},
			{ID: "d2", DonorEmail: "ANA@example.org", Program: "Education", Amount: 30, Status: domain.DonationStatusCompleted, CreatedAt: mar},
			{ID: "d3", DonorEmail: "budi@example.org", Amount: 20, Status: domain.DonationStatusCompleted, CreatedAt: mar},
			{ID: "d4", DonorEmail: "citra@example.org", Program: "healthcare", Amount: 99, Status: domain.DonationStatusPending, CreatedAt: mar},
		},
		volunteers: []domain.Volunteer{
			{ID: "v1", Skills: []string{"teaching"}, Status: domain.VolunteerStatusApproved, CreatedAt: feb},
			{ID: "v2", Status: domain.VolunteerStatusPending, CreatedAt: feb},
		},
		users: []domain.User{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}},
	}
}

func TestGeneratorUnknownTypeFetchesNothing(t *testing.T) {
	f := seededFetcher()

	_, err := newTestGenerator(f).Render(context.Background(), Request{Type: "payouts"})

	require.ErrorIs(t, err, ErrUnknownType)
	assert.Empty(t, f.calls)
}

func TestGeneratorUnknownFormat(t *testing.T) {
	f := seededFetcher()

	_, err := newTestGenerator(f).Render(context.Background(), Request{Type: TypeDonations, Format: "xlsx"})

	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Empty(t, f.calls)
}

func TestGeneratorInvalidFilter(t *testing.T) {
	f := seededFetcher()

	_, err := newTestGenerator(f).Build(context.Background(), TypeDonations, Filters{StartDate: "yesterday"})

	require.ErrorIs(t, err, ErrInvalidFilter)
	assert.Empty(t, f.calls)
}

func TestGeneratorPropagatesFetchError(t *testing.T) {
	boom := errors.New("connection reset")
	f := seededFetcher()
	f.err = boom

	for _, typ := range []Type{TypeDonations, TypeMonthlySummary, TypeImpactReport} {
		_, err := newTestGenerator(f).Render(context.Background(), Request{Type: typ, Format: FormatCSV})
		require.ErrorIs(t, err, boom, typ)
	}
}

func TestGeneratorDonationsCSV(t *testing.T) {
	f := seededFetcher()

	out, err := newTestGenerator(f).Render(context.Background(), Request{
		Type:    TypeDonations,
		Format:  FormatCSV,
		Filters: Filters{StartDate: "2024-02-01", EndDate: "2024-02-29", Program: "Education"},
	})

	require.NoError(t, err)
	assert.Equal(t, "donations-report-2024-07-04.csv", out.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", out.ContentType)
	assert.Equal(t, 4, out.Rows)
	lines := strings.Split(string(out.Body), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[1], `"d1","",`))

	filter := f.filters["donations"]
	require.NotNil(t, filter.CreatedAfter)
	require.NotNil(t, filter.CreatedBefore)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *filter.CreatedAfter)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *filter.CreatedBefore)
	assert.Equal(t, "education", filter.Program)
}

func TestGeneratorEmptyCSVIsEmpty(t *testing.T) {
	out, err := newTestGenerator(&fakeFetcher{}).Render(context.Background(), Request{Type: TypeUsers, Format: FormatCSV})

	require.NoError(t, err)
	assert.Empty(t, out.Body)
	assert.Equal(t, 0, out.Rows)
}

func TestGeneratorJSONDocument(t *testing.T) {
	out, err := newTestGenerator(seededFetcher()).Render(context.Background(), Request{
		Type:    TypeVolunteers,
		Filters: Filters{Status: "approved"},
	})

	require.NoError(t, err)
	assert.Equal(t, "application/json", out.ContentType)
	var doc struct {
		Data        []map[string]any `json:"data"`
		Filename    string           `json:"filename"`
		Type        string           `json:"type"`
		GeneratedAt time.Time        `json:"generatedAt"`
		Filters     map[string]any   `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(out.Body, &doc))
	assert.Len(t, doc.Data, 2)
	assert.Equal(t, "volunteers-report-2024-07-04.json", doc.Filename)
	assert.Equal(t, "volunteers", doc.Type)
	assert.True(t, fixedNow.Equal(doc.GeneratedAt))
	assert.Equal(t, "approved", doc.Filters["status"])
	assert.Equal(t, []any{"teaching"}, doc.Data[0]["skills"])
	assert.Equal(t, []any{}, doc.Data[1]["skills"])
}

func TestGeneratorMonthlySummary(t *testing.T) {
	f := seededFetcher()

	rep, err := newTestGenerator(f).Build(context.Background(), TypeMonthlySummary, Filters{Status: "completed"})

	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, MonthlySummaryRow{Month: "2024-02", DonationCount: 1, DonationAmount: 50, VolunteerCount: 2}, rep.Rows[0])
	assert.Equal(t, MonthlySummaryRow{Month: "2024-03", DonationCount: 2, DonationAmount: 50, VolunteerCount: 0}, rep.Rows[1])
	assert.Equal(t, "", f.filters["volunteers"].Status)
	assert.ElementsMatch(t, []string{"donations", "volunteers"}, f.calls)
}

func TestGeneratorImpactReport(t *testing.T) {
	f := seededFetcher()

	rep, err := newTestGenerator(f).Build(context.Background(), TypeImpactReport, Filters{})

	require.NoError(t, err)
	assert.Equal(t, "completed", f.filters["donations"].Status)
	require.Len(t, rep.Rows, len(domain.DefaultPrograms)+1)
	assert.Equal(t, ProgramImpactRow{Program: "education", DonationCount: 2, TotalAmount: 80, AverageAmount: 40}, rep.Rows[0])
	assert.Equal(t, ProgramImpactRow{Program: "healthcare"}, rep.Rows[1])
	assert.Equal(t, ProgramImpactRow{Program: OtherProgram, DonationCount: 1, TotalAmount: 20, AverageAmount: 20}, rep.Rows[len(rep.Rows)-1])

	summary, ok := rep.Summary.(ImpactSummary)
	require.True(t, ok)
	assert.Equal(t, ImpactSummary{
		TotalRaised:        100,
		DonationCount:      3,
		DonorCount:         2,
		VolunteerCount:     2,
		ApprovedVolunteers: 1,
		UserCount:          3,
		ProgramsSupported:  2,
	}, summary)
}

func TestGeneratorImpactReportAlwaysHasOther(t *testing.T) {
	f := seededFetcher()

	rep, err := newTestGenerator(f).Build(context.Background(), TypeImpactReport, Filters{Status: "pending"})

	require.NoError(t, err)
	require.Len(t, rep.Rows, len(domain.DefaultPrograms)+1)
	assert.Equal(t, ProgramImpactRow{Program: "healthcare", DonationCount: 1, TotalAmount: 99, AverageAmount: 99}, rep.Rows[1])
	assert.Equal(t, ProgramImpactRow{Program: OtherProgram}, rep.Rows[len(rep.Rows)-1])
	assert.Equal(t, 1, rep.Summary.(ImpactSummary).ProgramsSupported)
}

func TestGeneratorImpactReportProgramFilter(t *testing.T) {
	f := &fakeFetcher{donations: seededFetcher().donations[:2]}

	rep, err := newTestGenerator(f).Build(context.Background(), TypeImpactReport, Filters{Program: "Education"})

	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, ProgramImpactRow{Program: "education", DonationCount: 2, TotalAmount: 80, AverageAmount: 40}, rep.Rows[0])
}

func TestFiltersRecordFilter(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		wantErr bool
	}{
		{name: "empty", filters: Filters{}},
		{name: "rfc3339", filters: Filters{StartDate: "2024-01-01T00:00:00Z", EndDate: "2024-01-31T12:00:00+07:00"}},
		{name: "bad start", filters: Filters{StartDate: "01/02/2024"}, wantErr: true},
		{name: "inverted", filters: Filters{StartDate: "2024-02-01", EndDate: "2024-01-01"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.filters.RecordFilter()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilter)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types {
		got, err := ParseType(strings.ToUpper(string(typ)))
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("")
	assert.ErrorIs(t, err, ErrUnknownType)
}
