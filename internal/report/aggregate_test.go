package report

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorhub/internal/domain"
)

func sampleDonations() []domain.Donation {
	return []domain.Donation{
		{ID: "d1", Program: "education", Amount: 50, Status: domain.DonationStatusCompleted},
		{ID: "d2", Program: "education", Amount: 30, Status: domain.DonationStatusPending},
		{ID: "d3", Program: "", Amount: 20, Status: domain.DonationStatusCompleted},
	}
}

func TestAggregateGroupsByProgramWithFallback(t *testing.T) {
	got := Aggregate(sampleDonations(), ProgramKey, AmountMeasure)

	require.Len(t, got, 2)
	assert.Equal(t, 2, got["education"].Count)
	assert.Equal(t, 80.0, got["education"].Sum("amount"))
	assert.Equal(t, 1, got[OtherProgram].Count)
	assert.Equal(t, 20.0, got[OtherProgram].Sum("amount"))
}

func TestAggregateCountsEveryRecordOnce(t *testing.T) {
	records := make([]domain.Donation, 0, 200)
	programs := []string{"education", "healthcare", "", "clean-water", "  "}
	for i := 0; i < 200; i++ {
		records = append(records, domain.Donation{
			Program: programs[i%len(programs)],
			Amount:  float64(i),
		})
	}

	got := Aggregate(records, ProgramKey, AmountMeasure)

	assert.Equal(t, len(records), got.Total())
	assert.Equal(t, float64(199*200/2), got.Sum("amount"))
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	records := make([]domain.Donation, 0, 50)
	for i := 0; i < 50; i++ {
		records = append(records, domain.Donation{
			Program: []string{"education", "healthcare", ""}[i%3],
			Amount:  float64(i%7) + 0.25,
		})
	}
	want := Aggregate(records, ProgramKey, AmountMeasure)

	shuffled := append([]domain.Donation(nil), records...)
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	assert.Equal(t, want, Aggregate(shuffled, ProgramKey, AmountMeasure))
}

func TestAggregateNullMeasureContributesZero(t *testing.T) {
	missing := Measure[domain.Donation]{
		Name:  "amount",
		Value: func(domain.Donation) (float64, bool) { return 0, false },
	}

	got := Aggregate(sampleDonations(), ProgramKey, missing)

	require.Contains(t, got, "education")
	assert.Equal(t, 2, got["education"].Count)
	assert.Equal(t, 0.0, got["education"].Sum("amount"))
	assert.Contains(t, got["education"].Sums, "amount")
}

func TestAggregateEmptyInput(t *testing.T) {
	got := Aggregate(nil, ProgramKey, AmountMeasure)

	assert.Empty(t, got)
	assert.Equal(t, 0, got.Total())
	assert.Empty(t, got.Rows("program", "amount"))
}

func TestAggregatorSeedKeepsEmptyCategories(t *testing.T) {
	got := NewAggregator(ProgramKey, AmountMeasure).
		Seed("education", "healthcare").
		Add(sampleDonations()...).
		Result()

	require.Contains(t, got, "healthcare")
	assert.Equal(t, 0, got["healthcare"].Count)
	assert.Equal(t, 0.0, got["healthcare"].Sum("amount"))
	assert.Equal(t, 0.0, got["healthcare"].Average("amount"))
	assert.Equal(t, 2, got["education"].Count)
	assert.Equal(t, 40.0, got["education"].Average("amount"))
	assert.Equal(t, 3, got.Total())
}

func TestResultRowsAreSortedAndOrdered(t *testing.T) {
	got := Aggregate(sampleDonations(), ProgramKey, AmountMeasure).Rows("program", "amount")

	require.Len(t, got, 2)
	assert.Equal(t, []string{"program", "count", "amount"}, got[0].Fields())
	v, _ := got[0].Field("program")
	assert.Equal(t, OtherProgram, v)
	v, _ = got[1].Field("amount")
	assert.Equal(t, 80.0, v)
}

func TestAggregateSkillsExplodesMultiValuedKeys(t *testing.T) {
	volunteers := []domain.Volunteer{
		{ID: "v1", Skills: []string{"Teaching", "first aid"}},
		{ID: "v2", Skills: []string{"teaching", "Teaching"}},
		{ID: "v3"},
	}

	entries := ExplodeSkills(volunteers)
	got := Aggregate(entries, func(e SkillEntry) string { return e.Skill })

	assert.Equal(t, len(entries), got.Total())
	assert.Equal(t, 2, got["teaching"].Count)
	assert.Equal(t, 1, got["first-aid"].Count)
	assert.Equal(t, 1, got[UnspecifiedSkill].Count)
}

func TestAggregateByMonthUsesUTC(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	records := []domain.Donation{
		{Amount: 10, CreatedAt: time.Date(2024, 3, 1, 5, 0, 0, 0, jakarta)},
		{Amount: 15, CreatedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, jakarta)},
	}

	got := Aggregate(records, DonationMonthKey, AmountMeasure)

	assert.Equal(t, 1, got["2024-02"].Count)
	assert.Equal(t, 1, got["2024-03"].Count)
}
