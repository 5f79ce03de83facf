package report

import "donorhub/internal/domain"

// DonationAnalytics backs the admin donation dashboard.
type DonationAnalytics struct {
	TotalCount      int     `json:"total_count"`
	TotalAmount     float64 `json:"total_amount"`
	CompletedAmount float64 `json:"completed_amount"`
	AverageAmount   float64 `json:"average_amount"`
	ByProgram       []Row   `json:"by_program"`
	ByStatus        []Row   `json:"by_status"`
	Monthly         []Row   `json:"monthly"`
}

// AnalyzeDonations folds donations into totals and per program, status and
// month breakdowns.
func AnalyzeDonations(donations []domain.Donation) DonationAnalytics {
	byProgram := Aggregate(donations, ProgramKey, AmountMeasure)
	byStatus := Aggregate(donations, DonationStatusKey, AmountMeasure)
	monthly := Aggregate(donations, DonationMonthKey, AmountMeasure)

	out := DonationAnalytics{
		TotalCount:      byStatus.Total(),
		TotalAmount:     byStatus.Sum(AmountMeasure.Name),
		CompletedAmount: byStatus[string(domain.DonationStatusCompleted)].Sum(AmountMeasure.Name),
		ByProgram:       byProgram.Rows("program", AmountMeasure.Name),
		ByStatus:        byStatus.Rows("status", AmountMeasure.Name),
		Monthly:         monthly.Rows("month", AmountMeasure.Name),
	}
	if out.TotalCount > 0 {
		out.AverageAmount = out.TotalAmount / float64(out.TotalCount)
	}
	return out
}

// VolunteerAnalytics backs the admin volunteer dashboard.
type VolunteerAnalytics struct {
	TotalCount int   `json:"total_count"`
	ByStatus   []Row `json:"by_status"`
	BySkill    []Row `json:"by_skill"`
	Monthly    []Row `json:"monthly"`
}

// AnalyzeVolunteers folds volunteers into per status, skill and month counts.
// A volunteer listing several skills counts once under each skill.
func AnalyzeVolunteers(volunteers []domain.Volunteer) VolunteerAnalytics {
	byStatus := Aggregate(volunteers, VolunteerStatusKey)
	bySkill := Aggregate(ExplodeSkills(volunteers), func(e SkillEntry) string { return e.Skill })
	monthly := Aggregate(volunteers, VolunteerMonthKey)

	return VolunteerAnalytics{
		TotalCount: byStatus.Total(),
		ByStatus:   byStatus.Rows("status"),
		BySkill:    bySkill.Rows("skill"),
		Monthly:    monthly.Rows("month"),
	}
}

// DonorTotals summarizes one donor's history for the dashboard.
type DonorTotals struct {
	DonationCount   int      `json:"donation_count"`
	TotalPledged    float64  `json:"total_pledged"`
	CompletedAmount float64  `json:"completed_amount"`
	Programs        []string `json:"programs"`
}

// SummarizeDonor totals a donor's donations. Programs lists only programs
// that received a completed donation.
func SummarizeDonor(donations []domain.Donation) DonorTotals {
	byStatus := Aggregate(donations, DonationStatusKey, AmountMeasure)
	completed := make([]domain.Donation, 0, len(donations))
	for _, d := range donations {
		if d.Status == domain.DonationStatusCompleted {
			completed = append(completed, d)
		}
	}
	programs := Aggregate(completed, ProgramKey).Keys()
	return DonorTotals{
		DonationCount:   byStatus.Total(),
		TotalPledged:    byStatus.Sum(AmountMeasure.Name),
		CompletedAmount: byStatus[string(domain.DonationStatusCompleted)].Sum(AmountMeasure.Name),
		Programs:        programs,
	}
}
