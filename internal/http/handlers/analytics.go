package handlers

import (
	"net/http"

	"donorhub/internal/report"
)

// AdminDonationAnalytics folds the filtered donations into dashboard totals.
// The list limit does not apply.
func (a *App) AdminDonationAnalytics(w http.ResponseWriter, r *http.Request) {
	filter, err := reportFilters(r.URL.Query()).RecordFilter()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items, err := a.Donations.List(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, report.AnalyzeDonations(items))
}

func (a *App) AdminVolunteerAnalytics(w http.ResponseWriter, r *http.Request) {
	filter, err := reportFilters(r.URL.Query()).RecordFilter()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	filter.Program = ""
	items, err := a.Volunteers.List(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, report.AnalyzeVolunteers(items))
}
