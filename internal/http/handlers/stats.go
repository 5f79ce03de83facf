package handlers

import (
	"net/http"

	"donorhub/internal/report"
)

// ImpactStats serves the public impact numbers shown on the about and
// programs pages. Only completed donations count.
func (a *App) ImpactStats(w http.ResponseWriter, r *http.Request) {
	rep, err := a.Reports.Build(r.Context(), report.TypeImpactReport, report.Filters{})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	a.json(w, http.StatusOK, map[string]any{
		"summary":     rep.Summary,
		"programs":    rep.Rows,
		"generatedAt": rep.GeneratedAt,
	})
}
