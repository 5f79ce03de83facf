package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"donorhub/internal/archive"
	"donorhub/internal/report"
)

// ReportGet renders /admin/reports/{type}?format=&start_date=&end_date=&program=&status=.
func (a *App) ReportGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.writeReport(w, r, report.Request{
		Type:    report.Type(chi.URLParam(r, "type")),
		Format:  report.Format(q.Get("format")),
		Filters: reportFilters(q),
	})
}

// ReportPost renders a report described by a {reportType, format, filters} body.
func (a *App) ReportPost(w http.ResponseWriter, r *http.Request) {
	var req report.Request
	if !a.decode(w, r, &req) {
		return
	}
	a.writeReport(w, r, req)
}

func (a *App) writeReport(w http.ResponseWriter, r *http.Request, req report.Request) {
	out, err := a.Reports.Render(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	if out.ContentType != "application/json" {
		w.Header().Set("Content-Disposition", attachment(out.Filename))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Body)
}

// ReportBundle streams every report as CSV inside one zip.
func (a *App) ReportBundle(w http.ResponseWriter, r *http.Request) {
	filters := reportFilters(r.URL.Query())
	at := a.now()
	data, err := archive.Bundle(r.Context(), a.Reports, filters, at)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", attachment(archive.BundleFilename(at)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ReportArchive renders a report as CSV and stores it in the archive.
func (a *App) ReportArchive(w http.ResponseWriter, r *http.Request) {
	if a.Archiver == nil {
		a.error(w, http.StatusServiceUnavailable, "archive_unavailable", "report archive is not configured")
		return
	}
	t, err := report.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	res, err := a.Archiver.ArchiveReport(r.Context(), t, reportFilters(r.URL.Query()))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, res)
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
