package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"donorhub/internal/domain"
	"donorhub/internal/report"
)

type volunteerRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Skills       []string `json:"skills"`
	Availability string   `json:"availability"`
	Message      string   `json:"message"`
}

// VolunteersCreate records an application from the get-involved form.
func (a *App) VolunteersCreate(w http.ResponseWriter, r *http.Request) {
	var req volunteerRequest
	if !a.decode(w, r, &req) {
		return
	}
	skills := make([]string, 0, len(req.Skills))
	for _, s := range req.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	v := &domain.Volunteer{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Skills:       skills,
		Availability: strings.TrimSpace(req.Availability),
		Message:      strings.TrimSpace(req.Message),
	}
	if err := v.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}
	if uid := a.currentUserID(r); uid != "" {
		v.UserID = &uid
	}
	if err := a.Volunteers.Create(r.Context(), v); err != nil {
		a.fail(w, r, err)
		return
	}
	a.logger(r).Info().Str("volunteer_id", v.ID).Msg("volunteer application received")
	a.json(w, http.StatusCreated, report.NewVolunteerRow(*v))
}

func (a *App) AdminVolunteersList(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items, err := a.Volunteers.List(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	rows := make([]report.VolunteerRow, 0, len(items))
	for _, v := range items {
		rows = append(rows, report.NewVolunteerRow(v))
	}
	a.json(w, http.StatusOK, map[string]any{"items": rows, "count": len(rows)})
}

func (a *App) AdminVolunteerStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !a.decode(w, r, &req) {
		return
	}
	status := domain.VolunteerStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		a.fail(w, r, domain.ErrInvalidStatus)
		return
	}
	v, err := a.Volunteers.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.logger(r).Info().
		Str("volunteer_id", v.ID).
		Str("status", string(v.Status)).
		Str("admin_id", a.currentUserID(r)).
		Msg("volunteer status changed")
	a.json(w, http.StatusOK, report.NewVolunteerRow(*v))
}
