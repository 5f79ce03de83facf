package handlers

import (
	"net/http"

	"donorhub/internal/domain"
	"donorhub/internal/report"
)

// Me returns the signed in user's profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.fail(w, r, domain.ErrUnauthorized)
		return
	}
	u, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, report.NewUserRow(*u))
}
