package handlers

import (
	"net/http"

	"donorhub/internal/middleware"
)

type programItem struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ProgramsList serves the catalog with names in the negotiated locale.
func (a *App) ProgramsList(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	items := make([]programItem, 0, len(a.Programs))
	for _, p := range a.Programs {
		items = append(items, programItem{Slug: p.Slug, Name: p.DisplayName(locale)})
	}
	w.Header().Set("Vary", "Accept-Language, X-Locale")
	a.json(w, http.StatusOK, map[string]any{"locale": locale, "items": items})
}

func (a *App) knownProgram(slug string) bool {
	for _, p := range a.Programs {
		if p.Slug == slug {
			return true
		}
	}
	return false
}
