package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"donorhub/internal/domain"
	"donorhub/internal/middleware"
	"donorhub/internal/report"
)

const defaultCurrency = "USD"

type donationRequest struct {
	DonorName     string  `json:"donor_name"`
	DonorEmail    string  `json:"donor_email"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Program       string  `json:"program"`
	PaymentMethod string  `json:"payment_method"`
	Message       string  `json:"message"`
	Anonymous     bool    `json:"anonymous"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// DonationsCreate records a pledge from the public donate form. Signed in
// donors are linked to their profile.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if !a.decode(w, r, &req) {
		return
	}
	d := &domain.Donation{
		DonorName:     strings.TrimSpace(req.DonorName),
		DonorEmail:    strings.TrimSpace(req.DonorEmail),
		Amount:        req.Amount,
		Currency:      strings.ToUpper(strings.TrimSpace(req.Currency)),
		Program:       report.NormalizeSlug(req.Program),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Message:       strings.TrimSpace(req.Message),
		Anonymous:     req.Anonymous,
		Country:       middleware.CountryFromContext(r.Context()),
	}
	if d.Currency == "" {
		d.Currency = defaultCurrency
	}
	if len(d.Currency) != 3 {
		a.error(w, http.StatusBadRequest, "bad_request", "currency must be an ISO 4217 code")
		return
	}
	if d.Program != "" && !a.knownProgram(d.Program) {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown program")
		return
	}
	if err := d.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}
	if uid := a.currentUserID(r); uid != "" {
		d.UserID = &uid
	}
	if err := a.Donations.Create(r.Context(), d); err != nil {
		a.fail(w, r, err)
		return
	}
	a.logger(r).Info().Str("donation_id", d.ID).Str("program", d.Program).Msg("donation received")
	a.json(w, http.StatusCreated, report.NewDonationRow(*d))
}

// DonationsMine lists the signed in donor's donations with totals.
func (a *App) DonationsMine(w http.ResponseWriter, r *http.Request) {
	uid := a.currentUserID(r)
	if uid == "" {
		a.fail(w, r, domain.ErrUnauthorized)
		return
	}
	items, err := a.Donations.ListByUser(r.Context(), uid)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	rows := make([]report.DonationRow, 0, len(items))
	for _, d := range items {
		rows = append(rows, report.NewDonationRow(d))
	}
	a.json(w, http.StatusOK, map[string]any{
		"items":  rows,
		"totals": report.SummarizeDonor(items),
	})
}

func (a *App) AdminDonationsList(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items, err := a.Donations.List(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	rows := make([]report.DonationRow, 0, len(items))
	for _, d := range items {
		rows = append(rows, report.NewDonationRow(d))
	}
	a.json(w, http.StatusOK, map[string]any{"items": rows, "count": len(rows)})
}

func (a *App) AdminDonationStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !a.decode(w, r, &req) {
		return
	}
	status := domain.DonationStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		a.fail(w, r, domain.ErrInvalidStatus)
		return
	}
	d, err := a.Donations.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.logger(r).Info().
		Str("donation_id", d.ID).
		Str("status", string(d.Status)).
		Str("admin_id", a.currentUserID(r)).
		Msg("donation status changed")
	a.json(w, http.StatusOK, report.NewDonationRow(*d))
}
