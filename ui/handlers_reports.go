package ui

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"evidencija/app"
	"evidencija/domain/calendar"
	"evidencija/domain/report"
	"evidencija/internal/errors"
	"evidencija/models"
)

const maxBodyBytes = 1 << 20

type extraHoursPage struct {
	page
	Month      string
	MonthLabel string
	Days       []calendar.WorkingDay
	Settings   *models.Settings
	Error      string
}

type travelPage struct {
	page
	Month      string
	MonthLabel string
	Rows       []report.TravelRow
	Settings   *models.Settings
	Error      string
}

// monthParam reads ?month=YYYY-MM, falling back to the current month
func (a *App) monthParam(r *http.Request) (time.Time, string) {
	now := a.now()
	if m := strings.TrimSpace(r.URL.Query().Get("month")); m != "" {
		t, err := calendar.ParseMonth(m, now.Location())
		if err != nil {
			return calendar.MonthStart(now), "Neispravan mjesec, prikazan je tekući."
		}
		return t, ""
	}
	return calendar.MonthStart(now), ""
}

func (a *App) handleExtraHoursPage(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	month, monthErr := a.monthParam(r)

	settings, err := a.deps.Settings.GetSettings(r.Context(), user.ID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		a.logger.Error("settings for %s: %v", user.ID, err)
		http.Error(w, "Failed to load settings", statusFor(err))
		return
	}

	a.renderTemplate(w, http.StatusOK, "extra-hours.html", extraHoursPage{
		page:       a.newPage(r, "Prekovremeni sati", "extra-hours"),
		Month:      calendar.MonthKey(month),
		MonthLabel: calendar.MonthLabel(month),
		Days:       calendar.WorkingDays(month),
		Settings:   settings,
		Error:      monthErr,
	})
}

func (a *App) handleTravelPage(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	month, monthErr := a.monthParam(r)

	tm, err := a.deps.Travel.Month(r.Context(), user.ID, month)
	if err != nil {
		a.logger.Error("travel month for %s: %v", user.ID, err)
		http.Error(w, "Failed to load travel expenses", statusFor(err))
		return
	}

	a.renderTemplate(w, http.StatusOK, "travel-expenses.html", travelPage{
		page:       a.newPage(r, "Putni troškovi", "travel-expenses"),
		Month:      calendar.MonthKey(tm.Month),
		MonthLabel: calendar.MonthLabel(tm.Month),
		Rows:       tm.Rows,
		Settings:   tm.Settings,
		Error:      monthErr,
	})
}

func (a *App) handleOvertimeDownload(w http.ResponseWriter, r *http.Request) {
	var req app.OvertimeRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	doc, err := a.deps.Exports.ExportOvertime(r.Context(), userFrom(r.Context()).ID, req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeDocument(w, doc)
}

func (a *App) handleTravelDownload(w http.ResponseWriter, r *http.Request) {
	var req app.TravelRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	doc, err := a.deps.Exports.ExportTravel(r.Context(), userFrom(r.Context()).ID, req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeDocument(w, doc)
}

func (a *App) handleTravelSave(w http.ResponseWriter, r *http.Request) {
	var req app.TravelRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	n, err := a.deps.Travel.Save(r.Context(), userFrom(r.Context()).ID, req.Rows)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"saved": n})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.InvalidInput("invalid JSON body")
	}
	return nil
}
