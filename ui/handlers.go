package ui

import (
	"net/http"
	"strings"

	"evidencija/app"
	"evidencija/internal/errors"
	"evidencija/models"
)

// page is the data every template gets
type page struct {
	Title  string
	Active string
	User   *models.User
}

type loginPage struct {
	page
	Email string
	From  string
	Error string
}

type dashboardPage struct {
	page
	View *app.DashboardView
}

type settingsPage struct {
	page
	Settings *models.Settings
	Saved    bool
	Error    string
}

func (a *App) newPage(r *http.Request, title, active string) page {
	return page{Title: title, Active: active, User: userFrom(r.Context())}
}

func (a *App) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	from := safeRedirect(r.URL.Query().Get("from"))
	if userFrom(r.Context()) != nil {
		http.Redirect(w, r, from, http.StatusSeeOther)
		return
	}
	a.renderTemplate(w, http.StatusOK, "login.html", loginPage{page: a.newPage(r, "Prijava", ""), From: from})
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	from := safeRedirect(r.PostForm.Get("from"))

	session, err := a.deps.Sessions.Login(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		status := http.StatusInternalServerError
		message := "Prijava trenutno nije moguća."
		if errors.Is(err, errors.CodeUnauthorized) {
			status = http.StatusUnauthorized
			message = "Neispravan email ili lozinka."
		} else {
			a.logger.Error("login failed: %v", err)
		}
		a.renderTemplate(w, status, "login.html", loginPage{
			page:  a.newPage(r, "Prijava", ""),
			Email: email,
			From:  from,
			Error: message,
		})
		return
	}

	a.setSessionCookie(w, session)
	http.Redirect(w, r, from, http.StatusSeeOther)
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(a.config.CookieName); err == nil {
		if err := a.deps.Sessions.Logout(r.Context(), cookie.Value); err != nil {
			a.logger.Warn("logout: %v", err)
		}
	}
	a.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	view, err := a.deps.Dashboard.Overview(r.Context(), user.ID)
	if err != nil {
		a.logger.Error("dashboard for %s: %v", user.ID, err)
		http.Error(w, "Failed to load dashboard", statusFor(err))
		return
	}
	a.renderTemplate(w, http.StatusOK, "dashboard.html", dashboardPage{
		page: a.newPage(r, "Početna", "dashboard"),
		View: view,
	})
}

func (a *App) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	settings, err := a.deps.Settings.GetSettings(r.Context(), user.ID)
	if errors.Is(err, errors.CodeNotFound) {
		settings, err = &models.Settings{UserID: user.ID, DefaultTransport: models.DefaultTransport}, nil
	}
	if err != nil {
		a.logger.Error("settings for %s: %v", user.ID, err)
		http.Error(w, "Failed to load settings", statusFor(err))
		return
	}
	a.renderTemplate(w, http.StatusOK, "settings.html", settingsPage{
		page:     a.newPage(r, "Postavke", "settings"),
		Settings: settings,
		Saved:    r.URL.Query().Get("saved") == "1",
	})
}

func (a *App) handleSettingsSave(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form", http.StatusBadRequest)
		return
	}
	f := r.PostForm
	settings := &models.Settings{
		UserID:           user.ID,
		FullName:         strings.TrimSpace(f.Get("fullName")),
		OrganisationName: strings.TrimSpace(f.Get("organisationName")),
		HomeAddress:      strings.TrimSpace(f.Get("homeAddress")),
		WorkAddress:      strings.TrimSpace(f.Get("workAddress")),
		DistanceToWork:   models.ParseDecimal(f.Get("distanceToWork")),
		DistanceFromWork: models.ParseDecimal(f.Get("distanceFromWork")),
		PricePerKm:       models.ParseDecimal(f.Get("pricePerKm")),
		DefaultTransport: strings.TrimSpace(f.Get("defaultTransport")),
	}
	if settings.DefaultTransport == "" {
		settings.DefaultTransport = models.DefaultTransport
	}

	if err := a.deps.Settings.UpsertSettings(r.Context(), settings); err != nil {
		a.logger.Error("saving settings for %s: %v", user.ID, err)
		a.renderTemplate(w, statusFor(err), "settings.html", settingsPage{
			page:     a.newPage(r, "Postavke", "settings"),
			Settings: settings,
			Error:    "Spremanje postavki nije uspjelo.",
		})
		return
	}
	http.Redirect(w, r, "/settings?saved=1", http.StatusSeeOther)
}
