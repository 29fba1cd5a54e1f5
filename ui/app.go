package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"evidencija/app"
	"evidencija/internal"
	"evidencija/internal/api"
	"evidencija/internal/session"
	"evidencija/ports"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Deps are the services the pages and download endpoints call
type Deps struct {
	Sessions   *session.Service
	Settings   ports.SettingsRepository
	Exports    *app.ExportService
	Travel     *app.TravelService
	Dashboard  *app.DashboardService
	ORSHandler *api.ORSHandler
	Logger     *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	CookieName   string
	SecureCookie bool
	// AccessLog enables chi's request logger
	AccessLog bool
}

// App represents the UI application
type App struct {
	router    *chi.Mux
	templates *template.Template
	deps      Deps
	config    Config
	logger    *internal.Logger
	now       func() time.Time
}

// NewApp creates a new UI application
func NewApp(config Config, deps Deps) (*App, error) {
	if deps.Sessions == nil || deps.Settings == nil || deps.Exports == nil || deps.Travel == nil || deps.Dashboard == nil {
		return nil, fmt.Errorf("ui: missing service dependencies")
	}
	if config.CookieName == "" {
		config.CookieName = "evidencija_session"
	}
	logger := deps.Logger
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		templates: templates,
		deps:      deps,
		config:    config,
		logger:    logger.With("ui"),
		now:       time.Now,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	if a.config.AccessLog {
		a.router.Use(middleware.Logger)
	}
	a.router.Use(middleware.Recoverer)
	a.router.Use(a.loadUser)

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		a.logger.Error("static files unavailable: %v", err)
		return
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	a.router.Get("/login", a.handleLoginPage)
	a.router.Post("/login", a.handleLogin)
	a.router.Post("/logout", a.handleLogout)

	// Pages
	a.router.Group(func(r chi.Router) {
		r.Use(a.requirePageUser)
		r.Get("/dashboard", a.handleDashboard)
		r.Get("/settings", a.handleSettingsPage)
		r.Post("/settings", a.handleSettingsSave)
		r.Get("/extra-hours", a.handleExtraHoursPage)
		r.Get("/travel-expenses", a.handleTravelPage)
	})

	// API endpoints
	a.router.Group(func(r chi.Router) {
		r.Use(a.requireAPIUser)
		r.Post("/api/extra-hours/download", a.handleOvertimeDownload)
		r.Post("/api/travel-expenses/download", a.handleTravelDownload)
		r.Post("/api/travel-expenses", a.handleTravelSave)
		if a.deps.ORSHandler != nil {
			r.Mount("/api/ors", api.NewRouter(a.deps.ORSHandler, a.authorized))
		}
	})
}

// ServeHTTP makes the app usable as an http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Handler returns the root handler
func (a *App) Handler() http.Handler {
	return a.router
}
