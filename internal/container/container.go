package container

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/jmoiron/sqlx"

	"evidencija/adapters/excel"
	"evidencija/adapters/ors"
	"evidencija/adapters/postgres"
	"evidencija/app"
	"evidencija/internal"
	"evidencija/internal/api"
	"evidencija/internal/config"
	"evidencija/internal/session"
	"evidencija/ports"
	"evidencija/templates"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB        *sqlx.DB
	Templates *excel.TemplateStore
	ORS       *ors.Client

	// Repositories (data access layer)
	UserRepo     ports.UserRepository
	SessionRepo  ports.SessionRepository
	SettingsRepo ports.SettingsRepository
	TravelRepo   ports.TravelExpenseRepository

	// Services
	Sessions  *session.Service
	Exports   *app.ExportService
	Travel    *app.TravelService
	Dashboard *app.DashboardService

	// JSON API handlers
	ORSHandler *api.ORSHandler

	pruner *session.Pruner
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	c.ORS = ors.NewClient(ors.Config{
		APIKey:  cfg.ORS.APIKey,
		BaseURL: cfg.ORS.BaseURL,
		Country: cfg.ORS.Country,
		Timeout: cfg.ORS.Timeout,
	})
	if !c.ORS.Configured() {
		logger.Warn("ORS_API_KEY not set, geocoding and routing are disabled")
	}
	c.ORSHandler = api.NewORSHandler(c.ORS, logger)

	return c, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.initRepositories()

	if err := c.initServices(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	c.Logger.Info("container initialized with %s database", db.DriverName())
	return nil
}

// templateFS returns the template directory override or the embedded templates
func (c *Container) templateFS() fs.FS {
	if dir := c.Config.Templates.Dir; dir != "" {
		return os.DirFS(dir)
	}
	return templates.FS
}

func (c *Container) initTemplates() error {
	store, err := excel.NewTemplateStore(c.templateFS(), templates.Honorari, templates.Prijevoz)
	if err != nil {
		return err
	}
	c.Templates = store
	return nil
}

// initRepositories initializes data access repositories
func (c *Container) initRepositories() {
	c.UserRepo = postgres.NewUserRepository(c.DB)
	c.SessionRepo = postgres.NewSessionRepository(c.DB)
	c.SettingsRepo = postgres.NewSettingsRepository(c.DB)
	c.TravelRepo = postgres.NewTravelExpenseRepository(c.DB)
}

func (c *Container) initServices() error {
	c.Sessions = session.NewService(c.UserRepo, c.SessionRepo, c.Config.Session.TTL, c.Logger)

	exports, err := app.NewExportService(c.Templates, c.SettingsRepo, c.Logger)
	if err != nil {
		return err
	}
	c.Exports = exports
	c.Travel = app.NewTravelService(c.SettingsRepo, c.TravelRepo, c.Logger)

	var geocoder ports.Geocoder
	if c.ORS.Configured() {
		geocoder = c.ORS
	}
	c.Dashboard = app.NewDashboardService(c.SettingsRepo, geocoder, c.Logger)
	return nil
}

// StartBackground starts the scheduled session pruning
func (c *Container) StartBackground() error {
	if c.Sessions == nil {
		return fmt.Errorf("sessions not initialized")
	}
	pruner, err := session.StartPruner(c.Sessions, c.Config.Session.PruneSpec, c.Logger)
	if err != nil {
		return err
	}
	c.pruner = pruner
	c.Logger.Info("sessions last %s, pruned on %q", c.Sessions.TTL(), c.Config.Session.PruneSpec)
	return nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.pruner != nil {
		c.pruner.Stop()
	}

	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
