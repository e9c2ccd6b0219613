package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/investx-portal/internal/cache"
	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/config"
	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/bobmcallan/investx-portal/internal/handlers"
	"github.com/bobmcallan/investx-portal/internal/interfaces"
	"github.com/bobmcallan/investx-portal/internal/mcp"
	"github.com/bobmcallan/investx-portal/internal/seed"
	"github.com/bobmcallan/investx-portal/internal/session"
	"github.com/bobmcallan/investx-portal/internal/storage"
)

// sessionJanitorInterval is how often expired sessions are purged.
const sessionJanitorInterval = 10 * time.Minute

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Storage   interfaces.StorageManager
	Sessions  *session.Manager
	Cache     *cache.ResponseCache
	Client    *client.InvestXClient
	Formatter *format.Formatter
	Renderer  *handlers.Renderer

	// HTTP handlers
	HealthHandler      *handlers.HealthHandler
	VersionHandler     *handlers.VersionHandler
	ReturnsHandler     *handlers.ReturnsHandler
	AuthHandler        *handlers.AuthHandler
	DashboardHandler   *handlers.DashboardHandler
	ProductsHandler    *handlers.ProductsHandler
	InvestmentsHandler *handlers.InvestmentsHandler
	MCPHandler         *mcp.Handler

	stopSeed context.CancelFunc
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("Running in dev mode")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("Unrecognized environment value, defaulting to prod behavior")
	}

	store, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.Storage = store

	a.Sessions = session.NewManager(store.SessionStorage(), cfg.Auth.JWTSecret, cfg.SessionTTL(), logger)
	a.Sessions.StartJanitor(sessionJanitorInterval)

	a.Cache = cache.New(cfg.CacheTTL(), cfg.Cache.MaxEntries)
	a.Client = client.NewInvestXClient(cfg.API.URL, cfg.APITimeout(), a.Cache, logger)
	a.Formatter = format.New(cfg.Display.Currency, cfg.Display.Grouping)

	a.initHandlers()

	if cfg.IsDevMode() {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopSeed = cancel
		go seed.DemoUsers(ctx, a.Client, logger)
	}

	logger.Info().
		Str("api_url", a.Client.BaseURL()).
		Str("currency", a.Formatter.CurrencyCode()).
		Msg("Application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	secure := a.Config.Auth.CookieSecure

	a.Renderer = handlers.NewRenderer(a.Logger, a.Formatter, a.Config.IsDevMode())
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger, a.Client)
	a.ReturnsHandler = handlers.NewReturnsHandler(a.Logger, a.Formatter)

	a.AuthHandler = handlers.NewAuthHandler(a.Logger, a.Renderer, a.Client, a.Sessions, secure)
	a.DashboardHandler = handlers.NewDashboardHandler(a.Logger, a.Renderer, a.Client, a.Sessions, secure)
	a.ProductsHandler = handlers.NewProductsHandler(a.Logger, a.Renderer, a.Client, a.Sessions, secure)
	a.InvestmentsHandler = handlers.NewInvestmentsHandler(a.Logger, a.Renderer, a.Client, a.Sessions, secure)

	a.MCPHandler = mcp.NewHandler(a.Client, a.Formatter, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close stops background work and closes storage.
func (a *App) Close() error {
	if a.stopSeed != nil {
		a.stopSeed()
	}
	var errs []error
	if a.Sessions != nil {
		errs = append(errs, a.Sessions.Close())
	}
	if a.Storage != nil {
		errs = append(errs, a.Storage.Close())
	}
	return errors.Join(errs...)
}
