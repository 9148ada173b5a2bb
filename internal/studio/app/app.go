package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/trackroomhq/trackroom/internal/studio/http"
	"github.com/trackroomhq/trackroom/internal/studio/notification"
	"github.com/trackroomhq/trackroom/internal/studio/service"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/internal/studio/store/drivers/sqlite"
	"github.com/trackroomhq/trackroom/pkg/cryptox"
	"github.com/trackroomhq/trackroom/pkg/httpx"
	"github.com/trackroomhq/trackroom/pkg/jwtx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	minSessionSecretLen = 32
)

// Application encapsulates the studio service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   *jwtx.Signer
	notifier service.Notifier

	// Services
	identityService     *service.IdentityService
	accessService       *service.AccessService
	studioService       *service.StudioService
	membershipService   *service.MembershipService
	inviteService       *service.InviteService
	inviteLinkService   *service.InviteLinkService
	scheduleService     *service.ScheduleService
	gearService         *service.GearService
	invoiceService      *service.InvoiceService
	mfaService          *service.MFAService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "studio-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for token hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initSigner(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initNotifier()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("studio service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down studio service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("studio service stopped")
	return nil
}

// initSigner validates the session secret and builds the token signer. In
// prod a short or missing secret is fatal; elsewhere an ephemeral secret is
// generated so sessions simply do not survive restarts.
func (app *Application) initSigner() error {
	secret := app.cfg.SessionSecret
	if len(secret) < minSessionSecretLen {
		if app.cfg.Env == "prod" {
			return fmt.Errorf("SESSION_SECRET must be at least %d bytes in prod", minSessionSecretLen)
		}
		app.logger.Warn("SESSION_SECRET missing or too short; using an ephemeral secret, sessions will not survive restarts")
		secret = cryptox.MustGenerateToken(cryptox.TokenSize256)
	}

	signer, err := jwtx.NewSigner([]byte(secret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.signer = signer
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initNotifier picks the delivery mechanism for login links and invitations.
// Without an SMTP host outside prod, tokens go to the log.
func (app *Application) initNotifier() {
	if app.cfg.SMTPHost != "" {
		app.notifier = notification.NewEmailNotifier(notification.EmailConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			User:     app.cfg.SMTPUser,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.SMTPFrom,
			FromName: app.cfg.SMTPFromName,
			BaseURL:  app.cfg.BaseURL,
		})
		return
	}

	if app.cfg.Env == "prod" {
		app.logger.Warn("no SMTP host configured in prod; login links will only appear in logs")
	}
	app.notifier = &notification.LogNotifier{Logger: app.logger}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.identityService = &service.IdentityService{
		Store:    app.db,
		Notifier: app.notifier,
		LoginTTL: app.cfg.LoginTokenTTL,
	}
	app.inviteService = &service.InviteService{
		Store:     app.db,
		Notifier:  app.notifier,
		InviteTTL: app.cfg.InviteTTL,
	}
	app.accessService = &service.AccessService{
		Store:   app.db,
		Invites: app.inviteService,
	}
	app.studioService = &service.StudioService{Store: app.db}
	app.membershipService = &service.MembershipService{Store: app.db}
	app.inviteLinkService = &service.InviteLinkService{Store: app.db}
	app.scheduleService = &service.ScheduleService{Store: app.db}
	app.gearService = &service.GearService{Store: app.db}
	app.invoiceService = &service.InvoiceService{Store: app.db}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	cookies := httpx.DefaultCookieConfig()
	cookies.Domain = app.cfg.CookieDomain
	if app.cfg.Env == "prod" {
		cookies.Secure = true
	}

	router := httpapi.NewRouter(
		app.signer,
		cookies,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.IdentityService = app.identityService
	router.AccessService = app.accessService
	router.StudioService = app.studioService
	router.MembershipService = app.membershipService
	router.InviteService = app.inviteService
	router.InviteLinkService = app.inviteLinkService
	router.ScheduleService = app.scheduleService
	router.GearService = app.gearService
	router.InvoiceService = app.invoiceService
	router.MFAService = app.mfaService
	router.ExposeDebugToken = app.cfg.Env != "prod"
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
