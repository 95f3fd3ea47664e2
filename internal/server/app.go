// Package server wires the Evento backend together: storage, token issuer,
// authorization gate, services and the REST and gRPC transports. It also
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/obs"
	"github.com/Ouarghii/evento/internal/server/auth"
	"github.com/Ouarghii/evento/internal/server/authz"
	"github.com/Ouarghii/evento/internal/server/config"
	"github.com/Ouarghii/evento/internal/server/notify"
	"github.com/Ouarghii/evento/internal/server/repositories/repomanager"
	"github.com/Ouarghii/evento/internal/server/rest"
	"github.com/Ouarghii/evento/internal/server/services"

	gs "github.com/Ouarghii/evento/internal/server/grpc"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	publisher notify.Publisher
	shutdown  obs.ShutdownFunc

	gate         *authz.Gate
	accounts     *services.AccountService
	contributors *services.ContributorService
	handler      *rest.Handler
}

// openRepositories is a seam for tests.
var openRepositories = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)

	shutdown, err := obs.InitTracer(ctx, "evento", Version, c.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("tracing init error: %w", err)
	}

	rm, db, err := openRepositories(ctx, c.DatabaseDSN)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		_ = shutdown(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var publisher notify.Publisher = notify.NewLogPublisher(logger)
	if c.AMQPURL != "" {
		p, err := notify.NewAMQPPublisher(c.AMQPURL, c.AMQPExchange)
		if err != nil {
			closeDB(db)
			_ = shutdown(ctx)
			return nil, fmt.Errorf("broker init error: %w", err)
		}
		publisher = p
	}

	issuer, err := auth.NewIssuer(c.JWTSecret, c.TokenTTL)
	if err != nil {
		closeDB(db)
		_ = publisher.Close()
		_ = shutdown(ctx)
		return nil, err
	}

	presigner, err := services.NewS3Presigner(ctx, c)
	if err != nil {
		closeDB(db)
		_ = publisher.Close()
		_ = shutdown(ctx)
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	accounts := services.NewAccountService(db, rm, publisher, logger, c.BcryptCost)
	contributors := services.NewContributorService(db, rm, publisher, logger)
	gate := authz.NewGate(issuer, authz.NewResolver(db, rm), logger)

	handler := rest.NewHandler(rest.Deps{
		Gate:         gate,
		Accounts:     accounts,
		Sessions:     services.NewSessionService(accounts, issuer, logger),
		Contributors: contributors,
		Events:       services.NewEventService(db, rm, logger),
		Tickets:      services.NewTicketService(db, rm, logger),
		Media:        services.NewMediaService(presigner, c.S3Bucket, logger),
		CookieSecure: c.CookieSecure,
		CORSOrigins:  c.CORSOrigins,
		Mode:         c.GinMode,
	}, logger)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		publisher:    publisher,
		shutdown:     shutdown,
		gate:         gate,
		accounts:     accounts,
		contributors: contributors,
		handler:      handler,
	}, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// SeedAdmin creates the bootstrap admin from config unless one with that
// email already exists.
func (app *App) SeedAdmin(ctx context.Context) error {
	if app.config.AdminPassword == "" {
		return config.ErrMissingAdminPassword
	}
	if err := app.accounts.SeedAdmin(ctx, app.config.AdminName, app.config.AdminEmail, app.config.AdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	app.logger.Info(ctx, "Bootstrap admin ready", "email", app.config.AdminEmail)
	return nil
}

// Close releases the database, the broker connection and the tracer.
func (app *App) Close() {
	ctx := context.Background()
	if err := app.publisher.Close(); err != nil {
		app.logger.Error(ctx, "closing publisher", "error", err)
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing database", "error", err)
		}
	}
	if err := app.shutdown(ctx); err != nil {
		app.logger.Error(ctx, "shutting down tracer", "error", err)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewHTTPServer(app.config.HTTPAddr, app.handler.Router(), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.gate, app.contributors)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both transports until ctx is cancelled, a signal arrives or
// either server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "version", Version)

	if err := app.SeedAdmin(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
