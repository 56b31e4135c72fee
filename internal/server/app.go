// Package server wires the development authentication API: it picks the
// account store, runs migrations, and serves the gin router until a shutdown
// signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/mybestvenue/internal/logging"
	"github.com/dmitrijs2005/mybestvenue/internal/server/config"
	"github.com/dmitrijs2005/mybestvenue/internal/server/httpapi"
	"github.com/dmitrijs2005/mybestvenue/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mybestvenue/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	accountService *services.AccountService
	server         *httpapi.Server
}

// openStore selects Postgres when a DSN is configured, the in-memory manager otherwise.
var openStore = func(ctx context.Context, cfg *config.Config, logger logging.Logger) (*sql.DB, repomanager.RepositoryManager, error) {
	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, accounts are kept in memory")
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return db, rm, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, level))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, rm, err := openStore(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	as := services.NewAccountService(db, rm, c, logger)
	router := httpapi.NewRouter(httpapi.Options{
		Accounts:      as,
		Logger:        logger,
		AllowedOrigin: c.AllowedOrigin,
	})

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		accountService: as,
		server:         httpapi.NewServer(c.ListenAddr, router, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a shutdown signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "close database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}

func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
