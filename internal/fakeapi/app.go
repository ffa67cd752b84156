// Package fakeapi is an in-memory development backend implementing the REST
// surface the request desk client talks to. It is used by tests and for
// local demos; it enforces nothing beyond required fields.
package fakeapi

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/requestdesk/internal/clock"
	"github.com/dmitrijs2005/requestdesk/internal/logging"
)

type App struct {
	config *Config
	logger logging.Logger
	store  *Store
}

func NewApp(c *Config) *App {
	logger := logging.New(logging.Config{Format: c.LogFormat, Level: c.LogLevel})
	return &App{config: c, logger: logger, store: NewStore(clock.Real(), DefaultUsers)}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting fake API...", "users", len(DefaultUsers))
	for _, u := range DefaultUsers {
		app.logger.Info(ctx, "seeded user", "email", u.Email, "role", u.Role)
	}

	app.initSignalHandler(cancelFunc)

	h := NewRouter(app.store, app.config.APIPrefix, app.logger)
	return NewServer(app.config.Addr, h, app.logger).Run(ctx)
}
