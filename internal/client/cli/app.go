package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/dmitrijs2005/requestdesk/internal/client/client"
	"github.com/dmitrijs2005/requestdesk/internal/client/config"
	"github.com/dmitrijs2005/requestdesk/internal/client/poller"
	"github.com/dmitrijs2005/requestdesk/internal/client/screens"
	"github.com/dmitrijs2005/requestdesk/internal/client/services"
	"github.com/dmitrijs2005/requestdesk/internal/client/state"
	"github.com/dmitrijs2005/requestdesk/internal/client/storage"
	"github.com/dmitrijs2005/requestdesk/internal/clock"
	"github.com/dmitrijs2005/requestdesk/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db          *sql.DB
	profiles    *storage.ProfileStore
	store       *state.Store
	authService services.AuthService
	nav         *Navigator
	unpersist   func()

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.Mutex
	mode   Mode
	// dirty is set when background work changed the current screen since
	// it was last shown.
	dirty atomic.Bool
}

// NewApp opens the local database, restores the persisted identity and
// profile and wires the gateway, the services and the navigator.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(logging.Config{Format: c.LogFormat, Level: c.LogLevel})

	db, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DBPath, "err", err)
		return nil, err
	}

	profiles := storage.NewProfileStore(db, logger)
	if n, err := profiles.Upgrade(ctx); err != nil {
		logger.Warn(ctx, "profile upgrade failed", "err", err)
	} else if n > 0 {
		logger.Info(ctx, "profile upgraded", "keys", n)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.APIPrefix, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := state.NewStore(state.State{})
	state.Rehydrate(ctx, store, profiles)
	unpersist := state.PersistTo(context.WithoutCancel(ctx), store, profiles)

	a := &App{
		config:      c,
		logger:      logger,
		db:          db,
		profiles:    profiles,
		store:       store,
		authService: services.NewAuthService(apiClient, store, logger),
		unpersist:   unpersist,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	a.nav = NewNavigator(screens.Deps{
		Client:       apiClient,
		Store:        store,
		Auth:         a.authService,
		Settings:     services.NewSettingsService(apiClient, store, logger),
		Clock:        clock.Real(),
		Log:          logger,
		PollInterval: c.PollInterval,
		Debounce:     c.DebounceWindow,
		PageSize:     c.PageSize,
		OnChange:     func() { a.dirty.Store(true) },
	})
	return a, nil
}

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run shows the landing screen and serves the REPL until the user exits,
// stdin closes or a termination signal arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer a.Close()

	a.initSignalHandler(cancelFunc)

	watcher := a.StartOnlineStatusWatcher(ctx)
	defer watcher.Stop()

	printlnFn("Request desk (type 'help' for commands)")
	if _, err := a.nav.Go(ctx, a.landing()); err != nil {
		return err
	}
	_ = a.Show(ctx)

	// the REPL blocks on stdin, so a signal ends Run without waiting for it
	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.getStatus, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		printlnFn()
	}
	return nil
}

// Close unmounts the current screen and releases the database.
func (a *App) Close() {
	a.nav.Close()
	if a.unpersist != nil {
		a.unpersist()
		a.unpersist = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database", "err", err)
		}
		a.db = nil
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the backend health endpoint on the poll
// interval and tracks whether it is reachable. The caller stops the
// returned poller.
func (a *App) StartOnlineStatusWatcher(ctx context.Context) *poller.Poller[struct{}] {
	p := poller.New(poller.Config[struct{}]{
		Interval: a.config.PollInterval,
		Clock:    clock.Real(),
		Log:      a.logger,
		Name:     "health",
		Fetch: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, a.authService.Ping(ctx)
		},
		OnResult: func(_ struct{}, err error) {
			if err != nil {
				a.setMode(ctx, ModeOffline)
				return
			}
			a.setMode(ctx, ModeOnline)
		},
	})
	p.Start(ctx)
	return p
}
