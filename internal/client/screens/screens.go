// Package screens holds the screens of the request desk client: Login,
// Settings, the order and ticket forms, the order and ticket lists and the
// responsible dashboard.
//
// A screen owns its local form or list state and renders itself as text.
// It reads identity and profile from the state container, calls the gateway
// directly or through a poller, and turns every gateway failure into a
// message it displays. Only required-field checks happen here; they fail
// with ErrValidation and never reach the server.
//
// Screens with background work (polling, debounced filters, settings
// prefill) must be mounted before use and unmounted when left. Nothing
// changes a screen's state once Unmount has returned.
package screens

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/requestdesk/internal/client/client"
	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/poller"
	"github.com/dmitrijs2005/requestdesk/internal/client/services"
	"github.com/dmitrijs2005/requestdesk/internal/client/state"
	"github.com/dmitrijs2005/requestdesk/internal/clock"
	"github.com/dmitrijs2005/requestdesk/internal/logging"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnknownField = errors.New("unknown field")
	ErrReadOnly     = errors.New("this list is read-only")
	ErrNoScreen     = errors.New("no screen for path")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

const defaultPageSize = 10

// Deps are the collaborators shared by all screens.
type Deps struct {
	Client   client.Client
	Store    *state.Store
	Auth     services.AuthService
	Settings services.SettingsService
	Clock    clock.Clock
	Log      logging.Logger
	Theme    Theme

	PollInterval time.Duration
	Debounce     time.Duration
	PageSize     int

	// OnChange, when set, is called after background work changed what a
	// screen would render.
	OnChange func()
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.PollInterval <= 0 {
		d.PollInterval = poller.DefaultInterval
	}
	if d.Debounce == 0 {
		d.Debounce = poller.DefaultDebounce
	}
	if d.PageSize <= 0 {
		d.PageSize = defaultPageSize
	}
	if d.Theme.isZero() {
		d.Theme = DefaultTheme
	}
	if d.Auth == nil {
		d.Auth = services.NewAuthService(d.Client, d.Store, d.Log)
	}
	if d.Settings == nil {
		d.Settings = services.NewSettingsService(d.Client, d.Store, d.Log)
	}
	return d
}

func (d Deps) changed() {
	if d.OnChange != nil {
		d.OnChange()
	}
}

// Screen is one navigable view.
type Screen interface {
	Path() guard.Path
	Title() string
	Mount(ctx context.Context)
	Unmount()
	Render(w io.Writer)
}

// Form is a screen that collects fields and submits them. Submit returns the
// path to navigate to next, or "" to stay.
type Form interface {
	Screen
	Fields() []string
	Set(field, value string) error
	Submit(ctx context.Context) (guard.Path, error)
}

// New builds the screen registered for path.
func New(path guard.Path, d Deps) (Screen, error) {
	d = d.withDefaults()
	switch path {
	case guard.PathLogin:
		return NewLogin(d), nil
	case guard.PathSettings:
		return NewSettings(d), nil
	case guard.PathOrderNew:
		return NewOrderForm(d), nil
	case guard.PathOrdersMine:
		return NewMyOrders(d), nil
	case guard.PathOrders:
		return NewOrderList(d), nil
	case guard.PathTiHelp:
		return NewTiHelpForm(d), nil
	case guard.PathTicketsMine:
		return NewMyTickets(d), nil
	case guard.PathTickets:
		return NewTicketList(d), nil
	case guard.PathDashboard:
		return NewDashboard(d), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoScreen, path)
}
