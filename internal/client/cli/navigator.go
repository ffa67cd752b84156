package cli

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/screens"
	"github.com/dmitrijs2005/requestdesk/internal/client/state"
	"github.com/dmitrijs2005/requestdesk/internal/logging"
)

// screenFactory builds the screen of a path. Tests swap it for stubs.
type screenFactory func(path guard.Path, d screens.Deps) (screens.Screen, error)

// Navigator owns the current screen. Every navigation goes through the
// route guard; the previous screen is unmounted before the next one mounts.
type Navigator struct {
	deps  screens.Deps
	store *state.Store
	log   logging.Logger
	build screenFactory

	mu      sync.Mutex
	current screens.Screen
}

func NewNavigator(d screens.Deps) *Navigator {
	return &Navigator{deps: d, store: d.Store, log: d.Log, build: screens.New}
}

// Go navigates to path, following guard redirects, and returns the path
// actually shown. Navigating to the current path keeps the mounted screen.
func (n *Navigator) Go(ctx context.Context, path guard.Path) (guard.Path, error) {
	s := n.store.Snapshot()
	final, trail, err := guard.Resolve(s.User, s.Settings, path)
	for _, d := range trail {
		if !d.Allowed() {
			n.log.Debug(ctx, "navigation redirected", "from", d.Path, "to", d.Redirect, "reason", d.Outcome.String())
		}
	}
	if err != nil {
		return "", err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current != nil && n.current.Path() == final {
		return final, nil
	}

	next, err := n.build(final, n.deps)
	if err != nil {
		return "", err
	}
	if n.current != nil {
		n.current.Unmount()
	}
	n.current = next
	next.Mount(ctx)
	return final, nil
}

// Reload rebuilds the current screen after identity or profile changed.
func (n *Navigator) Reload(ctx context.Context) (guard.Path, error) {
	n.mu.Lock()
	path := guard.PathLogin
	if n.current != nil {
		path = n.current.Path()
		n.current.Unmount()
		n.current = nil
	}
	n.mu.Unlock()
	return n.Go(ctx, path)
}

func (n *Navigator) Current() screens.Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Close unmounts the current screen.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil {
		n.current.Unmount()
		n.current = nil
	}
}
