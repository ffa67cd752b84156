package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/screens"
)

var (
	errNotAForm = errors.New("the current screen has no form")
	errNotAList = errors.New("the current screen has no list")
)

func (a *App) landing() guard.Path {
	if u := a.store.Snapshot().User; u != nil {
		return guard.DefaultPath(u.Role)
	}
	return guard.PathLogin
}

func (a *App) getStatus() string {
	var parts []string
	if u := a.store.Snapshot().User; u != nil {
		parts = append(parts, u.Email, string(u.Role))
	}
	if s := a.nav.Current(); s != nil {
		parts = append(parts, string(s.Path()))
	}
	if m := a.Mode(); m != ModeUnknown {
		parts = append(parts, string(m))
	}
	if a.dirty.Load() {
		parts = append(parts, "*")
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// navigate opens path, or stays when path is empty, and shows the result.
func (a *App) navigate(ctx context.Context, path guard.Path) error {
	if path != "" {
		if _, err := a.nav.Go(ctx, path); err != nil {
			return err
		}
	}
	return a.Show(ctx)
}

func (a *App) Go(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return a.navigate(ctx, guard.Path(path))
}

func (a *App) Routes(context.Context) error {
	u := a.store.Snapshot().User
	if u == nil {
		printlnFn(guard.PathLogin)
		return nil
	}
	for _, p := range guard.Reachable(u.Role) {
		printlnFn(p)
	}
	return nil
}

func (a *App) Show(context.Context) error {
	a.dirty.Store(false)
	s := a.nav.Current()
	if s == nil {
		return nil
	}
	s.Render(a.out)
	if f, ok := s.(screens.Form); ok {
		printlnFn("Fields:", strings.Join(f.Fields(), ", "))
	}
	return nil
}

func (a *App) form() (screens.Form, error) {
	f, ok := a.nav.Current().(screens.Form)
	if !ok {
		return nil, errNotAForm
	}
	return f, nil
}

func (a *App) list() (screens.ListScreen, error) {
	l, ok := a.nav.Current().(screens.ListScreen)
	if !ok {
		return nil, errNotAList
	}
	return l, nil
}

func (a *App) Set(_ context.Context, field, value string) error {
	f, err := a.form()
	if err != nil {
		return err
	}
	return f.Set(field, value)
}

// Submit submits the current form. A successful Settings submission can
// unlock screens, so the landing screen is recomputed.
func (a *App) Submit(ctx context.Context) error {
	f, err := a.form()
	if err != nil {
		return err
	}
	next, err := f.Submit(ctx)
	if err != nil {
		_ = a.Show(ctx)
		return err
	}
	return a.navigate(ctx, next)
}

func (a *App) Filter(ctx context.Context, field, value string) error {
	l, err := a.list()
	if err != nil {
		return err
	}
	switch strings.ToLower(field) {
	case "status":
		if err := l.SetStatus(value); err != nil {
			return err
		}
	case "q", "search":
		l.SetQuery(value)
	case "sector":
		l.SetSector(value)
	case "name", "nameorstore", "store":
		l.SetNameOrStore(value)
	case "clear":
		l.ClearFilters()
	default:
		return usage("filter <status|q|sector|name> <value> | filter clear")
	}
	printlnFn("Filters updated; the list refreshes shortly.")
	return nil
}

func (a *App) More(ctx context.Context) error {
	l, err := a.list()
	if err != nil {
		return err
	}
	l.More()
	return a.Show(ctx)
}

func (a *App) Page(ctx context.Context, n string) error {
	l, err := a.list()
	if err != nil {
		return err
	}
	page, err := strconv.Atoi(n)
	if err != nil {
		return usage("page <n>")
	}
	if err := l.GoToPage(page); err != nil {
		return err
	}
	return a.Show(ctx)
}

func (a *App) Refresh(context.Context) error {
	l, err := a.list()
	if err != nil {
		return err
	}
	l.Refresh()
	return nil
}

func (a *App) Update(ctx context.Context, ref, status string) error {
	l, err := a.list()
	if err != nil {
		return err
	}
	if err := l.UpdateStatus(ctx, ref, status); err != nil {
		return err
	}
	printlnFn("Status updated.")
	return nil
}

// Respond answers a request. Without text on the command line it asks for
// a multi-line answer.
func (a *App) Respond(ctx context.Context, ref, text string) error {
	l, err := a.list()
	if err != nil {
		return err
	}
	if text == "" {
		if text, err = GetMultiline(a.reader, "Enter the response", a.out); err != nil {
			return err
		}
	}
	if err := l.Respond(ctx, ref, text); err != nil {
		return err
	}
	printlnFn("Response saved.")
	return nil
}
