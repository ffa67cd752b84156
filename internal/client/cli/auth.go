package cli

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/screens"
)

// getSimpleText, getPassword and isTerminal are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	isTerminal    = term.IsTerminal
)

func wipe(b []byte) {
	clear(b)
}

// Login prompts for whatever credentials were not passed as arguments,
// submits them through the Login screen and opens the landing screen of the
// returned role. The password is wiped before returning.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	password, err := a.promptPassword()
	if err != nil {
		return err
	}
	defer wipe(password)

	if _, err := a.nav.Go(ctx, guard.PathLogin); err != nil {
		return err
	}
	form, ok := a.nav.Current().(screens.Form)
	if !ok {
		return fmt.Errorf("login screen is not a form")
	}
	if err := form.Set("email", email); err != nil {
		return err
	}
	if err := form.Set("password", string(password)); err != nil {
		return err
	}

	next, err := form.Submit(ctx)
	if err != nil {
		a.logger.Warn(ctx, "login unsuccessful", "email", email, "err", err)
		return err
	}
	a.logger.Info(ctx, "login successful", "email", email)
	return a.navigate(ctx, next)
}

func (a *App) promptPassword() ([]byte, error) {
	if isTerminal(int(os.Stdin.Fd())) {
		return getPassword(a.out)
	}
	pw, err := getSimpleText(a.reader, "Enter password", a.out)
	return []byte(pw), err
}

// Logout drops the identity and returns to the Login screen. The profile
// is kept.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	return a.navigate(ctx, guard.PathLogin)
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().Authenticated()
}
