// Package services contains the application services of the request desk
// client: authentication and profile settings. Both write through the state
// container, which in turn persists identity and profile.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/requestdesk/internal/client/client"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/client/state"
	"github.com/dmitrijs2005/requestdesk/internal/logging"
)

var ErrMissingCredentials = errors.New("email and password are required")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and set the identity.
//   - Logout: clear the identity; the profile is kept.
//   - Ping: check server liveness.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Logout(ctx context.Context)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *state.Store
	log    logging.Logger
}

func NewAuthService(c client.Client, st *state.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, store: st, log: log.With("service", "auth")}
}

// Login sends the credentials and stores the identity the server returns.
// The role is taken from the response as is; nothing is derived locally.
func (a *authService) Login(ctx context.Context, email, password string) (models.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Identity{}, ErrMissingCredentials
	}

	id, err := a.client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return models.Identity{}, fmt.Errorf("login: %w", err)
	}

	a.store.Dispatch(state.SetUser{User: id})
	a.log.Info(ctx, "logged in", "email", id.Email, "role", id.Role)
	return id, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.store.Dispatch(state.ClearUser{})
	a.log.Info(ctx, "logged out")
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}
