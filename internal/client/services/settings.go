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

var ErrIncompleteProfile = errors.New("sector and name/store are required")

// SettingsService reads and saves the requester profile.
type SettingsService interface {
	// Current returns the profile held by the state container.
	Current() models.Profile
	// Fetch asks the server for the saved profile without changing state.
	Fetch(ctx context.Context) (models.Profile, error)
	// Save sends the profile and stores the server's version of it.
	Save(ctx context.Context, p models.Profile) (models.Profile, error)
}

type settingsService struct {
	client client.Client
	store  *state.Store
	log    logging.Logger
}

func NewSettingsService(c client.Client, st *state.Store, log logging.Logger) SettingsService {
	if log == nil {
		log = logging.Nop()
	}
	return &settingsService{client: c, store: st, log: log.With("service", "settings")}
}

func (s *settingsService) Current() models.Profile {
	return s.store.Snapshot().Settings
}

func (s *settingsService) Fetch(ctx context.Context) (models.Profile, error) {
	p, err := s.client.GetSettings(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get settings: %w", err)
	}
	return p, nil
}

func (s *settingsService) Save(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.Sector = strings.TrimSpace(p.Sector)
	p.NameOrStore = strings.TrimSpace(p.NameOrStore)
	if !p.Complete() {
		return models.Profile{}, ErrIncompleteProfile
	}

	saved, err := s.client.SaveSettings(ctx, p)
	if err != nil {
		return models.Profile{}, fmt.Errorf("save settings: %w", err)
	}
	// a server that echoes back a partial profile does not get to erase
	// what the user typed
	if !saved.Complete() {
		saved = p
	}

	s.store.Dispatch(state.SetSettings{Settings: saved})
	s.log.Info(ctx, "settings saved", "sector", saved.Sector)
	return saved, nil
}
