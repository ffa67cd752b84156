package screens

import (
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

// Settings edits the requester profile. When the local profile is
// incomplete on mount, it asks the server for the saved one and prefills
// the fields the user has not typed yet.
type Settings struct {
	*form
	d Deps

	cancel context.CancelFunc
}

func NewSettings(d Deps) *Settings {
	return &Settings{
		d: d.withDefaults(),
		form: newForm(
			fieldSpec{name: "sector", label: "Sector", required: true},
			fieldSpec{name: "nameOrStore", label: "Name/Store", required: true},
		),
	}
}

func (s *Settings) Path() guard.Path { return guard.PathSettings }
func (s *Settings) Title() string    { return "Settings" }

func (s *Settings) Mount(ctx context.Context) {
	s.setMounted(true)

	p := s.d.Settings.Current()
	s.fillEmpty("sector", p.Sector)
	s.fillEmpty("nameOrStore", p.NameOrStore)
	if p.Complete() {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go s.prefill(ctx)
}

func (s *Settings) prefill(ctx context.Context) {
	remote, err := s.d.Settings.Fetch(ctx)
	if err != nil && ctx.Err() == nil {
		s.d.Log.Warn(ctx, "settings prefill failed", "err", err)
	}

	s.mu.Lock()
	if !s.mounted || ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.err = clientMessage(err, "could not load settings")
	} else {
		fillLocked(s.values, "sector", remote.Sector)
		fillLocked(s.values, "nameOrStore", remote.NameOrStore)
	}
	s.mu.Unlock()

	s.d.changed()
}

func (s *Settings) Unmount() {
	s.mu.Lock()
	s.mounted = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Submit saves the profile and returns the landing path of the current
// role.
func (s *Settings) Submit(ctx context.Context) (guard.Path, error) {
	if err := s.validate(); err != nil {
		return "", err
	}
	p := models.Profile{
		Sector:      strings.TrimSpace(s.get("sector")),
		NameOrStore: strings.TrimSpace(s.get("nameOrStore")),
	}

	if _, err := s.d.Settings.Save(ctx, p); err != nil {
		s.fail(err, "could not save settings")
		return "", err
	}
	s.succeed("Settings saved")

	var role models.Role
	if u := s.d.Store.Snapshot().User; u != nil {
		role = u.Role
	}
	return guard.DefaultPath(role), nil
}

func (s *Settings) Render(w io.Writer) {
	s.render(w, s.d.Theme, s.Title(), "Known sectors: "+strings.Join(models.Sectors, ", "))
}
