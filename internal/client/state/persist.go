package state

import (
	"context"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

// Persister is the subset of the profile store used by the state container.
// Implementations must not fail; they log and carry on.
type Persister interface {
	LoadIdentity(ctx context.Context) *models.Identity
	SaveIdentity(ctx context.Context, id models.Identity)
	DeleteIdentity(ctx context.Context)
	LoadProfile(ctx context.Context) *models.Profile
	SaveProfile(ctx context.Context, p models.Profile)
}

// Rehydrate injects the persisted identity and profile into st. It is meant
// to run once at startup, before the first screen renders and before
// PersistTo is registered.
func Rehydrate(ctx context.Context, st *Store, p Persister) {
	if id := p.LoadIdentity(ctx); id != nil {
		st.Dispatch(SetUser{User: *id})
	}
	if prof := p.LoadProfile(ctx); prof != nil {
		st.Dispatch(SetSettings{Settings: *prof})
	}
}

// PersistTo writes identity and profile changes through to p. Orders and
// tickets are not persisted. It returns the unsubscribe function.
func PersistTo(ctx context.Context, st *Store, p Persister) func() {
	return st.Subscribe(func(a Action, s State) {
		switch a.(type) {
		case SetUser:
			if s.User != nil {
				p.SaveIdentity(ctx, *s.User)
			}
		case ClearUser:
			p.DeleteIdentity(ctx)
		case SetSettings:
			p.SaveProfile(ctx, s.Settings)
		}
	})
}
