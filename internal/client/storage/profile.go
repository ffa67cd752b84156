package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/requestdesk/internal/dbx"
	"github.com/dmitrijs2005/requestdesk/internal/logging"
)

// Keys managed by the profile store.
const (
	KeyUser     = "user"
	KeySettings = "settings"
)

// CurrentVersion is the envelope version written by Save.
const CurrentVersion = 1

var (
	errUnsupportedVersion = errors.New("unsupported envelope version")
	errEmptyValue         = errors.New("empty value")
)

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

// ProfileStore persists the identity and the profile between runs. None of
// its methods fail: storage or decoding problems are logged and turn into
// "absent" on read and into a no-op on write.
type ProfileStore struct {
	db   *sql.DB
	repo metadata.Repository
	log  logging.Logger
}

func NewProfileStore(db *sql.DB, log logging.Logger) *ProfileStore {
	if log == nil {
		log = logging.Nop()
	}
	return &ProfileStore{
		db:   db,
		repo: metadata.NewSQLiteRepository(db),
		log:  log.With("component", "profile-store"),
	}
}

// Load decodes the value stored under key into out and reports whether one
// was found. Raw values written before envelopes existed are read as is.
func (s *ProfileStore) Load(ctx context.Context, key string, out any) bool {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "load failed", "key", key, "err", err)
		return false
	}
	if raw == nil {
		return false
	}

	data, _, err := unwrap(raw)
	if err != nil {
		s.log.Warn(ctx, "stored value ignored", "key", key, "err", err)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Warn(ctx, "stored value ignored", "key", key, "err", err)
		return false
	}
	return true
}

// Save stores v under key inside a versioned envelope.
func (s *ProfileStore) Save(ctx context.Context, key string, v any) {
	raw, err := wrap(v)
	if err != nil {
		s.log.Warn(ctx, "save failed", "key", key, "err", err)
		return
	}
	if err := s.repo.Set(ctx, key, raw); err != nil {
		s.log.Warn(ctx, "save failed", "key", key, "err", err)
	}
}

func (s *ProfileStore) Delete(ctx context.Context, key string) {
	if err := s.repo.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "delete failed", "key", key, "err", err)
	}
}

// LoadIdentity returns the persisted identity, or nil when there is none or
// it carries no valid role.
func (s *ProfileStore) LoadIdentity(ctx context.Context) *models.Identity {
	var id models.Identity
	if !s.Load(ctx, KeyUser, &id) || !id.Role.Valid() {
		return nil
	}
	return &id
}

func (s *ProfileStore) SaveIdentity(ctx context.Context, id models.Identity) {
	s.Save(ctx, KeyUser, id)
}

func (s *ProfileStore) DeleteIdentity(ctx context.Context) {
	s.Delete(ctx, KeyUser)
}

func (s *ProfileStore) LoadProfile(ctx context.Context) *models.Profile {
	var p models.Profile
	if !s.Load(ctx, KeySettings, &p) {
		return nil
	}
	return &p
}

func (s *ProfileStore) SaveProfile(ctx context.Context, p models.Profile) {
	s.Save(ctx, KeySettings, p)
}

// Upgrade rewrites every legacy (unversioned) entry as a current envelope in
// a single transaction. Entries that cannot be read are dropped. Unlike the
// other methods it reports failures, so startup can log them once.
func (s *ProfileStore) Upgrade(ctx context.Context) (int, error) {
	upgraded := 0
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		upgraded = 0
		repo := metadata.NewSQLiteRepository(tx)
		entries, err := repo.Entries(ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			key, raw := e.Key, e.Value
			data, version, err := unwrap(raw)
			if err != nil || !json.Valid(data) {
				s.log.Warn(ctx, "dropping unreadable entry", "key", key, "err", err)
				if err := repo.Delete(ctx, key); err != nil {
					return err
				}
				continue
			}
			if version == CurrentVersion {
				continue
			}

			wrapped, err := json.Marshal(envelope{V: CurrentVersion, Data: data})
			if err != nil {
				return err
			}
			if err := repo.Set(ctx, key, wrapped); err != nil {
				return err
			}
			upgraded++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("upgrade profile store: %w", err)
	}
	return upgraded, nil
}

func wrap(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{V: CurrentVersion, Data: data})
}

// unwrap returns the payload of raw and its envelope version; version 0
// means a legacy value without envelope.
func unwrap(raw []byte) (json.RawMessage, int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, 0, errEmptyValue
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err == nil && env.V > 0 && len(env.Data) > 0 {
		if env.V > CurrentVersion {
			return nil, env.V, fmt.Errorf("%w: %d", errUnsupportedVersion, env.V)
		}
		return env.Data, env.V, nil
	}
	return trimmed, 0, nil
}
