package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
	"github.com/dmitrijs2005/mybestvenue/internal/client/storage"
	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/dmitrijs2005/mybestvenue/internal/logging"
)

// LoginMode decides what happens to the other channels when one logs in.
type LoginMode string

const (
	// LoginModeTolerate leaves the other channels alone, so several roles
	// can be authenticated at once. Resolve still shows only one of them.
	LoginModeTolerate LoginMode = "tolerate"
	// LoginModeExclusive clears the other two channels on every login.
	LoginModeExclusive LoginMode = "exclusive"
)

// ParseLoginMode maps config text to a LoginMode; "" means tolerate.
func ParseLoginMode(s string) (LoginMode, error) {
	switch LoginMode(s) {
	case "", LoginModeTolerate:
		return LoginModeTolerate, nil
	case LoginModeExclusive:
		return LoginModeExclusive, nil
	}
	return "", fmt.Errorf("unknown login mode %q", s)
}

// Manager holds one slot per role channel.
type Manager struct {
	store  storage.Storage
	logger logging.Logger
	mode   LoginMode
	slots  map[models.Role]models.Record
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func WithLoginMode(mode LoginMode) Option {
	return func(m *Manager) { m.mode = mode }
}

// NewManager returns a manager with every channel empty. Call Init to read
// the persisted state.
func NewManager(store storage.Storage, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.Discard(),
		mode:   LoginModeTolerate,
		slots:  make(map[models.Role]models.Record, len(models.Roles)),
	}
	for _, o := range opts {
		o(m)
	}
	for _, r := range models.Roles {
		m.slots[r] = models.EmptyRecord(r)
	}
	return m
}

// Mode reports the configured login mode.
func (m *Manager) Mode() LoginMode {
	return m.mode
}

// Init loads all three channels from storage.
func (m *Manager) Init(ctx context.Context) error {
	for _, r := range models.Roles {
		rec, err := m.Load(ctx, r)
		if err != nil {
			return err
		}
		m.slots[r] = rec
	}
	m.logger.Info(ctx, "sessions loaded", "effective", m.Effective().Role, "anonymous", m.Effective().Anonymous)
	return nil
}

// Load reads role's channel straight from storage.
//
// A missing token, a missing profile, or a profile that does not parse all
// mean "no session" and produce an empty record without error. Only storage
// failures are returned.
func (m *Manager) Load(ctx context.Context, role models.Role) (models.Record, error) {
	if !role.Valid() {
		return models.Record{}, fmt.Errorf("%w: %q", common.ErrorUnknownRole, role)
	}

	token, ok, err := m.store.Get(ctx, role.TokenKey())
	if err != nil {
		return models.Record{}, fmt.Errorf("load %s token: %w", role, err)
	}
	if !ok || token == "" {
		return models.EmptyRecord(role), nil
	}

	blob, ok, err := m.store.Get(ctx, role.ProfileKey())
	if err != nil {
		return models.Record{}, fmt.Errorf("load %s profile: %w", role, err)
	}
	if !ok {
		m.logger.Warn(ctx, "token without profile, ignoring session", "role", role)
		return models.EmptyRecord(role), nil
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		m.logger.Warn(ctx, "malformed stored profile, ignoring session", "role", role, "error", err)
		return models.EmptyRecord(role), nil
	}
	p.Role = role

	return models.Record{Role: role, Token: token, Profile: &p}, nil
}

// SetCredentials stores token and profile for role as one atomic pair and
// then marks the channel authenticated. profile.Role is overwritten with
// role whatever it was.
func (m *Manager) SetCredentials(ctx context.Context, role models.Role, token string, profile models.Profile) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", common.ErrorUnknownRole, role)
	}
	if token == "" {
		return ErrEmptyToken
	}

	p := profile.WithRole(role)
	blob, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s profile: %w", role, err)
	}

	entries := map[string]string{
		role.TokenKey():   token,
		role.ProfileKey(): string(blob),
	}

	// Exclusive mode drops the other channels in the same atomic step, so a
	// failed write leaves every existing session in place.
	var others []models.Role
	if m.mode == LoginModeExclusive {
		for _, other := range models.Roles {
			if other != role {
				others = append(others, other)
			}
		}
	}

	if len(others) == 0 {
		err = m.store.Set(ctx, entries)
	} else {
		remove := make([]string, 0, 2*len(others))
		for _, other := range others {
			remove = append(remove, other.TokenKey(), other.ProfileKey())
		}
		err = m.store.Replace(ctx, entries, remove)
	}
	if err != nil {
		return fmt.Errorf("store %s credentials: %w", role, err)
	}

	for _, other := range others {
		m.slots[other] = models.EmptyRecord(other)
		m.logger.Info(ctx, "credentials cleared", "role", other, "reason", "exclusive login")
	}
	m.slots[role] = models.Record{Role: role, Token: token, Profile: &p}
	m.logger.Info(ctx, "credentials stored", "role", role)
	return nil
}

// ClearCredentials removes role's token and profile from storage and empties
// the slot. The other channels are not touched.
func (m *Manager) ClearCredentials(ctx context.Context, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", common.ErrorUnknownRole, role)
	}
	if err := m.store.Remove(ctx, role.TokenKey(), role.ProfileKey()); err != nil {
		return fmt.Errorf("clear %s credentials: %w", role, err)
	}
	m.slots[role] = models.EmptyRecord(role)
	m.logger.Info(ctx, "credentials cleared", "role", role)
	return nil
}

// Record returns the in-memory record of role.
func (m *Manager) Record(role models.Role) models.Record {
	rec, ok := m.slots[role]
	if !ok {
		return models.EmptyRecord(role)
	}
	return rec
}

// Records returns a copy of every slot keyed by role.
func (m *Manager) Records() map[models.Role]models.Record {
	out := make(map[models.Role]models.Record, len(m.slots))
	for r, rec := range m.slots {
		out[r] = rec
	}
	return out
}

// Effective resolves the current slots.
func (m *Manager) Effective() Effective {
	return Resolve(m.slots)
}

// SetError remembers a failed login message on role's channel. The token and
// profile stay as they were.
func (m *Manager) SetError(role models.Role, msg string) {
	if rec, ok := m.slots[role]; ok {
		rec.LastError = msg
		m.slots[role] = rec
	}
}

// ClearError drops the remembered login failure of role.
func (m *Manager) ClearError(role models.Role) {
	m.SetError(role, "")
}
