package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
	"github.com/dmitrijs2005/mybestvenue/internal/client/storage"
	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore wraps a Memory and fails the selected operations.
type failingStore struct {
	*storage.Memory
	getErr    error
	setErr    error
	removeErr error
}

func (f *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Memory.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, entries map[string]string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Memory.Set(ctx, entries)
}

func (f *failingStore) Remove(ctx context.Context, keys ...string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.Memory.Remove(ctx, keys...)
}

func (f *failingStore) Replace(ctx context.Context, entries map[string]string, remove []string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if len(remove) > 0 && f.removeErr != nil {
		return f.removeErr
	}
	return f.Memory.Replace(ctx, entries, remove)
}

func newSQLiteManager(t *testing.T, opts ...Option) (*Manager, storage.Storage) {
	t.Helper()
	s, err := storage.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewManager(s, opts...), s
}

func TestSetCredentials_AuthenticatesAndPersists(t *testing.T) {
	ctx := context.Background()
	for _, role := range models.Roles {
		t.Run(string(role), func(t *testing.T) {
			m, store := newSQLiteManager(t)

			require.NoError(t, m.SetCredentials(ctx, role, "tok-"+string(role), models.Profile{Name: "Ann"}))

			rec := m.Record(role)
			assert.True(t, rec.IsAuthenticated())
			assert.Equal(t, "tok-"+string(role), rec.Token)
			require.NotNil(t, rec.Profile)
			assert.Equal(t, role, rec.Profile.Role)

			// restart: a fresh manager over the same storage
			restarted := NewManager(store)
			require.NoError(t, restarted.Init(ctx))
			loaded := restarted.Record(role)
			assert.True(t, loaded.IsAuthenticated())
			assert.Equal(t, rec.Token, loaded.Token)
			assert.Equal(t, role, loaded.Profile.Role)
		})
	}
}

func TestSetCredentials_NormalizesRole(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		input models.Role
	}{
		{name: "absent", input: ""},
		{name: "mismatched", input: models.RoleAdmin},
		{name: "matching", input: models.RoleVendor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newSQLiteManager(t)
			in := models.Profile{Role: tt.input, BusinessName: "Sunset"}

			require.NoError(t, m.SetCredentials(ctx, models.RoleVendor, "t", in))

			rec, err := m.Load(ctx, models.RoleVendor)
			require.NoError(t, err)
			assert.Equal(t, "t", rec.Token)
			assert.Equal(t, models.RoleVendor, rec.Profile.Role)
			assert.Equal(t, tt.input, in.Role, "caller's profile must not be modified")
		})
	}
}

func TestSetCredentials_RejectsEmptyTokenBeforeStoring(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	m := NewManager(mem)

	err := m.SetCredentials(ctx, models.RoleUser, "", models.Profile{Name: "x"})
	require.ErrorIs(t, err, ErrEmptyToken)
	assert.Equal(t, 0, mem.Len())
	assert.False(t, m.Record(models.RoleUser).IsAuthenticated())
}

func TestSetCredentials_UnknownRole(t *testing.T) {
	m := NewManager(storage.NewMemory())
	err := m.SetCredentials(context.Background(), models.Role("guest"), "t", models.Profile{})
	require.ErrorIs(t, err, common.ErrorUnknownRole)
}

func TestSetCredentials_StorageFailureLeavesSlotUntouched(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{Memory: storage.NewMemory(), setErr: errors.New("disk full")}
	m := NewManager(fs)

	err := m.SetCredentials(ctx, models.RoleAdmin, "t", models.Profile{})
	require.ErrorContains(t, err, "disk full")
	assert.False(t, m.Record(models.RoleAdmin).IsAuthenticated())
	assert.Equal(t, 0, fs.Len())
}

func TestClearCredentials_OnlyThatChannel(t *testing.T) {
	ctx := context.Background()
	m, store := newSQLiteManager(t)

	for _, r := range models.Roles {
		require.NoError(t, m.SetCredentials(ctx, r, "tok-"+string(r), models.Profile{Name: string(r)}))
	}

	require.NoError(t, m.ClearCredentials(ctx, models.RoleVendor))

	rec, err := m.Load(ctx, models.RoleVendor)
	require.NoError(t, err)
	assert.False(t, rec.IsAuthenticated())
	assert.Nil(t, rec.Profile)
	assert.False(t, m.Record(models.RoleVendor).IsAuthenticated())

	for _, key := range []string{"vendorToken", "vendor"} {
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "key %s must be removed", key)
	}

	for _, r := range []models.Role{models.RoleUser, models.RoleAdmin} {
		rec, err := m.Load(ctx, r)
		require.NoError(t, err)
		assert.True(t, rec.IsAuthenticated(), "channel %s must be unaffected", r)
		assert.Equal(t, "tok-"+string(r), rec.Token)
	}
}

func TestClearCredentials_StorageFailure(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{Memory: storage.NewMemory()}
	m := NewManager(fs)
	require.NoError(t, m.SetCredentials(ctx, models.RoleUser, "t", models.Profile{}))

	fs.removeErr = errors.New("locked")
	require.ErrorContains(t, m.ClearCredentials(ctx, models.RoleUser), "locked")
	assert.True(t, m.Record(models.RoleUser).IsAuthenticated(), "slot stays until storage agrees")
}

func TestLoad_DegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		data map[string]string
	}{
		{name: "nothing stored", data: map[string]string{}},
		{name: "malformed profile", data: map[string]string{"userToken": "t", "user": "{not-json"}},
		{name: "profile is not an object", data: map[string]string{"userToken": "t", "user": `"Ann"`}},
		{name: "token without profile", data: map[string]string{"userToken": "t"}},
		{name: "profile without token", data: map[string]string{"user": `{"name":"Ann"}`}},
		{name: "empty token", data: map[string]string{"userToken": "", "user": `{"name":"Ann"}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMemory()
			require.NoError(t, mem.Set(ctx, tt.data))
			m := NewManager(mem)

			rec, err := m.Load(ctx, models.RoleUser)
			require.NoError(t, err)
			assert.Equal(t, models.EmptyRecord(models.RoleUser), rec)
			assert.False(t, rec.IsAuthenticated())
		})
	}
}

func TestLoad_NumericIdentityFields(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, map[string]string{
		"userToken": "tok",
		"user":      `{"id":42,"name":"Ann","username":7,"role":"user"}`,
	}))
	m := NewManager(mem)

	rec, err := m.Load(ctx, models.RoleUser)
	require.NoError(t, err)
	require.True(t, rec.IsAuthenticated())
	assert.Equal(t, "tok", rec.Token)
	assert.Equal(t, "42", rec.Profile.ID)
	assert.Equal(t, "Ann", rec.Profile.Name)
}

func TestLoad_StorageErrorIsReturned(t *testing.T) {
	fs := &failingStore{Memory: storage.NewMemory(), getErr: errors.New("io")}
	m := NewManager(fs)

	_, err := m.Load(context.Background(), models.RoleUser)
	require.ErrorContains(t, err, "io")
	require.Error(t, m.Init(context.Background()))
}

func TestLoad_ObservesJustWrittenValue(t *testing.T) {
	ctx := context.Background()
	m, _ := newSQLiteManager(t)

	require.NoError(t, m.SetCredentials(ctx, models.RoleUser, "first", models.Profile{Name: "A"}))
	require.NoError(t, m.SetCredentials(ctx, models.RoleUser, "second", models.Profile{Name: "B"}))

	rec, err := m.Load(ctx, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "second", rec.Token)
	assert.Equal(t, "B", rec.Profile.Name)
}

func TestProfileRoundTripThroughStorage(t *testing.T) {
	ctx := context.Background()
	profiles := []models.Profile{
		{},
		{ID: "1", Name: "Ann Lee", Email: "ann@example.org"},
		{BusinessName: "Sunset Events Co", Username: "sunset", FirstName: "Sam"},
		{Name: "Zoë Ünïcode 婚礼", Extra: map[string]json.RawMessage{
			"phone":   json.RawMessage(`"+44 20 7946 0000"`),
			"budget":  json.RawMessage(`125000`),
			"package": json.RawMessage(`{"tier":"gold","guests":[120,150]}`),
		}},
	}
	for _, role := range models.Roles {
		for i, p := range profiles {
			m, _ := newSQLiteManager(t)
			require.NoError(t, m.SetCredentials(ctx, role, "tok", p))

			rec, err := m.Load(ctx, role)
			require.NoError(t, err)

			want := p.WithRole(role)
			if diff := cmp.Diff(want, *rec.Profile); diff != "" {
				t.Fatalf("role %s profile %d mismatch (-want +got):\n%s", role, i, diff)
			}
		}
	}
}

func TestExclusiveMode_LoginClearsOtherChannels(t *testing.T) {
	ctx := context.Background()
	m, _ := newSQLiteManager(t, WithLoginMode(LoginModeExclusive))

	require.NoError(t, m.SetCredentials(ctx, models.RoleAdmin, "a", models.Profile{}))
	require.NoError(t, m.SetCredentials(ctx, models.RoleUser, "u", models.Profile{}))

	assert.False(t, m.Record(models.RoleAdmin).IsAuthenticated())
	rec, err := m.Load(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, rec.IsAuthenticated())

	assert.Equal(t, models.RoleUser, m.Effective().Role)
	assert.False(t, m.Effective().Anonymous)
}

func TestExclusiveMode_FailedWriteKeepsExistingSessions(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{Memory: storage.NewMemory()}
	m := NewManager(fs, WithLoginMode(LoginModeExclusive))

	require.NoError(t, m.SetCredentials(ctx, models.RoleAdmin, "a", models.Profile{Name: "Root"}))

	fs.setErr = errors.New("disk full")
	err := m.SetCredentials(ctx, models.RoleVendor, "v", models.Profile{})
	require.ErrorContains(t, err, "disk full")

	assert.True(t, m.Record(models.RoleAdmin).IsAuthenticated())
	assert.False(t, m.Record(models.RoleVendor).IsAuthenticated())
	assert.Equal(t, models.RoleAdmin, m.Effective().Role)

	fs.setErr = nil
	rec, err := m.Load(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "a", rec.Token)
	assert.Equal(t, 2, fs.Len(), "only the admin pair is stored")
}

func TestTolerateMode_KeepsOtherChannels(t *testing.T) {
	ctx := context.Background()
	m, _ := newSQLiteManager(t)
	assert.Equal(t, LoginModeTolerate, m.Mode())

	require.NoError(t, m.SetCredentials(ctx, models.RoleAdmin, "a", models.Profile{}))
	require.NoError(t, m.SetCredentials(ctx, models.RoleUser, "u", models.Profile{}))

	assert.True(t, m.Record(models.RoleAdmin).IsAuthenticated())
	assert.True(t, m.Record(models.RoleUser).IsAuthenticated())
	assert.Equal(t, models.RoleAdmin, m.Effective().Role)
}

func TestParseLoginMode(t *testing.T) {
	mode, err := ParseLoginMode("")
	require.NoError(t, err)
	assert.Equal(t, LoginModeTolerate, mode)

	mode, err = ParseLoginMode("exclusive")
	require.NoError(t, err)
	assert.Equal(t, LoginModeExclusive, mode)

	_, err = ParseLoginMode("single")
	require.Error(t, err)
}

func TestLastError_IsTransient(t *testing.T) {
	ctx := context.Background()
	m, store := newSQLiteManager(t)

	m.SetError(models.RoleVendor, "Invalid email or password")
	assert.Equal(t, "Invalid email or password", m.Record(models.RoleVendor).LastError)
	assert.False(t, m.Record(models.RoleVendor).IsAuthenticated())

	restarted := NewManager(store)
	require.NoError(t, restarted.Init(ctx))
	assert.Empty(t, restarted.Record(models.RoleVendor).LastError)

	m.ClearError(models.RoleVendor)
	assert.Empty(t, m.Record(models.RoleVendor).LastError)
}

func TestRecords_ReturnsCopy(t *testing.T) {
	m := NewManager(storage.NewMemory())
	recs := m.Records()
	require.Len(t, recs, 3)

	recs[models.RoleUser] = models.Record{Role: models.RoleUser, Token: "forged"}
	assert.False(t, m.Record(models.RoleUser).IsAuthenticated())
}
