package models

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "user", want: RoleUser},
		{in: " Vendor ", want: RoleVendor},
		{in: "ADMIN", want: RoleAdmin},
		{in: "guest", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrorUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_KeysAndLabel(t *testing.T) {
	assert.Equal(t, "vendorToken", RoleVendor.TokenKey())
	assert.Equal(t, "vendor", RoleVendor.ProfileKey())
	assert.Equal(t, "adminToken", RoleAdmin.TokenKey())
	assert.Equal(t, "Admin", RoleAdmin.Label())
	assert.Equal(t, "User", RoleUser.Label())
	assert.Equal(t, "", Role("").Label())
}

func TestRecord_IsAuthenticatedFollowsToken(t *testing.T) {
	r := EmptyRecord(RoleUser)
	assert.False(t, r.IsAuthenticated())

	r.Token = "tok"
	assert.True(t, r.IsAuthenticated())

	r.Profile = &Profile{Role: RoleUser}
	r.Token = ""
	assert.False(t, r.IsAuthenticated(), "profile alone must not authenticate")
}

func TestProfile_RoundTripKeepsUnknownFields(t *testing.T) {
	raw := `{"id":"42","role":"vendor","businessName":"Sunset Events Co","email":"hello@sunset.test","phone":"+1 555","tags":["dj","lights"]}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "42", p.ID)
	assert.Equal(t, RoleVendor, p.Role)
	assert.Equal(t, "Sunset Events Co", p.BusinessName)
	require.Contains(t, p.Extra, "phone")
	require.Contains(t, p.Extra, "tags")

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))

	var again Profile
	require.NoError(t, json.Unmarshal(out, &again))
	if diff := cmp.Diff(p, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile_KnownFieldsWinOverExtra(t *testing.T) {
	p := Profile{
		Role:  RoleAdmin,
		Name:  "Root",
		Extra: map[string]json.RawMessage{"role": json.RawMessage(`"user"`), "level": json.RawMessage(`3`)},
	}
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"admin","name":"Root","level":3}`, string(out))
}

func TestProfile_UnmarshalRejectsGarbage(t *testing.T) {
	var p Profile
	require.Error(t, json.Unmarshal([]byte(`{not json`), &p))
	require.Error(t, json.Unmarshal([]byte(`"a string"`), &p))
}

func TestProfile_WithRoleCopies(t *testing.T) {
	orig := Profile{Role: RoleUser, Name: "Ann", Extra: map[string]json.RawMessage{"x": json.RawMessage(`1`)}}
	tagged := orig.WithRole(RoleVendor)

	assert.Equal(t, RoleVendor, tagged.Role)
	assert.Equal(t, RoleUser, orig.Role)

	tagged.Extra["y"] = json.RawMessage(`2`)
	assert.NotContains(t, orig.Extra, "y")
}

func TestProfile_NonStringIdentityFields(t *testing.T) {
	raw := `{"id":42,"role":"user","name":"Ann","username":1001,"verified":true,"avatar":null}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "1001", p.Username)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, RoleUser, p.Role)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out), "numbers keep their JSON type")

	var again Profile
	require.NoError(t, json.Unmarshal(out, &again))
	if diff := cmp.Diff(p, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile_ChangedNumericFieldIsReencodedAsString(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"role":"user"}`), &p))

	p.ID = "43"
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"43","role":"user"}`, string(out))
}

func TestProfile_ObjectValuedIdentityFieldIsKeptAside(t *testing.T) {
	raw := `{"role":"admin","name":{"first":"Ro","last":"Ot"},"email":"root@example.com"}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Empty(t, p.Name)
	assert.Equal(t, "root@example.com", p.Email)
	require.Contains(t, p.Extra, "name")

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}
