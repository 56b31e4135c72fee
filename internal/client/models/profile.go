package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Profile is the identity payload returned by the auth API for one channel.
//
// Role is the single canonical role tag; it is set when credentials are stored
// and never guessed from other fields. Fields the shell does not know about
// are kept in Extra so that a stored profile round-trips unchanged.
type Profile struct {
	ID           string `json:"id,omitempty"`
	Role         Role   `json:"role"`
	Name         string `json:"name,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	Email        string `json:"email,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// profileFields mirrors Profile without methods so the custom codec can use
// the default struct encoding.
type profileFields Profile

var knownProfileKeys = []string{"id", "role", "name", "businessName", "username", "firstName", "email"}

// field returns a pointer to the identity field stored under key.
func (p *Profile) field(key string) *string {
	switch key {
	case "id":
		return &p.ID
	case "role":
		return (*string)(&p.Role)
	case "name":
		return &p.Name
	case "businessName":
		return &p.BusinessName
	case "username":
		return &p.Username
	case "firstName":
		return &p.FirstName
	case "email":
		return &p.Email
	}
	return nil
}

// scalarText renders a JSON string, number or bool as text. Other values
// (objects, arrays, null) report false.
func scalarText(raw json.RawMessage) (string, bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

func (p Profile) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(profileFields(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]json.RawMessage, len(p.Extra)+len(knownProfileKeys))
	for k, v := range p.Extra {
		merged[k] = v
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(base, &known); err != nil {
		return nil, err
	}
	// known fields win over extras with the same name, unless the extra is
	// the original non-string form of the same value
	for k, v := range known {
		if orig, ok := p.Extra[k]; ok {
			if text, ok := scalarText(orig); ok && text == *p.field(k) {
				continue
			}
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON accepts identity fields of any scalar type: a numeric id or
// username is kept as its text. The original value of every non-string
// identity field stays in Extra so re-encoding restores it.
func (p *Profile) UnmarshalJSON(b []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	var out Profile
	for _, k := range knownProfileKeys {
		raw, ok := all[k]
		if !ok {
			continue
		}
		if text, ok := scalarText(raw); ok {
			*out.field(k) = text
		}
		if isJSONString(raw) {
			delete(all, k)
		}
	}

	if len(all) > 0 {
		out.Extra = all
	}
	*p = out
	return nil
}

// WithRole returns a copy of p tagged with role. Extra is copied so the
// result never aliases the caller's map.
func (p Profile) WithRole(role Role) Profile {
	out := p
	out.Role = role
	if p.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			out.Extra[k] = v
		}
	}
	return out
}
