// Package models defines the client-side session types: the three role
// channels, the tagged profile payload, and the per-channel session record.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mybestvenue/internal/common"
)

// Role names one of the three independent session channels.
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Roles lists every channel in storage order. It says nothing about
// precedence; see session.Precedence for that.
var Roles = []Role{RoleUser, RoleVendor, RoleAdmin}

// ParseRole accepts a role name in any case and with surrounding spaces.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrorUnknownRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Label is the capitalised role name shown in the menu header.
func (r Role) Label() string {
	if r == "" {
		return ""
	}
	s := string(r)
	return strings.ToUpper(s[:1]) + s[1:]
}

// TokenKey is the storage key holding the channel's token ("vendorToken").
func (r Role) TokenKey() string {
	return string(r) + "Token"
}

// ProfileKey is the storage key holding the channel's profile blob ("vendor").
func (r Role) ProfileKey() string {
	return string(r)
}
