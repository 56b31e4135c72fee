package session

import (
	"strings"

	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
)

// MaxDisplayNameLen is the width of the name shown in the navigation bar.
const MaxDisplayNameLen = 10

// Precedence is the order in which channels are consulted when more than one
// is authenticated. The first authenticated entry wins.
var Precedence = []models.Role{models.RoleAdmin, models.RoleVendor, models.RoleUser}

// Effective is the single session the shell treats as current.
type Effective struct {
	Role        models.Role
	DisplayName string
	Anonymous   bool
	Profile     *models.Profile
}

// IsAuthenticated is true for every effective session except the anonymous one.
func (e Effective) IsAuthenticated() bool {
	return !e.Anonymous
}

// Anonymous is the effective session when no channel is authenticated.
func Anonymous() Effective {
	return Effective{Role: models.RoleUser, DisplayName: "User", Anonymous: true}
}

// ActiveRole returns the channel that wins precedence, or false when none is
// authenticated.
func ActiveRole(records map[models.Role]models.Record) (models.Role, bool) {
	for _, r := range Precedence {
		if records[r].IsAuthenticated() {
			return r, true
		}
	}
	return "", false
}

// Resolve picks the effective session from the channel records.
func Resolve(records map[models.Role]models.Record) Effective {
	role, ok := ActiveRole(records)
	if !ok {
		return Anonymous()
	}
	rec := records[role]
	return Effective{
		Role:        role,
		DisplayName: DisplayName(role, rec.Profile),
		Profile:     rec.Profile,
	}
}

// DisplayName picks the first non-empty identity field for role and cuts it
// to MaxDisplayNameLen runes. The profile is only read.
func DisplayName(role models.Role, p *models.Profile) string {
	var candidates []string
	var fallback string

	switch role {
	case models.RoleAdmin:
		fallback = "Admin"
		if p != nil {
			candidates = []string{p.Name, p.Username, p.FirstName, emailLocalPart(p.Email)}
		}
	case models.RoleVendor:
		fallback = "Vendor"
		if p != nil {
			candidates = []string{p.BusinessName, p.Name, p.Username}
		}
	default:
		fallback = "User"
		if p != nil {
			candidates = []string{p.Name, p.Username, p.FirstName}
		}
	}

	name := fallback
	for _, c := range candidates {
		if c != "" {
			name = c
			break
		}
	}
	return truncate(name, MaxDisplayNameLen)
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
