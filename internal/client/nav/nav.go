// Package nav decides what the navigation bar offers for the current
// effective session and performs logout. Rendering is left to the caller.
package nav

import (
	"context"
	"path"

	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
	"github.com/dmitrijs2005/mybestvenue/internal/client/session"
	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/dmitrijs2005/mybestvenue/internal/logging"
)

// State is the shell's two-state machine.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// ActionKind tells the presentation layer how to render an Action.
type ActionKind string

const (
	KindLink   ActionKind = "link"
	KindLogin  ActionKind = "login"
	KindSignup ActionKind = "signup"
	KindLogout ActionKind = "logout"
)

// Action is one entry of the menu. Path is empty for logout, which is a
// command rather than a destination.
type Action struct {
	ID    string
	Label string
	Path  string
	Kind  ActionKind
}

// Menu is everything the navigation bar needs for one effective session.
type Menu struct {
	State       State
	Role        models.Role
	Header      string
	DisplayName string
	Actions     []Action
}

// Has reports whether the menu contains an action with the given id.
func (m Menu) Has(id string) bool {
	_, ok := m.Find(id)
	return ok
}

// Find returns the action with the given id.
func (m Menu) Find(id string) (Action, bool) {
	for _, a := range m.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// RolePath builds a role-prefixed path such as /vendor/dashboard.
func RolePath(role models.Role, page string) string {
	return path.Join("/", string(role), page)
}

type page struct {
	id    string
	label string
}

var commonPages = []page{
	{"dashboard", "Dashboard"},
	{"profile", "My Profile"},
}

var rolePages = map[models.Role][]page{
	models.RoleUser: {
		{"cart", "Cart"},
		{"orders", "My Orders"},
		{"bookings", "My Bookings"},
	},
	models.RoleVendor: {
		{"services", "My Services"},
		{"bookings", "Bookings"},
		{"analytics", "Analytics"},
	},
	models.RoleAdmin: {
		{"users", "Manage Users"},
		{"vendors", "Manage Vendors"},
		{"bookings", "All Bookings"},
		{"settings", "System Settings"},
	},
}

// anonymousActions always point at the user channel's login and signup.
var anonymousActions = []Action{
	{ID: "login", Label: "Login", Path: RolePath(models.RoleUser, "login"), Kind: KindLogin},
	{ID: "signup", Label: "Sign Up", Path: RolePath(models.RoleUser, "signup"), Kind: KindSignup},
}

// BuildMenu returns the action set for eff.
func BuildMenu(eff session.Effective) Menu {
	if !eff.IsAuthenticated() {
		actions := make([]Action, len(anonymousActions))
		copy(actions, anonymousActions)
		return Menu{State: StateAnonymous, Actions: actions}
	}

	pages := append(append([]page{}, commonPages...), rolePages[eff.Role]...)
	actions := make([]Action, 0, len(pages)+1)
	for _, p := range pages {
		actions = append(actions, Action{ID: p.id, Label: p.label, Path: RolePath(eff.Role, p.id), Kind: KindLink})
	}
	actions = append(actions, Action{ID: "logout", Label: "Logout", Kind: KindLogout})

	return Menu{
		State:       StateAuthenticated,
		Role:        eff.Role,
		Header:      eff.Role.Label(),
		DisplayName: eff.DisplayName,
		Actions:     actions,
	}
}

// Shell ties the menu to the session manager.
type Shell struct {
	sessions *session.Manager
	logger   logging.Logger
}

func NewShell(sessions *session.Manager, logger logging.Logger) *Shell {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Shell{sessions: sessions, logger: logger}
}

// State returns the current state and, when authenticated, the effective role.
func (s *Shell) State() (State, models.Role) {
	eff := s.sessions.Effective()
	if !eff.IsAuthenticated() {
		return StateAnonymous, ""
	}
	return StateAuthenticated, eff.Role
}

// Menu builds the menu for the current effective session.
func (s *Shell) Menu() Menu {
	return BuildMenu(s.sessions.Effective())
}

// Logout clears the one channel that wins precedence and returns the landing
// path. Any other authenticated channel is left as it is, so the shell may
// still be authenticated afterwards under a lower-precedence role.
func (s *Shell) Logout(ctx context.Context) (string, error) {
	role, ok := session.ActiveRole(s.sessions.Records())
	if !ok {
		return "", session.ErrNotAuthenticated
	}
	if err := s.sessions.ClearCredentials(ctx, role); err != nil {
		return "", err
	}
	s.logger.Info(ctx, "logged out", "role", role)
	return common.LandingPath, nil
}
