package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
	"github.com/dmitrijs2005/mybestvenue/internal/client/nav"
	"github.com/dmitrijs2005/mybestvenue/internal/client/session"
)

// Menu prints the navigation bar for the effective session.
func (a *App) Menu(ctx context.Context) error {
	m := a.shell.Menu()
	if m.State == nav.StateAuthenticated {
		fmt.Fprintf(a.out, "%s | %s (%s)\n", m.Header, m.DisplayName, m.Role)
	} else {
		fmt.Fprintln(a.out, "Guest")
	}
	for _, act := range m.Actions {
		if act.Path != "" {
			fmt.Fprintf(a.out, "  %-10s %-16s %s\n", act.ID, act.Label, act.Path)
		} else {
			fmt.Fprintf(a.out, "  %-10s %s\n", act.ID, act.Label)
		}
	}
	return nil
}

// Go follows a menu entry by id. Login, signup and logout entries run the
// matching command.
func (a *App) Go(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: go <page>")
		return fmt.Errorf("missing page")
	}

	m := a.shell.Menu()
	act, ok := m.Find(args[0])
	if !ok {
		fmt.Fprintf(a.out, "No %q in the menu\n", args[0])
		return fmt.Errorf("unknown page %q", args[0])
	}

	switch act.Kind {
	case nav.KindLogin:
		return a.Login(ctx, nil)
	case nav.KindSignup:
		return a.Signup(ctx, nil)
	case nav.KindLogout:
		return a.Logout(ctx)
	}

	a.location = act.Path
	fmt.Fprintf(a.out, "-> %s\n", act.Path)
	return nil
}

// Status prints every channel in precedence order.
func (a *App) Status(ctx context.Context) error {
	eff := a.sessions.Effective()
	for _, role := range session.Precedence {
		rec := a.sessions.Record(role)

		state := "-"
		if rec.IsAuthenticated() {
			state = session.DisplayName(role, rec.Profile)
		}
		marker := " "
		if eff.IsAuthenticated() && eff.Role == role {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-7s %s", marker, role, state)
		if rec.LastError != "" {
			line += fmt.Sprintf("  [%s]", rec.LastError)
		}
		fmt.Fprintln(a.out, line)
	}
	fmt.Fprintf(a.out, "at %s\n", a.location)
	return nil
}

// ClearError forgets the last login failure of a role; no argument means
// every channel.
func (a *App) ClearError(ctx context.Context, args []string) error {
	if len(args) == 0 {
		for _, r := range models.Roles {
			a.sessions.ClearError(r)
		}
		return nil
	}
	role, err := a.roleArg(args)
	if err != nil {
		return err
	}
	a.sessions.ClearError(role)
	return nil
}
