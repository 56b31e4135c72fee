package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mybestvenue/internal/client/client"
	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
	"github.com/dmitrijs2005/mybestvenue/internal/client/nav"
	"github.com/dmitrijs2005/mybestvenue/internal/client/services"
	"github.com/dmitrijs2005/mybestvenue/internal/client/session"
	"github.com/dmitrijs2005/mybestvenue/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// roleArg reads the optional role argument; no argument means user.
func (a *App) roleArg(args []string) (models.Role, error) {
	if len(args) == 0 {
		return models.RoleUser, nil
	}
	role, err := models.ParseRole(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Unknown role %q, expected user, vendor or admin\n", args[0])
		return "", err
	}
	return role, nil
}

// Login prompts for email and password and logs role in. On failure the
// server's message is shown as is; the channel keeps whatever it had.
func (a *App) Login(ctx context.Context, args []string) error {
	role, err := a.roleArg(args)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, role, email, password); err != nil {
		fmt.Fprintln(a.out, services.Message(err, services.LoginFailedMessage))
		return err
	}

	eff := a.sessions.Effective()
	a.location = nav.RolePath(role, "dashboard")
	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", session.DisplayName(role, a.sessions.Record(role).Profile), role)
	if eff.Role != role {
		fmt.Fprintf(a.out, "Note: %s session is still active and takes precedence\n", eff.Role)
	}
	return nil
}

// Signup creates an account for role and remembers it for verify.
func (a *App) Signup(ctx context.Context, args []string) error {
	role, err := a.roleArg(args)
	if err != nil {
		return err
	}

	var form client.SignupForm
	if form.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if role == models.RoleVendor {
		if form.BusinessName, err = getSimpleText(a.reader, "Enter business name", a.out); err != nil {
			return err
		}
	}
	if form.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if form.Password, err = getPassword(a.out); err != nil {
		return err
	}
	defer common.WipeByteArray(form.Password)

	userID, err := a.authService.Signup(ctx, role, form)
	if err != nil {
		fmt.Fprintln(a.out, services.Message(err, "Signup failed. Please try again."))
		return err
	}

	a.pending = &pendingSignup{role: role, userID: userID}
	fmt.Fprintln(a.out, "Account created. Enter the 6-digit code we sent you with 'verify'.")
	return nil
}

// Verify confirms the last signup. The code may be given inline or prompted.
func (a *App) Verify(ctx context.Context, args []string) error {
	if a.pending == nil {
		fmt.Fprintln(a.out, "Nothing to verify, sign up first")
		return errors.New("no pending signup")
	}

	var otp string
	if len(args) > 0 {
		otp = args[0]
	} else {
		var err error
		if otp, err = getSimpleText(a.reader, "Enter OTP", a.out); err != nil {
			return err
		}
	}

	if err := a.authService.VerifyOTP(ctx, a.pending.role, a.pending.userID, otp); err != nil {
		fmt.Fprintln(a.out, services.Message(err, services.OTPFailedMessage))
		return err
	}

	fmt.Fprintf(a.out, "Account verified. You can now log in with 'login %s'.\n", a.pending.role)
	a.pending = nil
	return nil
}

// Logout clears the effective channel only.
func (a *App) Logout(ctx context.Context) error {
	eff := a.sessions.Effective()
	landing, err := a.shell.Logout(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			fmt.Fprintln(a.out, "Not logged in")
		} else {
			fmt.Fprintf(a.out, "Logout failed: %v\n", err)
		}
		return err
	}

	a.location = landing
	fmt.Fprintf(a.out, "Logged out of %s\n", eff.Role)
	if next := a.sessions.Effective(); next.IsAuthenticated() {
		fmt.Fprintf(a.out, "Still logged in as %s (%s)\n", next.DisplayName, next.Role)
	}
	return nil
}

// Whoami asks the server about the effective session.
func (a *App) Whoami(ctx context.Context) error {
	p, err := a.authService.Whoami(ctx)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotAuthenticated):
			fmt.Fprintln(a.out, "Not logged in")
		case errors.Is(err, client.ErrUnauthorized):
			fmt.Fprintln(a.out, client.UserMessage(err, services.SessionExpiredMessage))
		default:
			fmt.Fprintln(a.out, client.UserMessage(err, "Could not reach the server"))
		}
		return err
	}

	eff := a.sessions.Effective()
	fmt.Fprintf(a.out, "%s (%s) id=%s email=%s\n", eff.DisplayName, eff.Role, p.ID, p.Email)
	return nil
}
