package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Signup(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Whoami(ctx context.Context) error
	Menu(ctx context.Context) error
	Go(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	ClearError(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous     = "Available commands: login [role], signup [role], verify [code], status, exit"
	helpAuthenticated = "Available commands: menu, go <page>, whoami, status, clear-error [role], login [role], logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
//	Not logged in:
//	  - login [role]        authenticate a role channel (default user)
//	  - signup [role]       create an account
//	  - verify [code]       confirm the last signup with its OTP
//	  - status              show all three channels
//	  - exit | quit         leave the program
//
//	Logged in, additionally:
//	  - menu                show the navigation bar for the effective role
//	  - go <page>           follow a menu entry
//	  - whoami              check the effective session with the server
//	  - clear-error [role]  forget the last login failure
//	  - logout              log out of the effective role
//
// Errors returned by handlers have already been reported to the user by the
// handler itself; the loop only keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "venue %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpAuthenticated)
			} else {
				fmt.Fprintln(w, helpAnonymous)
			}

		case "login":
			_ = a.Login(ctx, args)

		case "signup", "register":
			_ = a.Signup(ctx, args)

		case "verify":
			_ = a.Verify(ctx, args)

		case "status":
			_ = a.Status(ctx)

		case "menu", "m":
			_ = a.Menu(ctx)

		case "go":
			_ = a.Go(ctx, args)

		case "whoami":
			_ = a.Whoami(ctx)

		case "clear-error":
			_ = a.ClearError(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
