// Package cli provides the interactive MyBestVenue terminal shell.
//
// It wires configuration, session storage, the authentication API and the
// navigation shell into a REPL. The prompt shows the effective session; the
// menu command lists what the navigation bar would offer for it.
//
// Key features:
//   - Login / Logout per role channel (user, vendor, admin)
//   - Signup with OTP verification
//   - Role-scoped menu and navigation
//   - Background connectivity watcher
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
