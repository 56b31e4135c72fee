// Package session owns the three role channels (user, vendor, admin) of the
// MyBestVenue shell.
//
// A Manager is built once at startup around a storage.Storage, loads every
// channel with Init, and from then on is the only writer: SetCredentials and
// ClearCredentials write through to storage before the in-memory slot
// changes. Resolve turns the three records into the single Effective session
// the rest of the shell renders, using the fixed Precedence admin > vendor >
// user.
//
// The manager is not safe for concurrent use; the shell drives it from one
// goroutine, one action at a time.
package session
