package session

import "errors"

var (
	// ErrEmptyToken is returned by SetCredentials before anything is stored.
	ErrEmptyToken = errors.New("session: empty token")
	// ErrNotAuthenticated is returned by operations that need an active channel.
	ErrNotAuthenticated = errors.New("session: no channel is authenticated")
)
