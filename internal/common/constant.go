// Package common contains constants and sentinel errors shared by the
// MyBestVenue client and the development auth server.
package common

// AuthorizationHeaderName carries the bearer token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// LandingPath is where the shell sends the user after logout.
const LandingPath = "/"
