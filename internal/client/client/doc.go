// Package client talks to the MyBestVenue authentication API.
//
// Client is the transport-agnostic contract used by the services layer;
// HTTPClient implements it over JSON/HTTP with resty. Non-2xx answers become
// *APIError values whose Message is the server's text, unchanged, so the
// shell can show it to the user. Network failures wrap ErrUnavailable, and
// 401/403 answers match ErrUnauthorized with errors.Is.
package client
