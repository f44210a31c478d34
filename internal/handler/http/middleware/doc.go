// Package middleware provides per-client rate limiting for the HTTP API.
//
// Clients are keyed by IP. By default the TCP peer address is used; behind a
// reverse proxy, TrustedProxyExtractor reads X-Forwarded-For only from peers
// listed in the trusted proxy configuration.
package middleware
