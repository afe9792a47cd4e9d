// Package client is the authenticated HTTP client for the Agent Synergy REST
// API.
//
// # Overview
//
// Client sends JSON requests relative to a base URL and API prefix
// (default "/api/v1"). An http.RoundTripper decorator (authTransport) reads
// the persisted access token on every call, sets the bearer header, and
// recovers from a 401 at most once per request by exchanging the refresh
// token and replaying the original request with the new token.
//
// When a 401 cannot be recovered (no refresh token, refresh rejected, or the
// replay is rejected too) the credentials are cleared and every registered
// CredentialsClearedHandler is invoked.
//
// # Error Handling
//
// Failures are typed and match with errors.As: *NetworkError, *HTTPError,
// *AuthExpiredError and *DecodeError. Coarse conditions match with errors.Is
// against ErrUnavailable and ErrUnauthorized.
//
// # Concurrency
//
// A Client is safe for concurrent use. Concurrent 401s share one in-flight
// refresh exchange.
package client
