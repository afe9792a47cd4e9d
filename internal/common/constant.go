// Package common contains shared constants and sentinel errors used across
// Agent Synergy components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on outbound
	// requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the access token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates a logical request (including its retry)
	// across client and server logs.
	RequestIDHeaderName = "X-Request-ID"

	// APIPrefix is the versioned route prefix of the REST backend.
	APIPrefix = "/api/v1"
)
