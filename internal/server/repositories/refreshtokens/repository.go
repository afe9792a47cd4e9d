// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find looks up a refresh token by its opaque token string and returns its metadata.
	// It returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Take is Find followed by Delete as one step, so a token can be
	// redeemed at most once.
	Take(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token by its token string. Deleting a non-existent
	// token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteForUser revokes every token issued to userID.
	DeleteForUser(ctx context.Context, userID string) error
}
