// Package services contains application services for the Agent Synergy
// client: the session manager (AuthService) and thin typed wrappers over the
// REST resources.
package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/credentials"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
)

// APIClient is the part of *client.Client the services use.
type APIClient interface {
	Do(ctx context.Context, r *client.Request, out any) error
	Raw(ctx context.Context, r *client.Request) (json.RawMessage, error)
	Ping(ctx context.Context) (*models.HealthStatus, error)
	OnCredentialsCleared(h client.CredentialsClearedHandler)
}

// CredentialStore is the persisted token/user state. *credentials.Store
// satisfies it.
type CredentialStore interface {
	AccessToken(ctx context.Context) (string, error)
	User(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, p credentials.Pair) error
	SetUser(ctx context.Context, u *models.User) error
	Clear(ctx context.Context) error
}
