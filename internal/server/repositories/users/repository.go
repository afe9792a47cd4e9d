// Package users declares the account repository used by the dev backend.
package users

import (
	"context"

	"github.com/dmitrijs2005/agentsynergy/internal/server/models"
)

// Repository stores accounts. Lookups of absent users return
// common.ErrorNotFound; Create with a taken email returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
