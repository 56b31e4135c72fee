// Package accounts stores the auth server's accounts, in Postgres or in memory.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/mybestvenue/internal/server/models"
)

// Repository is keyed by id and by (role, email).
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, role, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	MarkVerified(ctx context.Context, id string) error
}
