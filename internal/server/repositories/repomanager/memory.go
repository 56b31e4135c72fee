package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mybestvenue/internal/dbx"
	"github.com/dmitrijs2005/mybestvenue/internal/server/repositories/accounts"
)

// MemoryRepositoryManager hands out one shared in-memory store whatever
// connection it is given. There is no schema to migrate.
type MemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{accounts: accounts.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository {
	return m.accounts
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
