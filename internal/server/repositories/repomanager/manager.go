package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mybestvenue/internal/dbx"
	"github.com/dmitrijs2005/mybestvenue/internal/server/repositories/accounts"
)

// RepositoryManager vends repositories bound to a connection or a
// transaction, and prepares the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
