package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/dmitrijs2005/mybestvenue/internal/dbx"
	"github.com/dmitrijs2005/mybestvenue/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (id, role, name, business_name, email, password_hash, verified, otp, otp_expires)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.Role, a.Name, a.BusinessName, a.Email, a.PasswordHash, a.Verified, a.OTP, a.OTPExpires,
	).Scan(&a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

const selectAccount = `SELECT id, role, name, business_name, email, password_hash, verified, otp, otp_expires, created_at
	FROM accounts`

func (r *PostgresRepository) scan(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Role, &a.Name, &a.BusinessName, &a.Email, &a.PasswordHash,
		&a.Verified, &a.OTP, &a.OTPExpires, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, role, email string) (*models.Account, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectAccount+` WHERE role = $1 AND email = $2`, role, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectAccount+` WHERE id = $1`, id))
}

// MarkVerified flips the verified flag and burns the OTP.
func (r *PostgresRepository) MarkVerified(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET verified = TRUE, otp = '' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
