// Package services contains server-side business logic. This file implements
// AccountService: signup with an emailed OTP, verification, login that mints
// a JWT for one role, and token introspection.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/dmitrijs2005/mybestvenue/internal/dbx"
	"github.com/dmitrijs2005/mybestvenue/internal/logging"
	"github.com/dmitrijs2005/mybestvenue/internal/server/auth"
	"github.com/dmitrijs2005/mybestvenue/internal/server/config"
	"github.com/dmitrijs2005/mybestvenue/internal/server/models"
	"github.com/dmitrijs2005/mybestvenue/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/mybestvenue/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const otpDigits = 6

// SignupInput is what a new account is created from.
type SignupInput struct {
	Role         string
	Name         string
	BusinessName string
	Email        string
	Password     string
}

type AccountService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
	otpValidity   time.Duration
	bcryptCost    int
	now           func() time.Time
}

// NewAccountService builds the service. db may be nil when rm keeps
// accounts in memory; transactions are skipped then.
func NewAccountService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AccountService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &AccountService{
		db:            db,
		repomanager:   rm,
		logger:        logger,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
		otpValidity:   cfg.OTPValidity,
		bcryptCost:    bcrypt.DefaultCost,
		now:           time.Now,
	}
}

func (s *AccountService) withTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error {
	if s.db == nil {
		return fn(ctx, s.repomanager.Accounts(nil))
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.repomanager.Accounts(tx))
	})
}

func (s *AccountService) repo() accounts.Repository {
	if s.db == nil {
		return s.repomanager.Accounts(nil)
	}
	return s.repomanager.Accounts(s.db)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an unverified account and returns it together with the OTP
// that has to be confirmed before the first login.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.Account, string, error) {
	if !models.ValidRole(in.Role) {
		return nil, "", fmt.Errorf("%w: %q", common.ErrorUnknownRole, in.Role)
	}
	email := normalizeEmail(in.Email)
	if !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if in.Password == "" {
		return nil, "", fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if in.Role == models.RoleVendor && strings.TrimSpace(in.BusinessName) == "" {
		return nil, "", fmt.Errorf("%w: business name is required", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	otp, err := common.GenerateOTP(otpDigits)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Role:         in.Role,
		Name:         strings.TrimSpace(in.Name),
		BusinessName: strings.TrimSpace(in.BusinessName),
		Email:        email,
		PasswordHash: hash,
		OTP:          otp,
		OTPExpires:   s.now().Add(s.otpValidity),
	}

	account, err = s.repo().Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info(ctx, "account created", "user_id", account.ID, "role", account.Role)
	// No mailer here: the code is only visible with -l debug.
	s.logger.Debug(ctx, "signup otp issued", "user_id", account.ID, "otp", otp)
	return account, otp, nil
}

// VerifyOTP confirms a signup. Unknown ids, wrong codes and expired codes all
// return common.ErrorInvalidOTP. Verifying twice is not an error.
func (s *AccountService) VerifyOTP(ctx context.Context, userID, otp string) error {
	return s.withTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		account, err := repo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorInvalidOTP
			}
			return fmt.Errorf("error loading account: %w", err)
		}

		if account.Verified {
			return nil
		}
		if account.OTP == "" || subtle.ConstantTimeCompare([]byte(account.OTP), []byte(otp)) != 1 {
			return common.ErrorInvalidOTP
		}
		if s.now().After(account.OTPExpires) {
			return common.ErrorInvalidOTP
		}

		return repo.MarkVerified(ctx, account.ID)
	})
}

// Login checks the password of the role's account and mints a token.
func (s *AccountService) Login(ctx context.Context, role, email, password string) (string, *models.Account, error) {
	if !models.ValidRole(role) {
		return "", nil, fmt.Errorf("%w: %q", common.ErrorUnknownRole, role)
	}

	account, err := s.repo().GetByEmail(ctx, role, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return "", nil, common.ErrorUnauthorized
	}
	if !account.Verified {
		return "", nil, common.ErrorNotVerified
	}

	token, err := auth.GenerateToken(account.ID, account.Role, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	return token, account, nil
}

// Me returns the account a token was issued for.
func (s *AccountService) Me(ctx context.Context, token string) (*models.Account, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	account, err := s.repo().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}
	if account.Role != claims.Role {
		return nil, common.ErrInvalidToken
	}
	return account, nil
}
