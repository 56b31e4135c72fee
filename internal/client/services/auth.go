// Package services contains application services for the MyBestVenue shell.
// This file defines the authentication service: role login against the API,
// signup with OTP verification, and the liveness probe. Successful logins
// land in the session manager; failures are recorded on the role channel.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/mybestvenue/internal/client/client"
	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
	"github.com/dmitrijs2005/mybestvenue/internal/client/session"
	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/dmitrijs2005/mybestvenue/internal/logging"
)

const (
	LoginFailedMessage = "Login failed. Please try again."
	OTPFailedMessage   = "OTP Verification failed. Please try again."
	OTPInvalidMessage  = "Please enter a valid 6-digit OTP."

	SessionExpiredMessage = "Session expired. Please log in again."
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// Message turns an error from this service into the text shown to the user.
// Server messages pass through verbatim; otherwise fallback is used.
func Message(err error, fallback string) string {
	if errors.Is(err, common.ErrorInvalidOTP) {
		return OTPInvalidMessage
	}
	return client.UserMessage(err, fallback)
}

// ValidOTP reports whether otp is exactly six ASCII digits.
func ValidOTP(otp string) bool {
	return otpPattern.MatchString(otp)
}

// AuthService defines authentication operations for the shell.
//
// Contract:
//   - Login: authenticate one role against the API and store the channel.
//   - Signup: create an account for a role; returns the pending user id.
//   - VerifyOTP: confirm a pending signup with the emailed code.
//   - Whoami: ask the API who the effective session belongs to.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, role models.Role, email string, password []byte) error
	Signup(ctx context.Context, role models.Role, form client.SignupForm) (string, error)
	VerifyOTP(ctx context.Context, role models.Role, userID, otp string) error
	Whoami(ctx context.Context) (*models.Profile, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions *session.Manager
	logger   logging.Logger
}

// NewAuthService binds the API client to the session manager.
func NewAuthService(c client.Client, sessions *session.Manager, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: c, sessions: sessions, logger: logger}
}

// Login authenticates against the API and, on success, writes token and
// profile for role. A failed login leaves the stored channel untouched and
// records the user-facing message as the channel's last error.
func (a *authService) Login(ctx context.Context, role models.Role, email string, password []byte) error {
	defer common.WipeByteArray(password)

	if !role.Valid() {
		return fmt.Errorf("%w: %q", common.ErrorUnknownRole, role)
	}

	res, err := a.client.Login(ctx, role, strings.TrimSpace(email), password)
	if err != nil {
		msg := client.UserMessage(err, LoginFailedMessage)
		a.sessions.SetError(role, msg)
		a.logger.Warn(ctx, "login failed", "role", role.String(), "error", err)
		return fmt.Errorf("login: %w", err)
	}

	if err := a.sessions.SetCredentials(ctx, role, res.Token, res.Profile); err != nil {
		a.sessions.SetError(role, LoginFailedMessage)
		return fmt.Errorf("store credentials: %w", err)
	}
	a.sessions.ClearError(role)
	return nil
}

func (a *authService) Signup(ctx context.Context, role models.Role, form client.SignupForm) (string, error) {
	defer common.WipeByteArray(form.Password)

	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrorUnknownRole, role)
	}
	if strings.TrimSpace(form.Email) == "" || len(form.Password) == 0 {
		return "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}
	if role == models.RoleVendor && strings.TrimSpace(form.BusinessName) == "" {
		return "", fmt.Errorf("%w: business name is required for vendors", common.ErrorValidation)
	}

	userID, err := a.client.Signup(ctx, role, form)
	if err != nil {
		return "", err
	}
	a.logger.Info(ctx, "signup accepted, awaiting otp", "role", role.String(), "user_id", userID)
	return userID, nil
}

// VerifyOTP rejects anything that is not six digits before calling the API.
func (a *authService) VerifyOTP(ctx context.Context, role models.Role, userID, otp string) error {
	otp = strings.TrimSpace(otp)
	if !ValidOTP(otp) {
		return common.ErrorInvalidOTP
	}

	if err := a.client.VerifyOTP(ctx, role, userID, otp); err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	return nil
}

// Whoami checks the effective session's token with the API. Expiry shows up
// here as ErrUnauthorized; the channel is flagged but not cleared, since only
// an explicit logout removes stored credentials.
func (a *authService) Whoami(ctx context.Context) (*models.Profile, error) {
	eff := a.sessions.Effective()
	if eff.Anonymous {
		return nil, session.ErrNotAuthenticated
	}

	rec := a.sessions.Record(eff.Role)
	p, err := a.client.Me(ctx, rec.Token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.sessions.SetError(eff.Role, client.UserMessage(err, SessionExpiredMessage))
		}
		return nil, err
	}
	return p, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
