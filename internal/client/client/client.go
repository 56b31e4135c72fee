package client

import (
	"context"

	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
)

// AuthResult is a successful login: the token and the profile for the channel.
type AuthResult struct {
	Token   string
	Profile models.Profile
}

// SignupForm is what a new account is created from.
type SignupForm struct {
	Name         string
	BusinessName string
	Email        string
	Password     []byte
}

// Client is the authentication collaborator.
type Client interface {
	Login(ctx context.Context, role models.Role, email string, password []byte) (*AuthResult, error)
	Signup(ctx context.Context, role models.Role, form SignupForm) (userID string, err error)
	VerifyOTP(ctx context.Context, role models.Role, userID, otp string) error
	Me(ctx context.Context, token string) (*models.Profile, error)
	Ping(ctx context.Context) error
	Close() error
}
