package models

import "time"

// Roles an account can be created for. They match the shell's channels.
const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Account is one login for one role. The same email may hold one account per
// role.
type Account struct {
	ID           string
	Role         string
	Name         string
	BusinessName string
	Email        string
	PasswordHash []byte
	Verified     bool
	OTP          string
	OTPExpires   time.Time
	CreatedAt    time.Time
}

// Profile is what the shell stores next to the token.
type Profile struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	Name         string `json:"name,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email"`
}

func (a *Account) Profile() Profile {
	return Profile{
		ID:           a.ID,
		Role:         a.Role,
		Name:         a.Name,
		BusinessName: a.BusinessName,
		Email:        a.Email,
	}
}
