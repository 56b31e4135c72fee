package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/mybestvenue/internal/common"
)

// Messages the shell shows verbatim.
const (
	MsgInvalidRequest     = "Invalid request"
	MsgUnknownRole        = "Unknown role"
	MsgInvalidCredentials = "Invalid email or password"
	MsgNotVerified        = "Account not verified"
	MsgInvalidOTP         = "Invalid OTP"
	MsgAccountExists      = "An account with this email already exists"
	MsgInvalidToken       = "Invalid or expired token"
	MsgInternal           = "Internal server error"
)

// statusFor maps service errors to an HTTP status and user-facing message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorUnknownRole):
		return http.StatusNotFound, MsgUnknownRole
	case errors.Is(err, common.ErrorValidation):
		msg := strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
		return http.StatusBadRequest, capitalize(msg)
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, MsgAccountExists
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, MsgInvalidCredentials
	case errors.Is(err, common.ErrorNotVerified):
		return http.StatusForbidden, MsgNotVerified
	case errors.Is(err, common.ErrorInvalidOTP):
		return http.StatusBadRequest, MsgInvalidOTP
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, MsgInvalidToken
	}
	return http.StatusInternalServerError, MsgInternal
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
