// Package api holds the JSON shapes exchanged between the shell and the auth
// API. Every response is wrapped in an Envelope; on failure Message carries
// the text the shell shows to the user as is.
package api

import (
	"encoding/json"
	"fmt"
)

// Envelope is the common response wrapper.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData is the success payload of a login. Profile is passed through to
// the shell untouched.
type LoginData struct {
	Token   string          `json:"token"`
	Profile json.RawMessage `json:"profile"`
}

type SignupRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"businessName,omitempty"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

type SignupData struct {
	UserID string `json:"userId"`
}

type VerifyOTPRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

func LoginPath(role string) string {
	return fmt.Sprintf("/api/%s/login", role)
}

func SignupPath(role string) string {
	return fmt.Sprintf("/api/%s/signup", role)
}

func VerifyOTPPath(role string) string {
	return fmt.Sprintf("/api/%s/verify-otp", role)
}

const (
	MePath   = "/api/me"
	PingPath = "/ping"
)
