package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/mybestvenue/internal/api"
	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/dmitrijs2005/mybestvenue/internal/logging"
	"github.com/dmitrijs2005/mybestvenue/internal/server/models"
	"github.com/dmitrijs2005/mybestvenue/internal/server/services"
	"github.com/gin-gonic/gin"
)

const accountKey = "account"

// Accounts is the part of services.AccountService the handlers use.
type Accounts interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.Account, string, error)
	VerifyOTP(ctx context.Context, userID, otp string) error
	Login(ctx context.Context, role, email, password string) (string, *models.Account, error)
	Me(ctx context.Context, token string) (*models.Account, error)
}

type handlers struct {
	accounts Accounts
	logger   logging.Logger
}

func (h *handlers) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	RespondError(c, status, msg)
}

func (h *handlers) login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	token, account, err := h.accounts.Login(c.Request.Context(), c.Param("role"), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	profile, err := json.Marshal(account.Profile())
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, api.LoginData{Token: token, Profile: profile}, "Login successful")
}

func (h *handlers) signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	account, _, err := h.accounts.Signup(c.Request.Context(), services.SignupInput{
		Role:         c.Param("role"),
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Password:     req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondSuccess(c, http.StatusCreated, api.SignupData{UserID: account.ID}, "OTP sent to your email")
}

func (h *handlers) verifyOTP(c *gin.Context) {
	var req api.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		RespondError(c, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	if err := h.accounts.VerifyOTP(c.Request.Context(), req.UserID, req.OTP); err != nil {
		h.fail(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, nil, "Account verified")
}

// requireToken resolves the bearer token to an account before the handler.
func (h *handlers) requireToken(c *gin.Context) {
	header := c.GetHeader(common.AuthorizationHeaderName)
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || token == "" {
		RespondError(c, http.StatusUnauthorized, MsgInvalidToken)
		return
	}

	account, err := h.accounts.Me(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(accountKey, account)
	c.Next()
}

func (h *handlers) me(c *gin.Context) {
	account := c.MustGet(accountKey).(*models.Account)
	RespondSuccess(c, http.StatusOK, account.Profile(), "")
}

func (h *handlers) ping(c *gin.Context) {
	RespondSuccess(c, http.StatusOK, nil, "pong")
}
