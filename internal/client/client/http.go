package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mybestvenue/internal/api"
	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/go-resty/resty/v2"
)

// HTTPClient implements Client against the JSON API.
type HTTPClient struct {
	rc *resty.Client
}

// NewHTTPClient builds a client for baseURL. A zero timeout means no timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &HTTPClient{rc: rc}
}

// do sends one request and decodes the envelope into out (may be nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any, token string) error {
	var failure api.Envelope[json.RawMessage]
	success := api.Envelope[json.RawMessage]{}

	req := c.rc.R().
		SetContext(ctx).
		SetResult(&success).
		SetError(&failure)
	if body != nil {
		req.SetBody(body)
	}
	if token != "" {
		req.SetHeader(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: failure.Message}
	}

	if out == nil {
		return nil
	}
	if len(success.Data) == 0 {
		return fmt.Errorf("%w: empty data", ErrMalformedResponse)
	}
	if err := json.Unmarshal(success.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, role models.Role, email string, password []byte) (*AuthResult, error) {
	var data api.LoginData
	body := api.LoginRequest{Email: email, Password: string(password)}
	if err := c.do(ctx, resty.MethodPost, api.LoginPath(role.String()), body, &data, ""); err != nil {
		return nil, err
	}

	res := &AuthResult{Token: data.Token}
	if len(data.Profile) > 0 && string(data.Profile) != "null" {
		if err := json.Unmarshal(data.Profile, &res.Profile); err != nil {
			return nil, fmt.Errorf("%w: profile: %v", ErrMalformedResponse, err)
		}
	}
	return res, nil
}

func (c *HTTPClient) Signup(ctx context.Context, role models.Role, form SignupForm) (string, error) {
	var data api.SignupData
	body := api.SignupRequest{
		Name:         form.Name,
		BusinessName: form.BusinessName,
		Email:        form.Email,
		Password:     string(form.Password),
	}
	if err := c.do(ctx, resty.MethodPost, api.SignupPath(role.String()), body, &data, ""); err != nil {
		return "", err
	}
	return data.UserID, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, role models.Role, userID, otp string) error {
	body := api.VerifyOTPRequest{UserID: userID, OTP: otp}
	return c.do(ctx, resty.MethodPost, api.VerifyOTPPath(role.String()), body, nil, "")
}

// Me asks the API who token belongs to. An expired or revoked token comes
// back as an error matching ErrUnauthorized.
func (c *HTTPClient) Me(ctx context.Context, token string) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, resty.MethodGet, api.MePath, nil, &p, token); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.do(ctx, resty.MethodGet, api.PingPath, nil, nil, "")
}

func (c *HTTPClient) Close() error {
	c.rc.GetClient().CloseIdleConnections()
	return nil
}
