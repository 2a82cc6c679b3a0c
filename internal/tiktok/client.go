// Package tiktok implements the outbound OAuth calls to the TikTok open API.
package tiktok

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/secondary4432-cyber/framelift-ai/internal/config"
	"github.com/secondary4432-cyber/framelift-ai/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Endpoint is the TikTok OAuth 2.0 v2 endpoint pair.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://www.tiktok.com/v2/auth/authorize",
	TokenURL: "https://open.tiktokapis.com/v2/oauth/token/",
}

// Client performs the authorization-code exchange against TikTok. The token
// payload is treated as opaque: bytes in, bytes out, no field interpretation.
type Client struct {
	client       *http.Client
	oauth2Config *oauth2.Config
	tokenURL     string
	clientKey    string
	clientSecret string
}

type ClientParams struct {
	fx.In

	Config *config.Config
}

// NewClient creates a Client from the platform credentials in cfg.
func NewClient(params ClientParams) *Client {
	cfg := params.Config.TikTok
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientKey,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     Endpoint,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"user.info.basic", "video.upload"},
		},
		tokenURL:     Endpoint.TokenURL,
		clientKey:    cfg.ClientKey,
		clientSecret: cfg.ClientSecret,
	}
}

// SetTokenURL overrides the token endpoint. Used by tests to point the
// exchange at a mock upstream.
func (c *Client) SetTokenURL(u string) {
	c.tokenURL = u
}

// SetTimeout sets the timeout for the HTTP client
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// AuthCodeURL returns the TikTok authorization URL for the given state.
// TikTok expects "client_key" where standard OAuth uses "client_id", so the
// key is appended under its TikTok name as well.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth2Config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("client_key", c.clientKey),
	)
}

// ExchangeCode trades an authorization code for the platform's token payload.
// The credentials and code travel as URL parameters of the POST. The payload
// is returned verbatim; TikTok owns its shape.
func (c *Client) ExchangeCode(ctx context.Context, code string) ([]byte, error) {
	params := url.Values{}
	params.Set("client_key", c.clientKey)
	params.Set("client_secret", c.clientSecret)
	params.Set("code", code)
	params.Set("grant_type", "authorization_code")

	endpoint := c.tokenURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close token response body", zap.Error(closeErr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("Token endpoint returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	return body, nil
}

// Module provides the TikTok client dependencies
var Module = fx.Options(
	fx.Provide(
		NewClient,
	),
)
