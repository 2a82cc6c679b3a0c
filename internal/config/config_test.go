package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "/", cfg.FrontendURL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FRAMELIFT_SERVER_PORT", "8080")
	t.Setenv("FRAMELIFT_FRONTEND_URL", "https://app.example.com/auth")
	t.Setenv("FRAMELIFT_TIKTOK_CLIENT_KEY", "key123")
	t.Setenv("FRAMELIFT_TIKTOK_CLIENT_SECRET", "secret456")
	t.Setenv("FRAMELIFT_TIKTOK_REDIRECT_URI", "https://api.example.com/on_auth")

	cfg, err := Load()
	require.NoError(t, err)

	want := TikTokConfig{
		ClientKey:    "key123",
		ClientSecret: "secret456",
		RedirectURI:  "https://api.example.com/on_auth",
	}
	if diff := cmp.Diff(want, cfg.TikTok); diff != "" {
		t.Errorf("TikTok config mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://app.example.com/auth", cfg.FrontendURL)
}

func TestMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TikTokConfig
		missing []string
	}{
		{
			name:    "all unset",
			cfg:     TikTokConfig{},
			missing: []string{"tiktok.client_key", "tiktok.client_secret", "tiktok.redirect_uri"},
		},
		{
			name: "secret unset",
			cfg: TikTokConfig{
				ClientKey:   "key",
				RedirectURI: "https://example.com/on_auth",
			},
			missing: []string{"tiktok.client_secret"},
		},
		{
			name: "all set",
			cfg: TikTokConfig{
				ClientKey:    "key",
				ClientSecret: "secret",
				RedirectURI:  "https://example.com/on_auth",
			},
			missing: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{TikTok: tt.cfg}
			assert.Equal(t, tt.missing, cfg.MissingCredentials())
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{
		TikTok: TikTokConfig{
			ClientKey:    "key",
			ClientSecret: "topsecret",
		},
	}

	redacted := cfg.Redacted()
	assert.Equal(t, "********", redacted.TikTok.ClientSecret)
	assert.Equal(t, "key", redacted.TikTok.ClientKey)
	// The original stays untouched.
	assert.Equal(t, "topsecret", cfg.TikTok.ClientSecret)
}
