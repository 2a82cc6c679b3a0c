package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("framelift version %s, commit %s, built at %s", version, commit, date)
}

// Config holds the full process configuration. It is built once at startup
// and treated as immutable; handlers receive it through their constructors.
type Config struct {
	Server      ServerConfig  `mapstructure:"server"`
	Logging     LoggingConfig `mapstructure:"logging"`
	TikTok      TikTokConfig  `mapstructure:"tiktok"`
	Media       MediaConfig   `mapstructure:"media"`
	FrontendURL string        `mapstructure:"frontend_url"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// TikTokConfig carries the platform OAuth credentials. TikTok names the
// client identifier "client_key" rather than "client_id".
type TikTokConfig struct {
	ClientKey    string `mapstructure:"client_key"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}

type MediaConfig struct {
	SpoolDir string `mapstructure:"spool_dir"`
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.Int("port", 0, "Listen port (overrides server.port)")
	pflag.String("frontend-url", "", "Frontend base URL for the post-auth redirect")
	// Note: no pflag.Parse() here as it's called in main.go
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("FRAMELIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.host", "")
	viper.SetDefault("frontend_url", "/")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.color", true)

	// Every key needs a default registered or AutomaticEnv will not surface
	// env-only values through Unmarshal.
	viper.SetDefault("tiktok.client_key", "")
	viper.SetDefault("tiktok.client_secret", "")
	viper.SetDefault("tiktok.redirect_uri", "")
	viper.SetDefault("media.spool_dir", "")

	// An on-disk config file is optional; env vars alone are enough.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/framelift")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if port := viper.GetInt("port"); port != 0 {
		config.Server.Port = port
	}
	if frontendURL := viper.GetString("frontend-url"); frontendURL != "" {
		config.FrontendURL = frontendURL
	}

	return &config, nil
}

// MissingCredentials returns the credential keys that are unset. The process
// still serves without them; the caller logs a warning so misconfiguration is
// visible at startup rather than on the first exchange.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.TikTok.ClientKey == "" {
		missing = append(missing, "tiktok.client_key")
	}
	if c.TikTok.ClientSecret == "" {
		missing = append(missing, "tiktok.client_secret")
	}
	if c.TikTok.RedirectURI == "" {
		missing = append(missing, "tiktok.redirect_uri")
	}
	return missing
}

// Redacted returns a copy safe for printing: the client secret is masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.TikTok.ClientSecret != "" {
		out.TikTok.ClientSecret = "********"
	}
	return out
}
