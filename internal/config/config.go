package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dozor-fleet/gpsdozor-client/pkg/gpsdozor"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIUser           string        `mapstructure:"api_user"`
	APIPass           string        `mapstructure:"api_pass"`
	APIBaseURL        string        `mapstructure:"api_base_url"`
	APITimeoutSeconds int64         `mapstructure:"api_timeout_seconds"`
	APITimeout        time.Duration `mapstructure:"-"`

	ProxyListenAddr string `mapstructure:"proxy_listen_addr"`
	ProxyRoutesFile string `mapstructure:"proxy_routes_file"`
	ProxyStaticDir  string `mapstructure:"proxy_static_dir"`
}

// Load reads configuration from environment variables and the optional configs/.env file.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "gpsdozor-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_user", gpsdozor.DefaultUser)
	v.SetDefault("api_pass", gpsdozor.DefaultPass)
	v.SetDefault("api_base_url", gpsdozor.DefaultBaseURL)
	v.SetDefault("api_timeout_seconds", 0) // no client-side timeout
	v.SetDefault("proxy_listen_addr", ":5173")
	v.SetDefault("proxy_routes_file", "")
	v.SetDefault("proxy_static_dir", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("invalid api_base_url (must not be empty)")
	}
	if cfg.APITimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid api_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.APITimeout = time.Duration(cfg.APITimeoutSeconds) * time.Second

	if strings.TrimSpace(cfg.ProxyListenAddr) == "" {
		return nil, fmt.Errorf("invalid proxy_listen_addr (must not be empty)")
	}

	return &cfg, nil
}

// ClientConfig maps the loaded settings onto the API client configuration.
func (c *Config) ClientConfig() gpsdozor.Config {
	return gpsdozor.Config{
		BaseURL: c.APIBaseURL,
		Credentials: gpsdozor.Credentials{
			User: c.APIUser,
			Pass: c.APIPass,
		},
		Timeout: c.APITimeout,
	}
}

// MarshalLog keeps secrets out of structured logs.
func (c Config) MarshalLog() map[string]any {
	return map[string]any{
		"app_name":            c.AppName,
		"app_env":             c.Env,
		"log_level":           c.LogLevel,
		"api_user":            c.APIUser,
		"api_base_url":        c.APIBaseURL,
		"api_timeout_seconds": c.APITimeoutSeconds,
		"proxy_listen_addr":   c.ProxyListenAddr,
		"proxy_routes_file":   c.ProxyRoutesFile,
		"proxy_static_dir":    c.ProxyStaticDir,
	}
}
