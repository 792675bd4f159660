package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable consumed by the console.
const EnvPrefix = "STOREHUB"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App         AppConfig
	API         APIConfig
	Credentials CredentialsConfig
	Realtime    RealtimeConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	cfg.Credentials.ensurePath()
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREHUB_APP_ENV" default:"development"`
	LogLevel     string `envconfig:"STOREHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL string        `envconfig:"STOREHUB_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"STOREHUB_API_TIMEOUT" default:"30s"`
}

func (a APIConfig) validate() error {
	parsed, err := url.Parse(strings.TrimSpace(a.BaseURL))
	if err != nil {
		return fmt.Errorf("parsing api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api base url must be http or https, got %q", a.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api base url missing host")
	}
	return nil
}

// RealtimeURL derives the push endpoint from the API base URL: the versioned
// path suffix is stripped and the scheme switched to websocket.
func (a APIConfig) RealtimeURL() string {
	parsed, err := url.Parse(strings.TrimSpace(a.BaseURL))
	if err != nil {
		return ""
	}
	parsed.Path = strings.TrimSuffix(strings.TrimSuffix(parsed.Path, "/"), "/api/v1")
	switch parsed.Scheme {
	case "https":
		parsed.Scheme = "wss"
	default:
		parsed.Scheme = "ws"
	}
	return parsed.String()
}

type CredentialsConfig struct {
	Path string `envconfig:"STOREHUB_CREDENTIALS_PATH"`
}

func (c *CredentialsConfig) ensurePath() {
	if c.Path != "" {
		return
	}
	base, err := os.UserConfigDir()
	if err != nil {
		// No config dir (headless CI). The session store treats an empty
		// path as "no storage available" and answers as unauthenticated.
		return
	}
	c.Path = filepath.Join(base, "storehub", "credentials.json")
}

type RealtimeConfig struct {
	ReconnectAttempts int           `envconfig:"STOREHUB_REALTIME_RECONNECT_ATTEMPTS" default:"5"`
	ReconnectDelay    time.Duration `envconfig:"STOREHUB_REALTIME_RECONNECT_DELAY" default:"1s"`
	HandshakeTimeout  time.Duration `envconfig:"STOREHUB_REALTIME_HANDSHAKE_TIMEOUT" default:"10s"`
}
