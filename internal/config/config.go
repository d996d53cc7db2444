package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config exposes the runtime configuration consumed across the service.
type Config interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDatabaseDSN() string
	GetDeviceDBPath() string
	GetMagicLinkScheme() string
	GetSigningSecret() string
	GetTokenLifetime() time.Duration
}

// insecureDefaultSecret is the hardcoded secret the legacy deployment fell
// back to. Startup must fail rather than silently run with it.
const insecureDefaultSecret = "semdex-secret-key-2026"

type envVars struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	AppName         string        `env:"APP_NAME" envDefault:"SEMDEX Auth"`
	Env             string        `env:"ENV" envDefault:"DEV"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	DeviceDBPath    string        `env:"DEVICE_DB_PATH" envDefault:"./data/devices.db"`
	MagicLinkScheme string        `env:"MAGIC_LINK_SCHEME" envDefault:"semdex"`
	SigningSecret   string        `env:"SIGNING_SECRET"`
	TokenLifetime   time.Duration `env:"TOKEN_LIFETIME" envDefault:"720h"`
}

// Load reads configuration from the environment. It fails when the signing
// secret is absent or matches the known insecure default.
func Load() (Config, error) {
	var vars envVars
	if err := env.Parse(&vars); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(vars.SigningSecret) == "" {
		return nil, errors.New("SIGNING_SECRET is required")
	}
	if vars.SigningSecret == insecureDefaultSecret {
		return nil, errors.New("SIGNING_SECRET matches a known insecure default and must be changed")
	}
	return vars, nil
}

func (e envVars) GetPort() string {
	port := e.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (e envVars) GetAppName() string { return e.AppName }

func (e envVars) GetEnv() string { return e.Env }

func (e envVars) GetDatabaseDSN() string { return e.DatabaseDSN }

func (e envVars) GetDeviceDBPath() string { return e.DeviceDBPath }

func (e envVars) GetMagicLinkScheme() string { return e.MagicLinkScheme }

func (e envVars) GetSigningSecret() string { return e.SigningSecret }

func (e envVars) GetTokenLifetime() time.Duration { return e.TokenLifetime }
