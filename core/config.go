package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	AppName string
	Env     string // DEV (default), TEST, QA, PROD
	Debug   bool
	Build   string

	RollbarToken string

	API struct {
		BaseURL        string
		RequestTimeout time.Duration
	}

	Session struct {
		StatePath       string // persisted auth state file
		RefreshInterval time.Duration
		// RefreshLeeway is how long before token expiry a refresh is forced,
		// regardless of RefreshInterval.
		RefreshLeeway time.Duration
	}
}

// NewConfig loads configuration from the environment.
// A `.env.<env>` file in the working directory is loaded first if present.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "FSES")
	v.SetDefault("apiBaseUrl", "http://localhost:8000/api")
	v.SetDefault("apiRequestTimeout", 30*time.Second)
	v.SetDefault("sessionStatePath", defaultStatePath())
	v.SetDefault("sessionRefreshInterval", 10*time.Minute)
	v.SetDefault("sessionRefreshLeeway", time.Minute)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("build", "")

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(".", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "config.os.Stat(%s)", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.API.BaseURL = strings.TrimRight(v.GetString("apiBaseUrl"), "/")
	conf.API.RequestTimeout = v.GetDuration("apiRequestTimeout")
	conf.Session.StatePath = v.GetString("sessionStatePath")
	conf.Session.RefreshInterval = v.GetDuration("sessionRefreshInterval")
	conf.Session.RefreshLeeway = v.GetDuration("sessionRefreshLeeway")
	return conf, nil
}

func (c *Config) IsTest() bool { return c.Env == "TEST" }

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "fses", "auth_state.json")
}
