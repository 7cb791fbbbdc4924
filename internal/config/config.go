package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var ErrMissingCredentials = errors.New("SPOTOPTION_URL, SPOTOPTION_USERNAME and SPOTOPTION_PASSWORD are required")

type Config struct {
	Env        string
	SpotOption SpotOptionConfig
	Log        LogConfig
}

type SpotOptionConfig struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment, a .env file and, when path is
// not empty, a config file in any format viper understands.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		SpotOption: SpotOptionConfig{
			URL:      v.GetString("SPOTOPTION_URL"),
			Username: v.GetString("SPOTOPTION_USERNAME"),
			Password: v.GetString("SPOTOPTION_PASSWORD"),
			Timeout:  parseDuration(v.GetString("SPOTOPTION_TIMEOUT"), 30*time.Second),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.SpotOption.URL == "" || cfg.SpotOption.Username == "" || cfg.SpotOption.Password == "" {
		return nil, ErrMissingCredentials
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("SPOTOPTION_URL", "")
	v.SetDefault("SPOTOPTION_USERNAME", "")
	v.SetDefault("SPOTOPTION_PASSWORD", "")
	v.SetDefault("SPOTOPTION_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
