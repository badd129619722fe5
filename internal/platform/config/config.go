package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/migrations"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

//go:embed defaults.toml
var defaultConfig []byte

// OverrideFileName is merged over the built-in defaults when present in DATA_DIR.
const OverrideFileName = "rates.toml"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgsql"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	DataDir      string
	ConfigFile   string // override file that was merged, if any

	DatabaseDriver   string
	DatabaseURL      string
	MigrateOnStartup bool
	Migrations       []migrations.Step

	ReferenceCurrency string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AuthRateLimit     string

	CORSAllowedOrigins []string
	MetricsEnabled     bool

	Log       LogConfig
	Providers ProvidersConfig
}

// LogConfig controls the slog handler and optional file rotation.
type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ProvidersConfig groups the external rate sources.
type ProvidersConfig struct {
	ECB ECBConfig `mapstructure:"ecb"`
	IEX IEXConfig `mapstructure:"iex"`
}

// ECBConfig configures the European Central Bank fiat reference rates.
type ECBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
	URL      string `mapstructure:"url"`
}

// IEXConfig configures IEX Cloud crypto quotes.
type IEXConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Schedule string   `mapstructure:"schedule"`
	URL      string   `mapstructure:"url"`
	Token    string   `mapstructure:"token"`
	Symbols  []string `mapstructure:"symbols"`
}

// LoadConfig loads configuration from the built-in defaults, an optional
// $DATA_DIR/rates.toml, a .env file and the environment, in increasing priority.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("%w: reading built-in defaults: %w", apperrors.ErrConfiguration, err)
	}

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DATA_DIR", ".")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MIGRATE_ON_STARTUP", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "720h")
	v.SetDefault("JWT_ISSUER", "exchange-rates-app")
	v.SetDefault("AUTH_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	cfg.DataDir = v.GetString("DATA_DIR")

	override := filepath.Join(cfg.DataDir, OverrideFileName)
	if _, err := os.Stat(override); err == nil {
		v.SetConfigFile(override)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("%w: merging %s: %w", apperrors.ErrConfiguration, override, err)
		}
		cfg.ConfigFile = override
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: checking %s: %w", apperrors.ErrConfiguration, override, err)
	}

	cfg.Port = v.GetString("PORT")
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	cfg.DatabaseDriver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	cfg.DatabaseURL = v.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" && cfg.DatabaseDriver == DriverSQLite {
		cfg.DatabaseURL = filepath.Join(cfg.DataDir, "rates.db")
	}
	cfg.MigrateOnStartup = v.GetBool("MIGRATE_ON_STARTUP")
	if err := v.UnmarshalKey("migrations", &cfg.Migrations); err != nil {
		return nil, fmt.Errorf("%w: decoding migrations: %w", apperrors.ErrConfiguration, err)
	}

	cfg.ReferenceCurrency = strings.ToUpper(strings.TrimSpace(v.GetString("REFERENCE_CURRENCY")))

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiry <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_EXPIRY_DURATION %q", apperrors.ErrConfiguration, jwtExpiryStr)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	cfg.AuthRateLimit = v.GetString("AUTH_RATE_LIMIT")

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.MetricsEnabled = v.GetBool("METRICS_ENABLED")

	cfg.Log = LogConfig{
		Level:      v.GetString("LOG_LEVEL"),
		Format:     v.GetString("LOG_FORMAT"),
		File:       v.GetString("LOG_FILE"),
		MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
		MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
	}

	cfg.Providers = ProvidersConfig{
		ECB: ECBConfig{
			Enabled:  v.GetBool("providers.ecb.enabled"),
			Schedule: v.GetString("providers.ecb.schedule"),
			URL:      v.GetString("providers.ecb.url"),
		},
		IEX: IEXConfig{
			Enabled:  v.GetBool("providers.iex.enabled"),
			Schedule: v.GetString("providers.iex.schedule"),
			URL:      v.GetString("providers.iex.url"),
			Token:    v.GetString("providers.iex.token"),
			Symbols:  v.GetStringSlice("providers.iex.symbols"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at runtime.
// Migration steps are validated by the migration engine on each run.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unsupported DATABASE_DRIVER %q", apperrors.ErrConfiguration, c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required for driver %s", apperrors.ErrConfiguration, c.DatabaseDriver)
	}
	if c.ReferenceCurrency == "" {
		return fmt.Errorf("%w: reference_currency must not be empty", apperrors.ErrConfiguration)
	}
	if c.Providers.ECB.Enabled {
		if _, err := cron.ParseStandard(c.Providers.ECB.Schedule); err != nil {
			return fmt.Errorf("%w: providers.ecb.schedule: %w", apperrors.ErrConfiguration, err)
		}
	}
	if c.Providers.IEX.Enabled {
		if _, err := cron.ParseStandard(c.Providers.IEX.Schedule); err != nil {
			return fmt.Errorf("%w: providers.iex.schedule: %w", apperrors.ErrConfiguration, err)
		}
		if c.Providers.IEX.Token == "" {
			return fmt.Errorf("%w: providers.iex.token is required when the IEX provider is enabled", apperrors.ErrConfiguration)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultMigrations decodes the migration steps from the built-in defaults only,
// ignoring overrides and the environment.
func DefaultMigrations() ([]migrations.Step, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("%w: reading built-in defaults: %w", apperrors.ErrConfiguration, err)
	}
	var steps []migrations.Step
	if err := v.UnmarshalKey("migrations", &steps); err != nil {
		return nil, fmt.Errorf("%w: decoding migrations: %w", apperrors.ErrConfiguration, err)
	}
	return steps, nil
}
