package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Server     ServerConfig
	Google     GoogleConfig
	Slack      SlackConfig
	Media      MediaConfig
	Cache      CacheConfig
	SelfHosted bool
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings. An empty Addr disables Redis:
// the profile cache falls back to in-process memory and the live sale feed is
// not served.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// Enabled reports whether a Redis address is configured.
func (c *RedisConfig) Enabled() bool { return c.Addr != "" }

// JWTConfig holds JWT authentication settings.
type JWTConfig struct {
	Secret     string //nolint:gosec // G117: JWT signing secret config
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// GoogleConfig holds Google OAuth sign-in settings. Both ClientID and
// ClientSecret must be set for the OAuth routes to be mounted.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string //nolint:gosec // G117: OAuth client config
	RedirectURL  string
}

// Enabled reports whether Google sign-in is configured.
func (c *GoogleConfig) Enabled() bool { return c.ClientID != "" && c.ClientSecret != "" }

// SlackConfig holds Slack lead-notification settings.
type SlackConfig struct {
	BotToken string
	Channel  string
}

// Enabled reports whether Slack notifications are configured.
func (c *SlackConfig) Enabled() bool { return c.BotToken != "" && c.Channel != "" }

// MediaConfig holds vehicle media storage settings. An empty Root disables
// local media storage; vehicle deletion then skips media release.
type MediaConfig struct {
	Root string
}

// CacheConfig holds profile cache settings.
type CacheConfig struct {
	ProfileTTL time.Duration
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production,
// sensitive values (JWT secret, DB password) must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("DEALERD_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("DEALERD_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("DEALERD_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	accessTTL, err := getEnvDuration("DEALERD_JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	refreshTTL, err := getEnvDuration("DEALERD_JWT_REFRESH_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("DEALERD_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("DEALERD_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	profileTTL, err := getEnvDuration("DEALERD_PROFILE_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	selfHosted, err := getEnvBool("DEALERD_SELF_HOSTED", false)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("DEALERD_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DEALERD_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DEALERD_DB_USER", "dealerd"),
			Password: getEnv("DEALERD_DB_PASSWORD", ""),
			DBName:   getEnv("DEALERD_DB_NAME", "dealerd_dev"),
			SSLMode:  getEnv("DEALERD_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("DEALERD_REDIS_ADDR", ""),
			Password: getEnv("DEALERD_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:     getEnv("DEALERD_JWT_SECRET", ""),
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
		Server: ServerConfig{
			Addr:         getEnv("DEALERD_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
		},
		Google: GoogleConfig{
			ClientID:     getEnv("DEALERD_GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("DEALERD_GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("DEALERD_GOOGLE_REDIRECT_URL", ""),
		},
		Slack: SlackConfig{
			BotToken: getEnv("DEALERD_SLACK_BOT_TOKEN", ""),
			Channel:  getEnv("DEALERD_SLACK_CHANNEL", ""),
		},
		Media: MediaConfig{
			Root: getEnv("DEALERD_MEDIA_ROOT", ""),
		},
		Cache: CacheConfig{
			ProfileTTL: profileTTL,
		},
		SelfHosted: selfHosted,
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// JWT secret is required (no insecure default).
	if c.JWT.Secret == "" {
		return errors.New("DEALERD_JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("DEALERD_JWT_SECRET must be at least 32 characters")
	}

	// DB SSL mode warning for non-self-hosted deployments.
	if c.Database.SSLMode == "disable" && !c.SelfHosted {
		log.Warn().Msg("DEALERD_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	if c.Google.Enabled() && c.Google.RedirectURL == "" {
		return errors.New("DEALERD_GOOGLE_REDIRECT_URL is required when Google sign-in is configured")
	}

	// Bounds checks.
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("DEALERD_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DEALERD_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("DEALERD_JWT_ACCESS_TTL must be positive, got %s", c.JWT.AccessTTL)
	}
	if c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("DEALERD_JWT_REFRESH_TTL must be positive, got %s", c.JWT.RefreshTTL)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("DEALERD_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("DEALERD_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Cache.ProfileTTL <= 0 {
		return fmt.Errorf("DEALERD_PROFILE_CACHE_TTL must be positive, got %s", c.Cache.ProfileTTL)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q as bool: %w", key, v, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
