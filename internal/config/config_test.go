package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helper function tests
// ---------------------------------------------------------------------------

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string // nil = don't set; pointer to distinguish "" from unset
		fallback string
		want     string
	}{
		{name: "returns fallback when unset", key: "DEALERD_TEST_GETENV_UNSET", setVal: nil, fallback: "default", want: "default"},
		{name: "returns env value when set", key: "DEALERD_TEST_GETENV_SET", setVal: strPtr("custom"), fallback: "default", want: "custom"},
		{name: "returns fallback when empty string", key: "DEALERD_TEST_GETENV_EMPTY", setVal: strPtr(""), fallback: "default", want: "default"},
		{name: "preserves whitespace", key: "DEALERD_TEST_GETENV_WS", setVal: strPtr("  spaced  "), fallback: "x", want: "  spaced  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got := getEnv(tc.key, tc.fallback)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback int
		want     int
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "DEALERD_TEST_INT_UNSET", setVal: nil, fallback: 42, want: 42},
		{name: "parses valid int", key: "DEALERD_TEST_INT_VALID", setVal: strPtr("8080"), fallback: 0, want: 8080},
		{name: "parses negative int", key: "DEALERD_TEST_INT_NEG", setVal: strPtr("-1"), fallback: 0, want: -1},
		{name: "returns fallback for empty string", key: "DEALERD_TEST_INT_EMPTY", setVal: strPtr(""), fallback: 25, want: 25},
		{name: "errors on non-numeric", key: "DEALERD_TEST_INT_NAN", setVal: strPtr("abc"), fallback: 0, wantErr: true},
		{name: "errors on float", key: "DEALERD_TEST_INT_FLOAT", setVal: strPtr("3.14"), fallback: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvInt(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback time.Duration
		want     time.Duration
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "DEALERD_TEST_DUR_UNSET", setVal: nil, fallback: 5 * time.Second, want: 5 * time.Second},
		{name: "parses minutes", key: "DEALERD_TEST_DUR_MIN", setVal: strPtr("15m"), fallback: 0, want: 15 * time.Minute},
		{name: "parses composite", key: "DEALERD_TEST_DUR_COMP", setVal: strPtr("1h30m"), fallback: 0, want: 90 * time.Minute},
		{name: "errors on invalid", key: "DEALERD_TEST_DUR_INV", setVal: strPtr("notaduration"), fallback: 0, wantErr: true},
		{name: "errors on bare number", key: "DEALERD_TEST_DUR_BARE", setVal: strPtr("30"), fallback: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvDuration(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ---------------------------------------------------------------------------
// Load() error cases
// ---------------------------------------------------------------------------

func TestLoad_MissingJWTSecret(t *testing.T) {
	// All defaults apply; JWT secret is empty => must fail.
	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DEALERD_JWT_SECRET")
}

func TestLoad_InvalidEnvVars(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		errMsg string
	}{
		{name: "DB_PORT not a number", envKey: "DEALERD_DB_PORT", envVal: "abc", errMsg: "DEALERD_DB_PORT"},
		{name: "DB_PORT zero", envKey: "DEALERD_DB_PORT", envVal: "0", errMsg: "DEALERD_DB_PORT"},
		{name: "DB_PORT too high", envKey: "DEALERD_DB_PORT", envVal: "65536", errMsg: "DEALERD_DB_PORT"},
		{name: "DB_MAX_CONNS zero", envKey: "DEALERD_DB_MAX_CONNS", envVal: "0", errMsg: "DEALERD_DB_MAX_CONNS"},
		{name: "JWT_ACCESS_TTL invalid", envKey: "DEALERD_JWT_ACCESS_TTL", envVal: "badval", errMsg: "DEALERD_JWT_ACCESS_TTL"},
		{name: "JWT_REFRESH_TTL zero", envKey: "DEALERD_JWT_REFRESH_TTL", envVal: "0s", errMsg: "DEALERD_JWT_REFRESH_TTL"},
		{name: "SERVER_READ_TIMEOUT zero", envKey: "DEALERD_SERVER_READ_TIMEOUT", envVal: "0s", errMsg: "DEALERD_SERVER_READ_TIMEOUT"},
		{name: "SERVER_WRITE_TIMEOUT invalid", envKey: "DEALERD_SERVER_WRITE_TIMEOUT", envVal: "notduration", errMsg: "DEALERD_SERVER_WRITE_TIMEOUT"},
		{name: "PROFILE_CACHE_TTL zero", envKey: "DEALERD_PROFILE_CACHE_TTL", envVal: "0s", errMsg: "DEALERD_PROFILE_CACHE_TTL"},
		{name: "REDIS_DB not a number", envKey: "DEALERD_REDIS_DB", envVal: "abc", errMsg: "DEALERD_REDIS_DB"},
		{name: "SELF_HOSTED not a bool", envKey: "DEALERD_SELF_HOSTED", envVal: "yes", errMsg: "DEALERD_SELF_HOSTED"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Always set JWT secret so failures are from the var under test.
			t.Setenv("DEALERD_JWT_SECRET", "test-secret-for-error-cases-32ch!")
			t.Setenv(tc.envKey, tc.envVal)

			cfg, err := Load()
			require.Error(t, err, "expected error for %s=%q", tc.envKey, tc.envVal)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoad_GoogleRequiresRedirectURL(t *testing.T) {
	t.Setenv("DEALERD_JWT_SECRET", "test-secret-for-error-cases-32ch!")
	t.Setenv("DEALERD_GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("DEALERD_GOOGLE_CLIENT_SECRET", "client-secret")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DEALERD_GOOGLE_REDIRECT_URL")
}

// ---------------------------------------------------------------------------
// Load() happy paths
// ---------------------------------------------------------------------------

func TestLoad_Defaults(t *testing.T) {
	// Only the required JWT secret is set; everything else uses defaults.
	t.Setenv("DEALERD_JWT_SECRET", "my-dev-secret-at-least-32-chars!!")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Database defaults.
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "dealerd", cfg.Database.User)
	assert.Empty(t, cfg.Database.Password)
	assert.Equal(t, "dealerd_dev", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxConns)

	// Redis is off unless an address is given.
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Redis.Enabled())

	// JWT defaults.
	assert.Equal(t, "my-dev-secret-at-least-32-chars!!", cfg.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)

	// Server defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	// Optional integrations are off by default.
	assert.False(t, cfg.Google.Enabled())
	assert.False(t, cfg.Slack.Enabled())
	assert.Empty(t, cfg.Media.Root)

	// Profile cache default.
	assert.Equal(t, 5*time.Minute, cfg.Cache.ProfileTTL)

	// Self-hosted default.
	assert.False(t, cfg.SelfHosted)
}

func TestLoad_AllCustomValues(t *testing.T) {
	envs := map[string]string{
		// Database
		"DEALERD_DB_HOST":      "db.prod.internal",
		"DEALERD_DB_PORT":      "5433",
		"DEALERD_DB_USER":      "prod_user",
		"DEALERD_DB_PASSWORD":  "s3cret!",
		"DEALERD_DB_NAME":      "dealerd_prod",
		"DEALERD_DB_SSLMODE":   "require",
		"DEALERD_DB_MAX_CONNS": "50",
		// Redis
		"DEALERD_REDIS_ADDR":     "redis.prod:6380",
		"DEALERD_REDIS_PASSWORD": "redis-pass",
		"DEALERD_REDIS_DB":       "3",
		// JWT
		"DEALERD_JWT_SECRET":      "prod-jwt-secret-256-bits-long!!!",
		"DEALERD_JWT_ACCESS_TTL":  "30m",
		"DEALERD_JWT_REFRESH_TTL": "72h",
		// Server
		"DEALERD_SERVER_ADDR":          ":9090",
		"DEALERD_SERVER_READ_TIMEOUT":  "5s",
		"DEALERD_SERVER_WRITE_TIMEOUT": "15s",
		// Google OAuth
		"DEALERD_GOOGLE_CLIENT_ID":     "gid",
		"DEALERD_GOOGLE_CLIENT_SECRET": "gsecret",
		"DEALERD_GOOGLE_REDIRECT_URL":  "https://lot.example/api/v1/auth/oauth/google/callback",
		// Slack
		"DEALERD_SLACK_BOT_TOKEN": "xoxb-test",
		"DEALERD_SLACK_CHANNEL":   "C012SALES",
		// Media
		"DEALERD_MEDIA_ROOT": "/var/lib/dealerd/media",
		// Profile cache
		"DEALERD_PROFILE_CACHE_TTL": "90s",
		// Self-hosted
		"DEALERD_SELF_HOSTED": "true",
	}

	for k, v := range envs {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Database
	assert.Equal(t, "db.prod.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "prod_user", cfg.Database.User)
	assert.Equal(t, "s3cret!", cfg.Database.Password)
	assert.Equal(t, "dealerd_prod", cfg.Database.DBName)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, 50, cfg.Database.MaxConns)

	// Redis
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "redis.prod:6380", cfg.Redis.Addr)
	assert.Equal(t, "redis-pass", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)

	// JWT
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 72*time.Hour, cfg.JWT.RefreshTTL)

	// Server
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)

	// Google OAuth
	assert.True(t, cfg.Google.Enabled())
	assert.Equal(t, "gid", cfg.Google.ClientID)
	assert.Equal(t, "https://lot.example/api/v1/auth/oauth/google/callback", cfg.Google.RedirectURL)

	// Slack
	assert.True(t, cfg.Slack.Enabled())
	assert.Equal(t, "xoxb-test", cfg.Slack.BotToken)
	assert.Equal(t, "C012SALES", cfg.Slack.Channel)

	// Media
	assert.Equal(t, "/var/lib/dealerd/media", cfg.Media.Root)

	// Profile cache
	assert.Equal(t, 90*time.Second, cfg.Cache.ProfileTTL)

	// Self-hosted
	assert.True(t, cfg.SelfHosted)
}

// ---------------------------------------------------------------------------
// DSN() output format
// ---------------------------------------------------------------------------

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "default dev values",
			cfg: DatabaseConfig{
				Host: "localhost", Port: 5432, User: "dealerd",
				Password: "", DBName: "dealerd_dev", SSLMode: "disable",
			},
			want: "host=localhost port=5432 user=dealerd password= dbname=dealerd_dev sslmode=disable",
		},
		{
			name: "production values",
			cfg: DatabaseConfig{
				Host: "db.prod", Port: 5433, User: "admin",
				Password: "p@ss!", DBName: "dealerd_prod", SSLMode: "require",
			},
			want: "host=db.prod port=5433 user=admin password=p@ss! dbname=dealerd_prod sslmode=require",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.cfg.DSN())
		})
	}
}

// ---------------------------------------------------------------------------
// validate() direct tests
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	// validBase returns a Config that passes validation.
	validBase := func() *Config {
		return &Config{
			Database: DatabaseConfig{Port: 5432, MaxConns: 25},
			JWT: JWTConfig{
				Secret:     "test-secret-that-is-at-least-32ch",
				AccessTTL:  15 * time.Minute,
				RefreshTTL: 7 * 24 * time.Hour,
			},
			Server: ServerConfig{
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
			},
			Cache: CacheConfig{ProfileTTL: 5 * time.Minute},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validBase().validate())
	})

	t.Run("empty JWT secret fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.JWT.Secret = ""
		assert.ErrorContains(t, c.validate(), "DEALERD_JWT_SECRET")
	})

	t.Run("JWT secret too short fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.JWT.Secret = "only-31-characters-long-secret!"
		assert.ErrorContains(t, c.validate(), "DEALERD_JWT_SECRET")
	})

	t.Run("port 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Database.Port = 0
		assert.ErrorContains(t, c.validate(), "DEALERD_DB_PORT")
	})

	t.Run("port 65535 passes", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Database.Port = 65535
		assert.NoError(t, c.validate())
	})

	t.Run("MaxConns 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Database.MaxConns = 0
		assert.ErrorContains(t, c.validate(), "DEALERD_DB_MAX_CONNS")
	})

	t.Run("AccessTTL 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.JWT.AccessTTL = 0
		assert.ErrorContains(t, c.validate(), "DEALERD_JWT_ACCESS_TTL")
	})

	t.Run("ProfileTTL 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Cache.ProfileTTL = 0
		assert.ErrorContains(t, c.validate(), "DEALERD_PROFILE_CACHE_TTL")
	})

	t.Run("google without redirect URL fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Google.ClientID = "gid"
		c.Google.ClientSecret = "gsecret"
		assert.ErrorContains(t, c.validate(), "DEALERD_GOOGLE_REDIRECT_URL")
	})

	t.Run("WriteTimeout negative fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Server.WriteTimeout = -time.Second
		assert.ErrorContains(t, c.validate(), "DEALERD_SERVER_WRITE_TIMEOUT")
	})
}

// ---------------------------------------------------------------------------
// Test helper
// ---------------------------------------------------------------------------

func strPtr(s string) *string {
	return &s
}
