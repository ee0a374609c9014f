package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "dev")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "accounts", cfg.Issuer)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, DriverSQLite, cfg.StoreDriver)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 5, cfg.SignInMaxAttempts)
	require.Equal(t, 15*time.Minute, cfg.SignInLockout)
	require.Empty(t, cfg.RedisAddr)
	require.False(t, cfg.TrustProxyHeaders)
	require.True(t, cfg.IsDev())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("ACCOUNTS_JWT_SECRET", "a-very-long-signing-secret")
	t.Setenv("ACCOUNTS_TOKEN_TTL", "2h")
	t.Setenv("ACCOUNTS_STORE_DRIVER", " Mongo ")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("PORT", "9000")
	t.Setenv("ACCOUNTS_TRUST_PROXY_HEADERS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "a-very-long-signing-secret", cfg.JWTSecret)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL)
	require.Equal(t, DriverMongo, cfg.StoreDriver)
	require.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	require.Equal(t, "redis:6379", cfg.RedisAddr)
	require.Equal(t, 9000, cfg.Port)
	require.True(t, cfg.TrustProxyHeaders)
	require.False(t, cfg.IsDev())
}

func TestLoadConfig_LegacySecret(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("JWT_SECRET", "legacy-secret-legacy-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "legacy-secret-legacy-secret", cfg.JWTSecret)

	t.Setenv("ACCOUNTS_JWT_SECRET", "preferred-secret-preferred")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "preferred-secret-preferred", cfg.JWTSecret)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("secret required outside dev", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "ACCOUNTS_JWT_SECRET")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("ENV", "dev")
		t.Setenv("ACCOUNTS_STORE_DRIVER", "postgres")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "postgres")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("ENV", "dev")
		t.Setenv("ACCOUNTS_TOKEN_TTL", "forever")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestSQLiteDSN(t *testing.T) {
	cfg := Config{DatabaseFile: "/data/accounts.db"}
	require.Equal(t, "file:/data/accounts.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.SQLiteDSN())
}
