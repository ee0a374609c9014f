package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	// JWTSecret signs session tokens. JWT_SECRET is accepted when the
	// prefixed variable is unset. Outside dev an empty secret is fatal.
	JWTSecret       string        `env:"ACCOUNTS_JWT_SECRET"`
	LegacyJWTSecret string        `env:"JWT_SECRET"`
	Issuer          string        `env:"ACCOUNTS_ISSUER"       envDefault:"accounts"`
	TokenTTL        time.Duration `env:"ACCOUNTS_TOKEN_TTL"    envDefault:"24h"`
	TokenLeeway     time.Duration `env:"ACCOUNTS_TOKEN_LEEWAY" envDefault:"30s"`

	StoreDriver   string `env:"ACCOUNTS_STORE_DRIVER"  envDefault:"sqlite"` // sqlite or mongo
	DatabaseFile  string `env:"ACCOUNTS_DATABASE_FILE" envDefault:"accounts.db"`
	MongoURI      string `env:"MONGODB_URI"            envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE"       envDefault:"accounts"`

	PepperFile string `env:"ACCOUNTS_PEPPER_FILE" envDefault:"pepper"`

	// RedisAddr enables the per-email sign-in lockout when set.
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	SignInMaxAttempts int           `env:"ACCOUNTS_SIGNIN_MAX_ATTEMPTS" envDefault:"5"`
	SignInLockout     time.Duration `env:"ACCOUNTS_SIGNIN_LOCKOUT"      envDefault:"15m"`

	// OTelEndpoint enables trace export when set (e.g. http://collector:4318).
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	SecureCookie bool `env:"ACCOUNTS_SECURE_COOKIE"`

	// TrustProxyHeaders makes per-IP rate limits honour X-Forwarded-For.
	TrustProxyHeaders bool `env:"ACCOUNTS_TRUST_PROXY_HEADERS"`

	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.LegacyJWTSecret
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("config: unknown store driver %q", c.StoreDriver)
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: ACCOUNTS_TOKEN_TTL must be positive")
	}
	if c.JWTSecret == "" && !c.IsDev() {
		return errors.New("config: ACCOUNTS_JWT_SECRET is required outside dev")
	}
	return nil
}

func (c Config) IsDev() bool {
	return c.Env == "" || strings.EqualFold(c.Env, "dev")
}

// SQLiteDSN opens DatabaseFile with WAL and a busy timeout.
func (c Config) SQLiteDSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", c.DatabaseFile)
}
