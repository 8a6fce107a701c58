package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FRESHKART"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "FRESHKART_DB_DSN"
	EnvDBHost = "FRESHKART_DB_HOST"
	EnvDBUser = "FRESHKART_DB_USER"
	EnvDBName = "FRESHKART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Stripe       StripeConfig
	Payments     PaymentsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FRESHKART_APP_ENV" required:"true"`
	Port         string `envconfig:"FRESHKART_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"FRESHKART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FRESHKART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FRESHKART_DB_DSN"`
	Driver string `envconfig:"FRESHKART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FRESHKART_DB_HOST"`
	LegacyPort     int    `envconfig:"FRESHKART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FRESHKART_DB_USER"`
	LegacyPassword string `envconfig:"FRESHKART_DB_PASSWORD"`
	LegacyName     string `envconfig:"FRESHKART_DB_NAME"`
	LegacySSLMode  string `envconfig:"FRESHKART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FRESHKART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FRESHKART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FRESHKART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRESHKART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FRESHKART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FRESHKART_REDIS_ADDR"`
	Password     string        `envconfig:"FRESHKART_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRESHKART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRESHKART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRESHKART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FRESHKART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRESHKART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FRESHKART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FRESHKART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FRESHKART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FRESHKART_JWT_EXPIRATION_MINUTES" default:"10080"`
	SessionTTLMinutes int    `envconfig:"FRESHKART_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FRESHKART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FRESHKART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FRESHKART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FRESHKART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FRESHKART_ARGON_KEY_LEN" default:"32"`
}

type StripeConfig struct {
	SecretKey string `envconfig:"FRESHKART_STRIPE_SECRET_KEY"`
	Env       string `envconfig:"FRESHKART_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type PaymentsConfig struct {
	DefaultCurrency string `envconfig:"FRESHKART_PAYMENTS_DEFAULT_CURRENCY" default:"inr"`
	DefaultCountry  string `envconfig:"FRESHKART_PAYMENTS_DEFAULT_COUNTRY" default:"IN"`
	MerchantName    string `envconfig:"FRESHKART_PAYMENTS_MERCHANT_NAME" default:"FreshKart"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FRESHKART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
