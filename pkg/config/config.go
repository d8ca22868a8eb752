package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "KIRANAKART_DB_DSN"
	EnvDBHost = "KIRANAKART_DB_HOST"
	EnvDBUser = "KIRANAKART_DB_USER"
	EnvDBName = "KIRANAKART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Razorpay      RazorpayConfig
	Geocoder      GeocoderConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"KIRANAKART_APP_ENV" required:"true"`
	Port         string `envconfig:"KIRANAKART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KIRANAKART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KIRANAKART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"KIRANAKART_DB_DSN"`
	Driver string `envconfig:"KIRANAKART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KIRANAKART_DB_HOST"`
	LegacyPort     int    `envconfig:"KIRANAKART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KIRANAKART_DB_USER"`
	LegacyPassword string `envconfig:"KIRANAKART_DB_PASSWORD"`
	LegacyName     string `envconfig:"KIRANAKART_DB_NAME"`
	LegacySSLMode  string `envconfig:"KIRANAKART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KIRANAKART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KIRANAKART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KIRANAKART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KIRANAKART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KIRANAKART_REDIS_URL"`
	Address      string        `envconfig:"KIRANAKART_REDIS_ADDR"`
	Password     string        `envconfig:"KIRANAKART_REDIS_PASSWORD"`
	DB           int           `envconfig:"KIRANAKART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KIRANAKART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KIRANAKART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KIRANAKART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KIRANAKART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KIRANAKART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether any redis endpoint was supplied. Rate limiting is
// skipped when redis is absent.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

// JWTConfig drives the business session cookie. The default expiry is seven
// days, matching the storefront session lifetime.
type JWTConfig struct {
	Secret            string `envconfig:"KIRANAKART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"KIRANAKART_JWT_ISSUER" default:"kiranakart"`
	ExpirationMinutes int    `envconfig:"KIRANAKART_JWT_EXPIRATION_MINUTES" default:"10080"`
	CookieName        string `envconfig:"KIRANAKART_SESSION_COOKIE" default:"kk_session"`
	CookieSecure      bool   `envconfig:"KIRANAKART_SESSION_COOKIE_SECURE" default:"true"`
}

// Expiration returns the configured token TTL.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"KIRANAKART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"KIRANAKART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"KIRANAKART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"KIRANAKART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"KIRANAKART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"KIRANAKART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"KIRANAKART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"KIRANAKART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow       time.Duration `envconfig:"KIRANAKART_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit   int           `envconfig:"KIRANAKART_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit      int           `envconfig:"KIRANAKART_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"KIRANAKART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"KIRANAKART_AUTO_MIGRATE" default:"false"`
}

type RazorpayConfig struct {
	KeyID     string `envconfig:"KIRANAKART_RAZORPAY_KEY_ID"`
	KeySecret string `envconfig:"KIRANAKART_RAZORPAY_KEY_SECRET"`
}

// GeocoderConfig points at a Nominatim-compatible search endpoint. The user
// agent identifies this deployment per the provider's usage policy.
type GeocoderConfig struct {
	BaseURL   string `envconfig:"KIRANAKART_GEOCODER_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent string `envconfig:"KIRANAKART_GEOCODER_USER_AGENT" default:"kiranakart-backend/1.0"`
}

type CORSConfig struct {
	FrontendOrigin string `envconfig:"KIRANAKART_FRONTEND_ORIGIN" default:"http://localhost:5173"`
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
