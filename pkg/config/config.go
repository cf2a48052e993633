package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
	Upstream      UpstreamConfig
	Catalog       CatalogConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GAYA_APP_ENV" required:"true"`
	Port         string `envconfig:"GAYA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GAYA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GAYA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"GAYA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GAYA_REDIS_ADDR"`
	Password     string        `envconfig:"GAYA_REDIS_PASSWORD"`
	DB           int           `envconfig:"GAYA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GAYA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GAYA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GAYA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GAYA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GAYA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GAYA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GAYA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GAYA_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"GAYA_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"GAYA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"GAYA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"GAYA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type UpstreamConfig struct {
	ProductServiceURL  string        `envconfig:"GAYA_PRODUCT_SERVICE_URL" required:"true"`
	OrderServiceURL    string        `envconfig:"GAYA_ORDER_SERVICE_URL" required:"true"`
	CustomerServiceURL string        `envconfig:"GAYA_CUSTOMER_SERVICE_URL" required:"true"`
	RequestTimeout     time.Duration `envconfig:"GAYA_UPSTREAM_REQUEST_TIMEOUT" default:"10s"`
}

type CatalogConfig struct {
	RefreshTimeout time.Duration `envconfig:"GAYA_CATALOG_REFRESH_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GAYA_CORS_ALLOWED_ORIGINS" default:"*"`
}

func (u UpstreamConfig) validate() error {
	missing := []string{}
	if strings.TrimSpace(u.ProductServiceURL) == "" {
		missing = append(missing, "GAYA_PRODUCT_SERVICE_URL")
	}
	if strings.TrimSpace(u.OrderServiceURL) == "" {
		missing = append(missing, "GAYA_ORDER_SERVICE_URL")
	}
	if strings.TrimSpace(u.CustomerServiceURL) == "" {
		missing = append(missing, "GAYA_CUSTOMER_SERVICE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s are required", strings.Join(missing, ", "))
	}
	return nil
}
