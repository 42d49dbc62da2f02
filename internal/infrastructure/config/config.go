package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const EnvProduction = "production"

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth   AuthConfig
	OTP    OTPConfig
	Users  UsersConfig
	Bypass BypassConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=168h"`
}

type OTPConfig struct {
	TTL       time.Duration `env:"OTP_TTL,       default=30s"`
	Backend   string        `env:"OTP_BACKEND,   default=memory"`
	Retention time.Duration `env:"OTP_RETENTION, default=10m"`
}

type UsersConfig struct {
	Store                  string `env:"USER_STORE,               default=memory"`
	DefaultName            string `env:"DEFAULT_USER_NAME,        default=New User"`
	AutoProvision          bool   `env:"AUTO_PROVISION_USERS,     default=true"`
	PlaceholderEmailDomain string `env:"PLACEHOLDER_EMAIL_DOMAIN, default=phone.workforce.local"`
}

// BypassConfig drives the development login shortcut. It has no effect when
// Env is production.
type BypassConfig struct {
	Enabled     bool   `env:"DEV_BYPASS_ENABLED,      default=false"`
	Identifier  string `env:"DEV_BYPASS_IDENTIFIER"`
	Name        string `env:"DEV_BYPASS_NAME,         default=Dev Admin"`
	CountryCode string `env:"DEV_BYPASS_COUNTRY_CODE, default=+91"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=workforce"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether the process runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.OTP.Backend != BackendMemory && c.OTP.Backend != BackendRedis {
		errs = append(errs, fmt.Errorf("OTP_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, c.OTP.Backend))
	}
	if c.Users.Store != BackendMemory && c.Users.Store != BackendMongo {
		errs = append(errs, fmt.Errorf("USER_STORE must be %q or %q, got %q", BackendMemory, BackendMongo, c.Users.Store))
	}
	if c.OTP.TTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	return LoadFrom(envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper. It panics when the
// environment cannot be parsed.
func LoadFrom(l envconfig.Lookuper) *Config {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
