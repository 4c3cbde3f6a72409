package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Task list scopes
const (
	TaskListScopeAll         = "all"
	TaskListScopeParticipant = "participant"
)

// Cache backends
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	DB      DBConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Session SessionConfig
	Admin   AdminConfig
	Tasks   TaskConfig
}

type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	GinMode  string `env:"GIN_MODE" env-default:"debug"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000" env-separator:","`
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER" env-default:"mysql"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"3306"`
	User     string `env:"DB_USER" env-default:"taskuser"`
	Password string `env:"DB_PASSWORD" env-default:"taskpassword"`
	Name     string `env:"DB_NAME" env-default:"task_management"`
	// Path is the database file when Driver is sqlite.
	Path     string `env:"DB_PATH" env-default:"task_tracker.db"`
	LogLevel string `env:"DB_LOG_LEVEL" env-default:"warn"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" env-default:"localhost"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// Addr is "host:port".
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

type CacheConfig struct {
	Backend   string        `env:"CACHE_BACKEND" env-default:"redis"`
	TTL       time.Duration `env:"CACHE_TTL" env-default:"0s"`
	KeyPrefix string        `env:"CACHE_KEY_PREFIX" env-default:"tasktracker"`
}

type SessionConfig struct {
	Secret string `env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`
	// Store is "redis" or "cookie".
	Store  string `env:"SESSION_STORE" env-default:"redis"`
	MaxAge int    `env:"SESSION_MAX_AGE" env-default:"604800"`
	Secure bool   `env:"SESSION_SECURE" env-default:"false"`
}

// AdminConfig describes the administrator account created at startup when Email is set.
type AdminConfig struct {
	Email     string `env:"ADMIN_EMAIL" env-default:""`
	Password  string `env:"ADMIN_PASSWORD" env-default:""`
	FirstName string `env:"ADMIN_FIRST_NAME" env-default:"Admin"`
	LastName  string `env:"ADMIN_LAST_NAME" env-default:"User"`
}

type TaskConfig struct {
	ListScope string `env:"TASK_LIST_SCOPE" env-default:"all"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown enum values and incomplete settings.
func (c *Config) Validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be mysql, postgres or sqlite, got %q", c.DB.Driver)
	}

	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	switch c.Cache.Backend {
	case CacheBackendNone, CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("CACHE_BACKEND must be none, memory or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}

	c.Session.Store = strings.ToLower(strings.TrimSpace(c.Session.Store))
	if c.Session.Store != "redis" && c.Session.Store != "cookie" {
		return fmt.Errorf("SESSION_STORE must be redis or cookie, got %q", c.Session.Store)
	}

	c.Tasks.ListScope = strings.ToLower(strings.TrimSpace(c.Tasks.ListScope))
	if c.Tasks.ListScope != TaskListScopeAll && c.Tasks.ListScope != TaskListScopeParticipant {
		return fmt.Errorf("TASK_LIST_SCOPE must be all or participant, got %q", c.Tasks.ListScope)
	}

	if c.Admin.Email != "" && c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}
	return nil
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Cache.Backend == CacheBackendRedis || c.Session.Store == "redis"
}
