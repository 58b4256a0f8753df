package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration required by the console process.
// All values come from env (or an optional .env file in the working directory).
// No business logic should depend on raw environment variables.
type Config struct {
	App          AppConfig
	Orchestrator OrchestratorConfig
	QuickCall    QuickCallConfig
	Drafts       DraftsConfig
	HTTP         HTTPConfig
	Redis        RedisConfig
	DB           DBConfig
}

type AppConfig struct {
	Env string `env:"APP_ENV"`

	// Host is the listen interface. The session is shared by whoever reaches the
	// port, so the default keeps the console on loopback.
	Host string `env:"APP_HOST" envDefault:"127.0.0.1"`
	Port int    `env:"APP_PORT" envDefault:"8080"`
}

// OrchestratorConfig points at the remote Call Orchestration Service.
type OrchestratorConfig struct {
	BaseURL string        `env:"ORCHESTRATOR_BASE_URL"`
	Timeout time.Duration `env:"ORCHESTRATOR_TIMEOUT" envDefault:"15s"`
}

type QuickCallConfig struct {
	PollInterval time.Duration `env:"QUICK_CALL_POLL_INTERVAL" envDefault:"3s"`
}

// DraftsConfig bounds how long an untouched call-list draft is kept.
type DraftsConfig struct {
	TTL time.Duration `env:"DRAFT_TTL" envDefault:"24h"`
}

type HTTPConfig struct {
	LoginPath      string   `env:"LOGIN_PATH" envDefault:"/login"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	SessionName    string   `env:"SESSION_NAME" envDefault:"default"`

	// CSVParser selects the contact import strategy: naive or strict.
	CSVParser string `env:"CSV_PARSER" envDefault:"naive"`
}

// RedisConfig is optional; an empty Host keeps credentials in memory.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// DBConfig is optional; an empty Host keeps the audit log in memory.
type DBConfig struct {
	Host     string `env:"DB_HOST"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`

	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string `env:"DB_SSLMODE"`
}

func Load() (Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("environment variables are invalid: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the configuration and fills environment-dependent defaults.
func (c *Config) Validate() error {
	var errs []error

	c.App.Env = strings.TrimSpace(c.App.Env)
	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	c.App.Host = strings.TrimSpace(c.App.Host)
	if c.App.Host == "" {
		c.App.Host = "127.0.0.1"
	}
	if !isValidPort(c.App.Port) {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	c.Orchestrator.BaseURL = strings.TrimRight(strings.TrimSpace(c.Orchestrator.BaseURL), "/")
	if c.Orchestrator.BaseURL == "" {
		errs = append(errs, errors.New("ORCHESTRATOR_BASE_URL is required"))
	} else if u, err := url.Parse(c.Orchestrator.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("ORCHESTRATOR_BASE_URL must be an absolute http(s) URL, got %q", c.Orchestrator.BaseURL))
	}
	if c.Orchestrator.Timeout <= 0 {
		errs = append(errs, errors.New("ORCHESTRATOR_TIMEOUT must be positive"))
	}
	if c.QuickCall.PollInterval <= 0 {
		errs = append(errs, errors.New("QUICK_CALL_POLL_INTERVAL must be positive"))
	}
	if c.Drafts.TTL == 0 {
		c.Drafts.TTL = 24 * time.Hour
	} else if c.Drafts.TTL < 0 {
		errs = append(errs, errors.New("DRAFT_TTL must be positive"))
	}

	if c.HTTP.LoginPath == "" {
		c.HTTP.LoginPath = "/login"
	}
	if strings.TrimSpace(c.HTTP.SessionName) == "" {
		errs = append(errs, errors.New("SESSION_NAME must not be blank"))
	}

	switch c.HTTP.CSVParser {
	case "":
		c.HTTP.CSVParser = "naive"
	case "naive", "strict":
	default:
		errs = append(errs, fmt.Errorf("CSV_PARSER must be naive or strict, got %q", c.HTTP.CSVParser))
	}

	if c.UsesRedis() {
		if !isValidPort(c.Redis.Port) {
			errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
		}
		if c.Redis.DB < 0 {
			errs = append(errs, fmt.Errorf("REDIS_DB must not be negative, got %d", c.Redis.DB))
		}
	}

	if c.UsesPostgres() {
		if !isValidPort(c.DB.Port) {
			errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
		}
		if c.DB.User == "" {
			errs = append(errs, errors.New("DB_USER is required when DB_HOST is set"))
		}
		if c.DB.Name == "" {
			errs = append(errs, errors.New("DB_NAME is required when DB_HOST is set"))
		}
		if strings.TrimSpace(c.DB.SSLMode) == "" {
			if c.IsProduction() {
				errs = append(errs, errors.New("DB_SSLMODE is required in production"))
			} else {
				c.DB.SSLMode = "disable"
			}
		}
		if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
			errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
		}
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) UsesRedis() bool { return strings.TrimSpace(c.Redis.Host) != "" }

func (c Config) UsesPostgres() bool { return strings.TrimSpace(c.DB.Host) != "" }

func (c Config) HTTPAddr() string {
	return net.JoinHostPort(c.App.Host, strconv.Itoa(c.App.Port))
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func isValidPort(p int) bool { return p > 0 && p <= 65535 }

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
