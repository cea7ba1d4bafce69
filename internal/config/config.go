package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr     string        `env:"HTTP_ADDR" envDefault:":3000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"180s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`

	// WebDir serves static files from disk instead of the embedded copy.
	WebDir string `env:"WEB_DIR"`

	YtDlpPath     string        `env:"YTDLP_PATH" envDefault:"yt-dlp"`
	YtDlpFallback string        `env:"YTDLP_FALLBACK" envDefault:"python3 -m yt_dlp"`
	CookiesFile   string        `env:"YTDLP_COOKIES_FILE"`
	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT" envDefault:"150s"`
	TempDir       string        `env:"TEMP_DIR"`

	AuthToken   string `env:"AUTH_TOKEN"`
	CORSOrigins string `env:"CORS_ORIGINS"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Overrides holds CLI flag values that take priority over env vars.
type Overrides struct {
	EnvFile     string
	HTTPAddr    string
	LogLevel    string
	WebDir      string
	YtDlpPath   string
	CookiesFile string
}

// Load reads configuration from .env file, environment variables, and CLI overrides.
// Priority: CLI flags > environment variables > .env file > struct defaults.
func Load(overrides Overrides) (*Config, error) {
	// Load .env file (silent if missing)
	envFile := overrides.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Apply CLI overrides (non-empty values win)
	if overrides.HTTPAddr != "" {
		cfg.HTTPAddr = overrides.HTTPAddr
	}
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}
	if overrides.WebDir != "" {
		cfg.WebDir = overrides.WebDir
	}
	if overrides.YtDlpPath != "" {
		cfg.YtDlpPath = overrides.YtDlpPath
	}
	if overrides.CookiesFile != "" {
		cfg.CookiesFile = overrides.CookiesFile
	}

	return cfg, nil
}

// FallbackCommand splits YtDlpFallback into an executable and leading args.
// Returns nil if no fallback is configured.
func (c *Config) FallbackCommand() []string {
	fields := strings.Fields(c.YtDlpFallback)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// AllowedOrigins returns the parsed CORS_ORIGINS list. Empty means any origin.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
