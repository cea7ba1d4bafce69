package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	"WEB_DIR", "YTDLP_PATH", "YTDLP_FALLBACK", "YTDLP_COOKIES_FILE", "FETCH_TIMEOUT",
	"TEMP_DIR", "AUTH_TOKEN", "CORS_ORIGINS", "LOG_LEVEL",
}

func TestLoad(t *testing.T) {
	clearEnvs(t)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(Overrides{EnvFile: "nonexistent.env"})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.HTTPAddr != ":3000" {
			t.Errorf("HTTPAddr = %q, want :3000", cfg.HTTPAddr)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
		}
		if cfg.YtDlpPath != "yt-dlp" {
			t.Errorf("YtDlpPath = %q, want yt-dlp", cfg.YtDlpPath)
		}
		if cfg.FetchTimeout != 150*time.Second {
			t.Errorf("FetchTimeout = %v, want 150s", cfg.FetchTimeout)
		}
		if cfg.CookiesFile != "" {
			t.Errorf("CookiesFile = %q, want empty", cfg.CookiesFile)
		}
		if got := cfg.FallbackCommand(); !reflect.DeepEqual(got, []string{"python3", "-m", "yt_dlp"}) {
			t.Errorf("FallbackCommand() = %v", got)
		}
	})

	t.Run("cli_overrides_take_priority", func(t *testing.T) {
		t.Setenv("HTTP_ADDR", ":8080")
		t.Setenv("YTDLP_PATH", "/usr/bin/yt-dlp")
		cfg, err := Load(Overrides{
			EnvFile:     "nonexistent.env",
			HTTPAddr:    ":9090",
			LogLevel:    "debug",
			WebDir:      "/srv/web",
			YtDlpPath:   "/opt/yt-dlp",
			CookiesFile: "/etc/cookies.txt",
		})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.HTTPAddr != ":9090" {
			t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
		}
		if cfg.WebDir != "/srv/web" {
			t.Errorf("WebDir = %q, want /srv/web", cfg.WebDir)
		}
		if cfg.YtDlpPath != "/opt/yt-dlp" {
			t.Errorf("YtDlpPath = %q, want /opt/yt-dlp", cfg.YtDlpPath)
		}
		if cfg.CookiesFile != "/etc/cookies.txt" {
			t.Errorf("CookiesFile = %q, want /etc/cookies.txt", cfg.CookiesFile)
		}
	})

	t.Run("empty_overrides_use_env", func(t *testing.T) {
		t.Setenv("HTTP_ADDR", ":8080")
		t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
		cfg, err := Load(Overrides{EnvFile: "nonexistent.env"})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.HTTPAddr != ":8080" {
			t.Errorf("HTTPAddr = %q, want env value", cfg.HTTPAddr)
		}
		want := []string{"https://a.example", "https://b.example"}
		if got := cfg.AllowedOrigins(); !reflect.DeepEqual(got, want) {
			t.Errorf("AllowedOrigins() = %v, want %v", got, want)
		}
	})

	t.Run("env_file_below_env_vars", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "warn")
		path := filepath.Join(t.TempDir(), "test.env")
		data := "LOG_LEVEL=debug\nYTDLP_COOKIES_FILE=/from/envfile\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Unsetenv("YTDLP_COOKIES_FILE") })

		cfg, err := Load(Overrides{EnvFile: path})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("LogLevel = %q, want env var to win over .env", cfg.LogLevel)
		}
		if cfg.CookiesFile != "/from/envfile" {
			t.Errorf("CookiesFile = %q, want value from .env", cfg.CookiesFile)
		}
	})
}

func TestLoadInvalidDuration(t *testing.T) {
	clearEnvs(t)
	t.Setenv("FETCH_TIMEOUT", "soon")

	if _, err := Load(Overrides{EnvFile: "nonexistent.env"}); err == nil {
		t.Error("expected error for unparseable FETCH_TIMEOUT")
	}
}

func TestFallbackCommandDisabled(t *testing.T) {
	cfg := &Config{YtDlpFallback: "  "}
	if got := cfg.FallbackCommand(); got != nil {
		t.Errorf("FallbackCommand() = %v, want nil", got)
	}
}

// clearEnvs unsets every config variable for the duration of the test.
func clearEnvs(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
