package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/jzx17/gothreadpool/pkg/config"
)

type appConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	return path
}

func TestLoader_Merge(t *testing.T) {
	// 1. Defaults
	defaults := appConfig{
		Host: "localhost",
		Port: 8080,
	}

	// 2. File (overrides Host)
	configFile := writeFile(t, "config.json", `{"host": "file-host"}`)

	// 3. Env (overrides Port)
	t.Setenv("APP_PORT", "9090")

	loader := config.NewLoader(
		config.WithDefaults(defaults),
		config.WithFile[appConfig](configFile),
		config.WithEnv[appConfig]("APP_"),
	)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Host should be from file
	if cfg.Host != "file-host" {
		t.Errorf("Expected Host to be 'file-host', got '%s'", cfg.Host)
	}
	// Port should be from env
	if cfg.Port != 9090 {
		t.Errorf("Expected Port to be 9090, got %d", cfg.Port)
	}
}

func TestLoader_Flags(t *testing.T) {
	defaults := appConfig{
		Host: "localhost",
		Port: 8080,
	}

	f := pflag.NewFlagSet("config", pflag.ContinueOnError)
	f.String("host", "default-flag-host", "Host address")
	f.Int("port", 0, "Port number")
	if err := f.Parse([]string{"--host=flag-host", "--port=9091"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	loader := config.NewLoader(
		config.WithDefaults(defaults),
		config.WithFlags[appConfig](f),
	)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Host != "flag-host" {
		t.Errorf("Expected Host to be 'flag-host', got '%s'", cfg.Host)
	}
	if cfg.Port != 9091 {
		t.Errorf("Expected Port to be 9091, got %d", cfg.Port)
	}
}

func TestLoader_UnsetFlagsDoNotOverride(t *testing.T) {
	defaults := appConfig{
		Host: "localhost",
		Port: 8080,
	}

	f := pflag.NewFlagSet("config", pflag.ContinueOnError)
	f.String("host", "flag-default", "Host address")
	f.Int("port", 1, "Port number")
	if err := f.Parse([]string{"--port=9091"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	loader := config.NewLoader(
		config.WithDefaults(defaults),
		config.WithFlags[appConfig](f),
	)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Host flag was never set, the default source wins
	if cfg.Host != "localhost" {
		t.Errorf("Expected Host to be 'localhost', got '%s'", cfg.Host)
	}
	if cfg.Port != 9091 {
		t.Errorf("Expected Port to be 9091, got %d", cfg.Port)
	}
}

func TestLoader_OrderMatters(t *testing.T) {
	defaults := appConfig{
		Host: "default-host",
	}

	configFile := writeFile(t, "config_order.json", `{"host": "file-host"}`)

	// Case 1: Defaults first, then File (File should win)
	loader1 := config.NewLoader(
		config.WithDefaults(defaults),
		config.WithFile[appConfig](configFile),
	)
	config1, _ := loader1.Load()
	if config1.Host != "file-host" {
		t.Errorf("Case 1: Expected 'file-host', got '%s'", config1.Host)
	}

	// Case 2: File first, then Defaults (Defaults should win)
	loader2 := config.NewLoader(
		config.WithFile[appConfig](configFile),
		config.WithDefaults(defaults),
	)
	config2, _ := loader2.Load()
	if config2.Host != "default-host" {
		t.Errorf("Case 2: Expected 'default-host', got '%s'", config2.Host)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	loader := config.NewLoader(
		config.WithFile[appConfig]("does-not-exist.json"),
	)

	if _, err := loader.Load(); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestLoader_PoolSettings(t *testing.T) {
	configFile := writeFile(t, "pool.yaml", "max_workers: 16\nidle_timeout: 5s\n")

	t.Setenv("THREADPOOL_IDLE_TIMEOUT", "30s")
	t.Setenv("THREADPOOL_LOG_LEVEL", "debug")

	f := pflag.NewFlagSet("pool", pflag.ContinueOnError)
	f.Int("max-workers", 0, "Maximum number of workers")
	f.Duration("idle-timeout", 0, "Worker idle timeout")
	if err := f.Parse([]string{"--max-workers=4"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	loader := config.NewLoader(
		config.WithDefaults(config.DefaultPool()),
		config.WithFile[config.Pool](configFile),
		config.WithEnv[config.Pool](config.EnvPrefix),
		config.WithFlags[config.Pool](f),
	)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Flag beats file and env
	if cfg.MaxWorkers != 4 {
		t.Errorf("Expected MaxWorkers to be 4, got %d", cfg.MaxWorkers)
	}
	// Env beats file
	if cfg.IdleTimeout != 30*time.Second {
		t.Errorf("Expected IdleTimeout to be 30s, got %v", cfg.IdleTimeout)
	}
	// Env beats defaults
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be 'debug', got '%s'", cfg.LogLevel)
	}
}
