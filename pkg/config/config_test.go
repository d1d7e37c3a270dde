package config_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jzx17/gothreadpool/pkg/config"
)

func TestDefaultPool(t *testing.T) {
	defaults := config.DefaultPool()

	if defaults.MaxWorkers <= 0 {
		t.Errorf("Expected positive default MaxWorkers, got %d", defaults.MaxWorkers)
	}
	if defaults.IdleTimeout != 10*time.Second {
		t.Errorf("Expected default IdleTimeout of 10s, got %v", defaults.IdleTimeout)
	}
	if defaults.LogLevel != "info" {
		t.Errorf("Expected default LogLevel 'info', got '%s'", defaults.LogLevel)
	}
}

func TestPool_ZerologLevel(t *testing.T) {
	p := config.Pool{LogLevel: "warn"}
	level, err := p.ZerologLevel()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if level != zerolog.WarnLevel {
		t.Errorf("Expected warn level, got %v", level)
	}

	p = config.Pool{LogLevel: "not-a-level"}
	if _, err := p.ZerologLevel(); err == nil {
		t.Error("Expected an error for an invalid log level")
	}
}

func TestPool_PoolConfig(t *testing.T) {
	logger := zerolog.Nop()
	p := config.Pool{
		MaxWorkers:  6,
		IdleTimeout: 2 * time.Second,
	}

	cfg := p.PoolConfig(&logger)
	if cfg.MaxWorkers != 6 {
		t.Errorf("Expected MaxWorkers 6, got %d", cfg.MaxWorkers)
	}
	if cfg.IdleTimeout != 2*time.Second {
		t.Errorf("Expected IdleTimeout 2s, got %v", cfg.IdleTimeout)
	}
	if cfg.Logger == nil {
		t.Error("Expected logger to be carried over")
	}
}
