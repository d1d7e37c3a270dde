package config

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/jzx17/gothreadpool/pkg/pool"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "THREADPOOL_"

// Pool holds the tunable pool settings
type Pool struct {
	// MaxWorkers is the maximum number of workers
	MaxWorkers int `koanf:"max_workers"`

	// IdleTimeout is the worker idle timeout duration
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// LogLevel is the zerolog level for pool events
	LogLevel string `koanf:"log_level"`
}

// DefaultPool returns the default pool settings
func DefaultPool() Pool {
	return Pool{
		MaxWorkers:  runtime.NumCPU(),
		IdleTimeout: 10 * time.Second,
		LogLevel:    "info",
	}
}

// ZerologLevel parses the configured log level
func (p Pool) ZerologLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(p.LogLevel)
}

// PoolConfig converts the settings into a pool configuration. Validation
// happens when the pool is created.
func (p Pool) PoolConfig(logger *zerolog.Logger) *pool.Config {
	return &pool.Config{
		MaxWorkers:  p.MaxWorkers,
		IdleTimeout: p.IdleTimeout,
		Logger:      logger,
	}
}
