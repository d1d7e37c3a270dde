// Package config loads pool settings from defaults, files, environment
// variables and command-line flags.
package config

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Loader is a generic configuration loader for type T. Sources are merged in
// the order their options are given; later sources override earlier ones.
type Loader[T any] struct {
	k   *koanf.Koanf
	err error
}

// Option is a function that configures the Loader.
type Option[T any] func(*Loader[T])

// NewLoader creates a new Loader for type T.
func NewLoader[T any](opts ...Option[T]) *Loader[T] {
	loader := &Loader[T]{
		k: koanf.New("."),
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

// Load returns the merged configuration.
func (loader *Loader[T]) Load() (T, error) {
	var config T
	if loader.err != nil {
		return config, loader.err
	}

	if err := loader.k.Unmarshal("", &config); err != nil {
		return config, err
	}

	return config, nil
}

// WithDefaults seeds the loader from a configuration struct.
func WithDefaults[T any](defaults T) Option[T] {
	return func(loader *Loader[T]) {
		if loader.err != nil {
			return
		}
		if err := loader.k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
			loader.err = err
		}
	}
}

// WithFile adds a file source. JSON and YAML are detected by extension.
func WithFile[T any](path string) Option[T] {
	return func(loader *Loader[T]) {
		if loader.err != nil {
			return
		}

		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		default:
			parser = json.Parser()
		}

		if err := loader.k.Load(file.Provider(path), parser); err != nil {
			loader.err = err
		}
	}
}

// WithEnv adds an environment variable source. Variables are matched by
// prefix and mapped to flat keys: THREADPOOL_MAX_WORKERS becomes max_workers.
func WithEnv[T any](prefix string) Option[T] {
	return func(loader *Loader[T]) {
		if loader.err != nil {
			return
		}

		err := loader.k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, prefix))
		}), nil)
		if err != nil {
			loader.err = err
		}
	}
}

// WithFlags adds a command-line flag source. Flag names use dashes and map to
// underscore keys: --max-workers becomes max_workers. Flags left at their
// default value do not override earlier sources.
func WithFlags[T any](flags *pflag.FlagSet) Option[T] {
	return func(loader *Loader[T]) {
		if loader.err != nil {
			return
		}

		provider := posflag.ProviderWithValue(flags, ".", loader.k,
			func(key string, value string) (string, interface{}) {
				return strings.ReplaceAll(key, "-", "_"), value
			})
		if err := loader.k.Load(provider, nil); err != nil {
			loader.err = err
		}
	}
}
