package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/wedit/internal/config/loader"
	"github.com/dshills/wedit/internal/dispatcher"
	"github.com/dshills/wedit/internal/input/keymap"
	"github.com/dshills/wedit/internal/logging"
	"github.com/dshills/wedit/internal/session"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "WEDIT_"

// Config holds every editor setting.
type Config struct {
	Session    SessionConfig    `toml:"session"`
	Logging    LoggingConfig    `toml:"logging"`
	Dispatcher DispatcherConfig `toml:"dispatcher"`

	// Keys maps editor actions to the chords that trigger them, on top of
	// the built-in bindings.
	Keys map[string][]string `toml:"keys"`
}

// SessionConfig configures document sessions.
type SessionConfig struct {
	IDPrefix   string `toml:"id_prefix"`
	Spellcheck bool   `toml:"spellcheck"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DispatcherConfig configures event dispatch.
type DispatcherConfig struct {
	VerifyAfterMutation bool `toml:"verify_after_mutation"`
	Metrics             bool `toml:"metrics"`
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs  loader.FileSystem
	env *loader.EnvLoader
}

// WithFS reads the settings file from fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment loader.
func WithEnv(env *loader.EnvLoader) Option {
	return func(o *options) {
		o.env = env
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := decode(defaultConfig())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load merges defaults, the TOML file at path (if any) and the environment,
// then validates the result. An empty path skips the file layer.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := defaultConfig()

	if path != "" {
		file, err := loader.NewTOMLLoaderWithFS(o.fs, path).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	env, err := o.env.Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, env)

	cfg, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode converts a merged settings map into a Config.
func decode(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &cfg, nil
}

// Validate checks the settings for values the editor cannot use.
func (c *Config) Validate() error {
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	if c.Session.IDPrefix == "" {
		return ErrEmptyIDPrefix
	}
	if km := c.Keymap(); km != nil {
		if err := km.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidKeys, err)
		}
	}
	return nil
}

// Keymap returns the user keymap from the [keys] section, or nil if the
// section is empty.
func (c *Config) Keymap() *keymap.Keymap {
	if len(c.Keys) == 0 {
		return nil
	}
	return keymap.FromActions("user", c.Keys).WithSource("config")
}

// LogLevel returns the parsed logging level, or Info if it is invalid.
func (c *Config) LogLevel() logging.Level {
	level, ok := logging.ParseLevel(c.Logging.Level)
	if !ok {
		return logging.LevelInfo
	}
	return level
}

// SessionOptions returns the session options described by the settings.
func (c *Config) SessionOptions() []session.Option {
	return []session.Option{
		session.WithIDPrefix(c.Session.IDPrefix),
		session.WithSpellcheck(c.Session.Spellcheck),
	}
}

// DispatcherConfig returns the dispatcher configuration described by the settings.
func (c *Config) DispatcherConfig() dispatcher.Config {
	dc := dispatcher.DefaultConfig().WithVerify(c.Dispatcher.VerifyAfterMutation)
	if c.Dispatcher.Metrics {
		dc = dc.WithMetrics()
	}
	return dc
}

// defaultConfig returns the built-in settings layer.
func defaultConfig() map[string]any {
	return map[string]any{
		"session": map[string]any{
			"id_prefix":  session.DefaultIDPrefix,
			"spellcheck": true,
		},
		"logging": map[string]any{
			"level": "info",
		},
		"dispatcher": map[string]any{
			"verify_after_mutation": false,
			"metrics":               false,
		},
		"keys": map[string]any{},
	}
}
