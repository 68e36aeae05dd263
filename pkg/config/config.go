// Package config loads rubylens settings from defaults, an optional TOML
// file, the environment (including a .env file) and command-line flags, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	appDirName          = "rubylens"
	defaultDatabaseFile = "hanzi-ruby-lens.db"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultFetchTimeout = 30 * time.Second
	defaultMaxBodyBytes = 10 * 1024 * 1024
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	DataDir      string        `toml:"data_dir"`
	DatabaseFile string        `toml:"database_file"`
	Logging      LoggingConfig `toml:"logging"`
	Fetch        FetchConfig   `toml:"fetch"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type FetchConfig struct {
	Timeout      time.Duration `toml:"timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
	UserAgent    string        `toml:"user_agent"`
}

// DatabasePath is the full path of the document database.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

type LoadOptions struct {
	// ConfigPath is the TOML file to read. Empty means <DataDir>/config.toml
	// under the default data directory; a missing file is not an error.
	ConfigPath string
	// EnvFile is a dotenv file merged into the environment. Empty means
	// ".env" in the working directory, if present.
	EnvFile string
	// Env overrides the process environment lookup (tests).
	Env   map[string]string
	Flags FlagOverrides
}

type FlagOverrides struct {
	DataDir  string
	LogLevel string
}

func DefaultConfig() (Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve user config dir: %w", err)
	}
	return Config{
		DataDir:      filepath.Join(base, appDirName),
		DatabaseFile: defaultDatabaseFile,
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Fetch: FetchConfig{
			Timeout:      defaultFetchTimeout,
			MaxBodyBytes: defaultMaxBodyBytes,
			UserAgent:    defaultUserAgent,
		},
	}, nil
}

func Load(opts LoadOptions) (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	env, err := loadEnv(opts)
	if err != nil {
		return Config{}, err
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(cfg.DataDir, "config.toml")
	}
	if err := loadAndApplyFile(configPath, &cfg); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Config{}, err
	}
	applyFlagOverrides(&cfg, opts.Flags)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.DatabaseFile, validation.Required),
		validation.Field(&c.Logging),
		validation.Field(&c.Fetch),
	)
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.Required, validation.In("text", "json")),
	)
}

func (f FetchConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Timeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&f.MaxBodyBytes, validation.Required, validation.Min(int64(1024))),
		validation.Field(&f.UserAgent, validation.Required),
	)
}

type rawConfig struct {
	DataDir      *string     `toml:"data_dir"`
	DatabaseFile *string     `toml:"database_file"`
	Logging      *rawLogging `toml:"logging"`
	Fetch        *rawFetch   `toml:"fetch"`
}

type rawLogging struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

type rawFetch struct {
	Timeout      *string `toml:"timeout"`
	MaxBodyBytes *int64  `toml:"max_body_bytes"`
	UserAgent    *string `toml:"user_agent"`
}

func loadAndApplyFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse TOML file %q: %v", ErrInvalidConfig, path, err)
	}

	setString(raw.DataDir, &cfg.DataDir)
	setString(raw.DatabaseFile, &cfg.DatabaseFile)
	if raw.Logging != nil {
		setString(raw.Logging.Level, &cfg.Logging.Level)
		setString(raw.Logging.Format, &cfg.Logging.Format)
	}
	if raw.Fetch != nil {
		if raw.Fetch.Timeout != nil {
			d, err := time.ParseDuration(*raw.Fetch.Timeout)
			if err != nil {
				return fmt.Errorf("%w: fetch.timeout: %v", ErrInvalidConfig, err)
			}
			cfg.Fetch.Timeout = d
		}
		if raw.Fetch.MaxBodyBytes != nil {
			cfg.Fetch.MaxBodyBytes = *raw.Fetch.MaxBodyBytes
		}
		setString(raw.Fetch.UserAgent, &cfg.Fetch.UserAgent)
	}
	return nil
}

// loadEnv returns the environment to read overrides from. Explicit opts.Env
// wins; otherwise the process environment is used after merging the dotenv
// file, which never overrides variables that are already set.
func loadEnv(opts LoadOptions) (func(string) (string, bool), error) {
	if opts.Env != nil {
		return func(k string) (string, bool) {
			v, ok := opts.Env[k]
			return v, ok
		}, nil
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if opts.EnvFile != "" || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %q: %w", envFile, err)
		}
	}
	return os.LookupEnv, nil
}

func applyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("RUBYLENS_DATA_DIR"); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := lookup("RUBYLENS_DATABASE_FILE"); ok && v != "" {
		cfg.DatabaseFile = v
	}
	if v, ok := lookup("RUBYLENS_LOG_LEVEL"); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := lookup("RUBYLENS_LOG_FORMAT"); ok && v != "" {
		cfg.Logging.Format = v
	}
	if v, ok := lookup("RUBYLENS_FETCH_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: parse RUBYLENS_FETCH_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		cfg.Fetch.Timeout = d
	}
	return nil
}

func applyFlagOverrides(cfg *Config, flags FlagOverrides) {
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
}

func setString(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}
