// Package config loads mocktools configuration from a TOML file, an optional
// .env file and MOCKTOOLS_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/tool"
)

// DotEnvFile is read from the working directory by Load when present.
const DotEnvFile = ".env"

// Environment variables consulted by Load.
const (
	EnvAddr           = "MOCKTOOLS_ADDR"
	EnvDataDir        = "MOCKTOOLS_DATA_DIR"
	EnvWatch          = "MOCKTOOLS_WATCH"
	EnvMinWordOverlap = "MOCKTOOLS_MIN_WORD_OVERLAP"
	EnvStrategies     = "MOCKTOOLS_STRATEGIES"
	EnvLogLevel       = "MOCKTOOLS_LOG_LEVEL"
	EnvLogFormat      = "MOCKTOOLS_LOG_FORMAT"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Dataset  DatasetConfig  `toml:"dataset"`
	Matching MatchingConfig `toml:"matching"`
	Log      LogConfig      `toml:"log"`
}

type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// DatasetConfig selects the catalogs. With an empty Dir only the embedded
// sample data is used; otherwise files in Dir override the embedded ones.
type DatasetConfig struct {
	Dir      string        `toml:"dir"`
	Watch    bool          `toml:"watch"`
	Debounce time.Duration `toml:"debounce"`
}

// MatchingConfig tunes the resolver for every tool. Empty Strategies enables
// all of them. MinWordOverlap is taken literally: 0 accepts any shared word.
type MatchingConfig struct {
	Strategies     []string `toml:"strategies"`
	MinWordOverlap float64  `toml:"min_word_overlap"`
}

// LogConfig leaves Level and Format empty to defer to LOG_LEVEL/LOG_FORMAT.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Dataset: DatasetConfig{
			Debounce: dataset.DefaultDebounce,
		},
		Matching: MatchingConfig{
			MinWordOverlap: resolve.DefaultMinWordOverlapRatio,
		},
	}
}

// Load reads .env, then the TOML file at path, then environment overrides.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvAddr); ok {
		c.Server.Addr = v
	}
	if v, ok := os.LookupEnv(EnvDataDir); ok {
		c.Dataset.Dir = v
	}
	if v, ok := os.LookupEnv(EnvWatch); ok {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWatch, err)
		}
		c.Dataset.Watch = watch
	}
	if v, ok := os.LookupEnv(EnvMinWordOverlap); ok {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMinWordOverlap, err)
		}
		c.Matching.MinWordOverlap = ratio
	}
	if v, ok := os.LookupEnv(EnvStrategies); ok {
		c.Matching.Strategies = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		c.Log.Format = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server.shutdown_timeout is negative"))
	}
	if c.Dataset.Watch && c.Dataset.Dir == "" {
		errs = append(errs, errors.New("dataset.watch requires dataset.dir"))
	}
	if c.Dataset.Debounce < 0 {
		errs = append(errs, errors.New("dataset.debounce is negative"))
	}
	if r := c.Matching.MinWordOverlap; r < 0 || r >= 1 {
		errs = append(errs, fmt.Errorf("matching.min_word_overlap %v is outside [0, 1)", r))
	}
	if _, err := resolve.ParseStrategies(c.Matching.Strategies...); err != nil {
		errs = append(errs, fmt.Errorf("matching.strategies: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ToolMatching converts the matching section for the tool layer.
func (c *Config) ToolMatching() (tool.Matching, error) {
	strategies, err := resolve.ParseStrategies(c.Matching.Strategies...)
	if err != nil {
		return tool.Matching{}, err
	}
	ratio := c.Matching.MinWordOverlap
	if ratio == 0 {
		ratio = resolve.AnyWordOverlap
	}
	return tool.Matching{
		Strategies:          strategies,
		MinWordOverlapRatio: ratio,
	}, nil
}
