// Package config loads the chatgraph.yaml file used by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"time"

	"github.com/aretw0/chatgraph/internal/logging"
	"github.com/aretw0/chatgraph/pkg/matcher"
	"github.com/aretw0/chatgraph/pkg/policy"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "chatgraph.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

var drivers = []string{DriverMemory, DriverFile, DriverRedis, DriverSQLite}

// Config is the full CLI configuration.
type Config struct {
	Name       string          `mapstructure:"name"`
	Definition string          `mapstructure:"definition"`
	Avatar     string          `mapstructure:"avatar"`
	Matcher    matcher.Config  `mapstructure:"matcher"`
	Responses  ResponsesConfig `mapstructure:"responses"`
	Log        LogConfig       `mapstructure:"log"`
	Store      StoreConfig     `mapstructure:"store"`
	HTTP       HTTPConfig      `mapstructure:"http"`
}

type ResponsesConfig struct {
	Policy  string `mapstructure:"policy"`
	Seed    uint64 `mapstructure:"seed"`
	Default string `mapstructure:"default"`
	Greet   bool   `mapstructure:"greet"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig selects where session snapshots live.
// Path is used by the file driver, DSN by sqlite.
type StoreConfig struct {
	Driver  string        `mapstructure:"driver"`
	Path    string        `mapstructure:"path"`
	DSN     string        `mapstructure:"dsn"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Lock    bool          `mapstructure:"lock"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// Default returns the configuration used for absent keys.
func Default() Config {
	return Config{
		Name:       "chatgraph",
		Definition: "answergraph.txt",
		Avatar:     "avatar.svg",
		Matcher:    matcher.DefaultConfig(),
		Responses: ResponsesConfig{
			Policy:  policy.NameFirst,
			Default: "Sorry, I have nothing to say about that.",
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Store: StoreConfig{
			Driver:  DriverMemory,
			Path:    ".chatgraph/sessions",
			DSN:     ".chatgraph/sessions.db",
			LockTTL: 30 * time.Second,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// silently falls back to the defaults when it does not exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(raw) > 0 {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				secondsToDurationHook,
			),
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			Result:           &cfg,
		})
		if err != nil {
			return Config{}, err
		}
		if err := decoder.Decode(raw); err != nil {
			return Config{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// secondsToDurationHook reads bare numbers as seconds.
func secondsToDurationHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	}
	return data, nil
}

// Validate rejects values no component accepts.
func (c Config) Validate() error {
	var errs []error
	if c.Definition == "" {
		errs = append(errs, errors.New("definition path is required"))
	}
	if c.Matcher.FuzzyRatio < 0 || c.Matcher.FuzzyRatio > 1 {
		errs = append(errs, fmt.Errorf("matcher.fuzzy_ratio must be within [0, 1], got %v", c.Matcher.FuzzyRatio))
	}
	if c.Matcher.MaxDistance < 0 {
		errs = append(errs, fmt.Errorf("matcher.max_distance must not be negative, got %d", c.Matcher.MaxDistance))
	}
	if _, err := policy.New(c.Responses.Policy, c.Responses.Seed); err != nil {
		errs = append(errs, fmt.Errorf("responses.policy: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if !slices.Contains(drivers, c.Store.Driver) {
		errs = append(errs, fmt.Errorf("store.driver must be one of %v, got %q", drivers, c.Store.Driver))
	}
	if c.Store.Lock && c.Store.Driver != DriverRedis {
		errs = append(errs, errors.New("store.lock requires the redis driver"))
	}
	if c.Store.LockTTL <= 0 {
		errs = append(errs, errors.New("store.lock_ttl must be positive"))
	}
	return errors.Join(errs...)
}
