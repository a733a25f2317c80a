package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config describes where and how tasks are stored.
type Config interface {
	BasePath() string
	Key() string
	Locale() string
	SearchDebounce() time.Duration
	LogLevel() string
	LogFormat() string
}

const (
	defaultPath     = "~/.todo.db"
	defaultDebounce = 300 * time.Millisecond
)

// LoadConfig reads .todo.yaml from $TODO_CONFIG_PATH or the working
// directory. Settings may also come from TODO_* environment variables. A
// missing config file is not an error.
func LoadConfig() (Config, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("path", defaultPath)
	v.SetDefault("key", DefaultKey)
	v.SetDefault("locale", "und")
	v.SetDefault("search.debounce", defaultDebounce)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetConfigName(".todo") // .yaml is implicit
	v.SetEnvPrefix("TODO")
	v.AutomaticEnv()

	if override := os.Getenv("TODO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	debounce := v.GetDuration("search.debounce")
	if debounce < 0 {
		debounce = defaultDebounce
	}

	return &fileConfig{
		Path:      path,
		StoreKey:  v.GetString("key"),
		Lang:      v.GetString("locale"),
		Debounce:  debounce,
		Level:     v.GetString("log.level"),
		Format:    v.GetString("log.format"),
	}, nil
}

type fileConfig struct {
	Path     string        `json:"path"`
	StoreKey string        `json:"key"`
	Lang     string        `json:"locale"`
	Debounce time.Duration `json:"searchDebounce"`
	Level    string        `json:"logLevel"`
	Format   string        `json:"logFormat"`
}

func (f *fileConfig) BasePath() string              { return f.Path }
func (f *fileConfig) Key() string                   { return f.StoreKey }
func (f *fileConfig) Locale() string                { return f.Lang }
func (f *fileConfig) SearchDebounce() time.Duration { return f.Debounce }
func (f *fileConfig) LogLevel() string              { return f.Level }
func (f *fileConfig) LogFormat() string             { return f.Format }

// StaticConfig is a Config with fixed values, handy for tests and for
// callers that resolve settings themselves.
type StaticConfig struct {
	Path     string
	StoreKey string
	Lang     string
	Debounce time.Duration
	Level    string
	Format   string
}

func (s StaticConfig) BasePath() string { return s.Path }

func (s StaticConfig) Key() string {
	if s.StoreKey == "" {
		return DefaultKey
	}
	return s.StoreKey
}

func (s StaticConfig) Locale() string {
	if s.Lang == "" {
		return "und"
	}
	return s.Lang
}

func (s StaticConfig) SearchDebounce() time.Duration {
	if s.Debounce <= 0 {
		return defaultDebounce
	}
	return s.Debounce
}

func (s StaticConfig) LogLevel() string  { return s.Level }
func (s StaticConfig) LogFormat() string { return s.Format }
