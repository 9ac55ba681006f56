// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for completion requests.
	defaultRequestTimeout = 600 * time.Second
	// defaultShots is the number of few-shot exemplars used when the config omits the value.
	defaultShots = 5
	// defaultRetryBackoff is the base backoff between retry attempts.
	defaultRetryBackoff = 2 * time.Second
)

// Config represents the top-level application configuration.
// It is loaded once before a run and treated as read-only afterwards.
type Config struct {
	Hosts          []Host  `json:"hosts"`
	Dataset        Dataset `json:"dataset"`
	NumShots       *int    `json:"numShots,omitempty"`
	SystemPrompt   string  `json:"systemPrompt"`
	Seed           int64   `json:"seed,omitempty"`
	TimeoutSeconds int     `json:"timeout,omitempty"`
	RetryCount     int     `json:"retryCount,omitempty"`
	RetryBackoffMs int     `json:"retryBackoffMs,omitempty"`
	SkipFailures   bool    `json:"skipFailures"`
	ExcludeTarget  bool    `json:"excludeTarget"`
	Progress       bool    `json:"progress"`
	ResultsDir     string  `json:"resultsDir,omitempty"`
	Debug          bool    `json:"debug"`
	LogFile        string  `json:"logFile,omitempty"`
	ConfigPath     string  `json:"-"`
}

// Host represents a single endpoint that can serve chat completions.
type Host struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Type   string `json:"type"`
	Model  string `json:"model"`
	APIKey string `json:"apiKey,omitempty"`
}

// Dataset points at the upstream collaborator output: a JSONL question file
// and an optional hints file keyed by question id.
type Dataset struct {
	QuestionsPath string `json:"questions"`
	HintsPath     string `json:"hints,omitempty"`
}

// RequestTimeout returns the timeout duration for completion requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ShotCount returns the configured number of few-shot exemplars, applying the default when unset.
func (c Config) ShotCount() int {
	if c.NumShots == nil {
		return defaultShots
	}
	if *c.NumShots < 0 {
		return 0
	}
	return *c.NumShots
}

// RetryAttempts returns how many additional attempts are made after a failed
// completion call. Zero preserves the fail-fast behavior.
func (c Config) RetryAttempts() int {
	if c.RetryCount < 0 {
		return 0
	}
	return c.RetryCount
}

// RetryBackoff returns the base delay between retry attempts.
func (c Config) RetryBackoff() time.Duration {
	if c.RetryBackoffMs <= 0 {
		return defaultRetryBackoff
	}
	return time.Duration(c.RetryBackoffMs) * time.Millisecond
}

// ResultsPath returns the directory where per-model result files are written.
func (c Config) ResultsPath() string {
	if dir := strings.TrimSpace(c.ResultsDir); dir != "" {
		return dir
	}
	return "hintevalData/results"
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "hinteval.log"
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if len(config.Hosts) == 0 {
		return Config{}, errors.New("config must contain at least one host")
	}
	for _, host := range config.Hosts {
		if strings.TrimSpace(host.Model) == "" {
			return Config{}, fmt.Errorf("host %q must name a model", host.Name)
		}
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
