// Package config holds the runtime knobs for the kittens binary.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all configurable parameters. Durations are carried as
// millisecond integers so the YAML stays plain numbers.
type Config struct {
	ListenAddr     string `yaml:"listen_addr"`
	NopeWindowMS   int    `yaml:"nope_window_ms"`
	AIDelayMS      int    `yaml:"ai_delay_ms"`
	ScoreboardPath string `yaml:"scoreboard_path"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		ListenAddr:     ":8080",
		NopeWindowMS:   5000,
		AIDelayMS:      750,
		ScoreboardPath: "scoreboard.json",
	}
}

// Load reads the optional YAML config file, then applies KITTENS_*
// environment overrides. A missing file is not an error; a malformed
// one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults apply
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	overrideString(&cfg.ListenAddr, "KITTENS_LISTEN_ADDR")
	overrideInt(&cfg.NopeWindowMS, "KITTENS_NOPE_WINDOW_MS")
	overrideInt(&cfg.AIDelayMS, "KITTENS_AI_DELAY_MS")
	overrideString(&cfg.ScoreboardPath, "KITTENS_SCOREBOARD_PATH")
	return cfg, nil
}

// NopeWindow returns the veto window as a duration.
func (c *Config) NopeWindow() time.Duration {
	return time.Duration(c.NopeWindowMS) * time.Millisecond
}

// AIDelay returns the AI decision pause as a duration.
func (c *Config) AIDelay() time.Duration {
	return time.Duration(c.AIDelayMS) * time.Millisecond
}

func overrideString(field *string, key string) {
	if val := os.Getenv(key); val != "" {
		*field = val
	}
}

func overrideInt(field *int, key string) {
	val := os.Getenv(key)
	if val == "" {
		return
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		logrus.WithField("key", key).Warnf("ignoring invalid value %q", val)
		return
	}
	*field = n
}
