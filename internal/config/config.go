// Package config provides YAML-based configuration loading for t2048.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the whole t2048 configuration.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Log         LogConfig         `yaml:"log"`
	SSH         SSHConfig         `yaml:"ssh"`
}

// StorageConfig selects and locates the key-value driver.
type StorageConfig struct {
	Driver         string `yaml:"driver"`
	Path           string `yaml:"path"` // file for sqlite, directory for badger
	StateKey       string `yaml:"state_key"`
	LeaderboardKey string `yaml:"leaderboard_key"`
}

// LeaderboardConfig controls how new records are written.
type LeaderboardConfig struct {
	PlaceholderName string `yaml:"placeholder_name"`
	DateFormat      string `yaml:"date_format"` // Go time layout
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SSHConfig defines the wish server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Validate reports the first setting that cannot work.
// Whether the driver exists is checked when the store is opened.
func (c Config) Validate() error {
	if c.Storage.Driver == "" {
		return errors.New("config: storage.driver is empty")
	}
	if c.Storage.StateKey == "" || c.Storage.LeaderboardKey == "" {
		return errors.New("config: storage keys must not be empty")
	}
	if c.Storage.StateKey == c.Storage.LeaderboardKey {
		return fmt.Errorf("config: state_key and leaderboard_key are both %q", c.Storage.StateKey)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("config: ssh.idle_timeout is negative (%s)", c.SSH.IdleTimeout)
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
