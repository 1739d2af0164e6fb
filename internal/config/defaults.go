package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Driver:         "sqlite",
			StateKey:       "gameState",
			LeaderboardKey: "leaderboard",
		},
		Leaderboard: LeaderboardConfig{
			PlaceholderName: "Player",
			DateFormat:      "2006-01-02 15:04:05",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.t2048/t2048.log",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultStoragePath returns where a driver keeps its data when no path
// is configured. Drivers without on-disk state get "".
func DefaultStoragePath(driver string) string {
	switch driver {
	case "sqlite":
		return "~/.t2048/t2048.db"
	case "badger":
		return "~/.t2048/badger"
	default:
		return ""
	}
}

// DefaultHostKeyPath is where the SSH server keeps its generated key.
const DefaultHostKeyPath = "~/.t2048/host_key"
