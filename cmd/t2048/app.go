package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/leaderboard"
	"github.com/vovakirdan/tui-2048/internal/persist"
	"github.com/vovakirdan/tui-2048/internal/registry"

	// Register storage drivers
	_ "github.com/vovakirdan/tui-2048/internal/storage"
)

// app holds everything a command needs once config is loaded.
type app struct {
	cfg     config.Config
	source  string
	logger  *log.Logger
	store   persist.Store
	bridge  *persist.Bridge
	board   *leaderboard.Board
	logFile *os.File
}

// loadConfig reads config and applies global flag overrides.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}

	if flagDriver != "" && flagDriver != cfg.Storage.Driver {
		cfg.Storage.Driver = flagDriver
		// A path configured for another driver does not fit this one.
		cfg.Storage.Path = ""
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Resolve(); err != nil {
		return config.Config{}, "", err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, source, nil
}

// newApp loads config, opens the store and builds the leaderboard.
// With logToFile set, logs go to log.file so they don't corrupt the TUI.
func newApp(logToFile bool) (*app, error) {
	cfg, source, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, source: source}

	var w io.Writer = os.Stderr
	if logToFile {
		// Never write to the terminal the game is drawn on.
		w = io.Discard
		if f, err := openLogFile(cfg.Log.File); err == nil && f != nil {
			a.logFile = f
			w = f
		}
	}
	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           cfg.LogLevel(),
	})
	a.logger.Debug("config loaded", "source", source, "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)

	store, err := registry.Open(cfg.Storage.Driver, registry.Options{
		Path:   cfg.Storage.Path,
		Logger: a.logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store

	a.bridge = persist.NewBridge(store,
		persist.WithStateKey(cfg.Storage.StateKey),
		persist.WithLeaderboardKey(cfg.Storage.LeaderboardKey),
	)
	a.board = leaderboard.New(a.bridge,
		leaderboard.WithPlaceholder(cfg.Leaderboard.PlaceholderName),
		leaderboard.WithDateFormat(cfg.Leaderboard.DateFormat),
		leaderboard.WithLogger(a.logger),
	)
	return a, nil
}

// stateBridge returns the bridge for user's saved game, or the local one.
func (a *app) stateBridge(user string) *persist.Bridge {
	if user == "" {
		return a.bridge
	}
	return a.bridge.ForState(a.bridge.StateKey() + ":" + user)
}

// Close releases the store and log file.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("closing store", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// openLogFile opens path for appending. An empty path disables file logging.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// mustApp is newApp for commands that cannot continue without it.
func mustApp(logToFile bool) *app {
	a, err := newApp(logToFile)
	if err != nil {
		fail("%v", err)
	}
	return a
}
