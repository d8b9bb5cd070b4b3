package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

//go:embed config.json
var config embed.FS

const confName = "config.json"

type EditorConfig struct {
	LineWidth  int               `json:"lineWidth"`
	TextColor  string            `json:"textColor"`
	InputColor string            `json:"inputColor"`
	HintColor  string            `json:"hintColor"`
	ShowHints  bool              `json:"showHints"`
	Keys       map[string]string `json:"keys"`
}

type Config struct {
	log          *log.Logger
	dir          string
	watcher      *fsnotify.Watcher
	EditorConfig *EditorConfig
}

// DefaultDir is $XDG_CONFIG_HOME/wrt, falling back to ~/.wrt.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wrt")
	}
	return filepath.Join(os.Getenv("HOME"), ".wrt")
}

func NewConfig(log *log.Logger, dir string) *Config {
	return &Config{log: log, dir: dir}
}

func (cfg *Config) Dir() string {
	return cfg.dir
}

func (cfg *Config) File() string {
	return filepath.Join(cfg.dir, confName)
}

func (cfg *Config) Init() error {
	if err := cfg.writeConfigIfMissing(); err != nil {
		return err
	}
	return cfg.Reload()
}

func (cfg *Config) writeConfigIfMissing() error {
	if _, err := os.Stat(cfg.File()); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not stat config file: %w", err)
	}

	content, err := fs.ReadFile(config, confName)
	if err != nil {
		return fmt.Errorf("could not read embedded config file: %w", err)
	}
	if err := os.MkdirAll(cfg.dir, 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := os.WriteFile(cfg.File(), content, 0664); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	cfg.log.Printf("Wrote default config to %v", cfg.File())
	return nil
}

// Reload reads the config file on top of the embedded defaults. On error
// the previous config stays in place.
func (cfg *Config) Reload() error {
	next, err := Defaults()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(cfg.File())
	if err != nil {
		return fmt.Errorf("could not read config file into memory: %w", err)
	}
	if err := json.Unmarshal(content, next); err != nil {
		return fmt.Errorf("could not parse %v: %w", cfg.File(), err)
	}
	next.LineWidth = max(next.LineWidth, 1)
	cfg.EditorConfig = next
	return nil
}

// Defaults decodes the embedded config.json.
func Defaults() (*EditorConfig, error) {
	content, err := fs.ReadFile(config, confName)
	if err != nil {
		return nil, fmt.Errorf("could not read embedded config file: %w", err)
	}
	ec := &EditorConfig{}
	if err := json.Unmarshal(content, ec); err != nil {
		return nil, fmt.Errorf("could not parse embedded config file: %w", err)
	}
	return ec, nil
}

// Watch calls notify from a background goroutine whenever the config file
// is written. notify must not touch editor state directly.
func (cfg *Config) Watch(notify func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	if err := watcher.Add(cfg.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("could not watch config dir: %w", err)
	}
	cfg.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) == cfg.File() && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					notify()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				cfg.log.Printf("Config watcher: %v", err)
			}
		}
	}()
	return nil
}

func (cfg *Config) Cleanup() {
	if cfg.watcher != nil {
		cfg.watcher.Close()
		cfg.watcher = nil
	}
}
