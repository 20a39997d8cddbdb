package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultStoreName      = "nudge.db"

	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Edit           string `toml:"edit"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	ClearCompleted string `toml:"clear_completed"`
	CycleFilter    string `toml:"cycle_filter"`
	CycleSort      string `toml:"cycle_sort"`
	DailyReminder  string `toml:"daily_reminder"`
	Steps          string `toml:"steps"`
}

type Config struct {
	Backend       string `toml:"backend"`
	StorePath     string `toml:"store_path"`
	DefaultFilter string `toml:"default_filter"`
	DefaultSort   string `toml:"default_sort"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath places the config under the user config dir,
// falling back to the working directory when it is unavailable.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, "nudge", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendSQLite
	}
	if cfg.StorePath == "" {
		cfg.StorePath = filepath.Join(filepath.Dir(path), DefaultStoreName)
	}
	if cfg.DefaultFilter == "" {
		cfg.DefaultFilter = "all"
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = "none"
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		Backend:       BackendSQLite,
		StorePath:     filepath.Join(dir, DefaultStoreName),
		DefaultFilter: "all",
		DefaultSort:   "none",
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Edit:           "e",
			Confirm:        "enter",
			Cancel:         "esc",
			ClearCompleted: "c",
			CycleFilter:    "f",
			CycleSort:      "s",
			DailyReminder:  "r",
			Steps:          "g",
		},
	}
}
