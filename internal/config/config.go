// Package config loads config.json5, the settings shared by every command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"routerscrape/internal/pagesource"
	"routerscrape/internal/router"
	"routerscrape/lib/configutil"
	"routerscrape/lib/snapshotstore"

	"dario.cat/mergo"
)

const FileName = "config.json5"

type Metrics struct {
	Listen string `json:"listen"`
	Path   string `json:"path"`
}

type Snapshot struct {
	// Schedule is a cron spec for periodic snapshots while serving, empty
	// disables them.
	Schedule string `json:"schedule"`
	// Retention is how long scheduled snapshots keep counter and line
	// history, as a Go duration ("720h"). "0" keeps everything.
	Retention string `json:"retention"`
}

// RetentionPeriod parses Retention.
func (s Snapshot) RetentionPeriod() (time.Duration, error) {
	if s.Retention == "" {
		return 0, nil
	}
	retention, err := time.ParseDuration(s.Retention)
	if err != nil {
		return 0, fmt.Errorf("snapshot retention: %w", err)
	}
	if retention < 0 {
		return 0, fmt.Errorf("snapshot retention: %s is negative", s.Retention)
	}
	return retention, nil
}

type Log struct {
	File  string `json:"file"`
	Debug bool   `json:"debug"`
}

type Config struct {
	// PagesDir holds the saved router pages, relative to the config file.
	PagesDir string `json:"pages_dir"`
	// Pages overrides the file name of single pages, keyed by page name
	// ("device_info", "statistics_wlan", ...).
	Pages     map[string]string    `json:"pages"`
	Selectors pagesource.Selectors `json:"selectors"`
	// Timezone is the IANA zone the router writes log timestamps in.
	Timezone string               `json:"timezone"`
	Layout   router.Layout        `json:"layout"`
	Store    snapshotstore.Config `json:"store"`
	Metrics  Metrics              `json:"metrics"`
	Snapshot Snapshot             `json:"snapshot"`
	Log      Log                  `json:"log"`
}

func defaults() Config {
	return Config{
		PagesDir:  ".",
		Selectors: pagesource.DefaultSelectors(),
		Layout:    router.DefaultLayout(),
		Store:     snapshotstore.Config{File: "routerscrape.db"},
		Metrics: Metrics{
			Listen: ":9469",
			Path:   "/metrics",
		},
		Snapshot: Snapshot{Retention: "720h"},
	}
}

// Load reads the config at path, or searches config.json5 upwards from the
// cwd when path is empty. Without any config file the defaults are used.
// Fields left out keep their default value and relative paths are resolved
// against the config file's directory.
func Load(path string) (Config, error) {
	var (
		read Config
		dir  string
		err  error
	)
	if path != "" {
		read, err = configutil.ReadConfig[Config](path)
		dir = filepath.Dir(path)
	} else {
		read, dir, err = configutil.ReadRecursively[Config](FileName)
		if errors.Is(err, os.ErrNotExist) {
			dir, err = os.Getwd()
		}
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	config := defaults()
	err = mergo.Merge(&config, read, mergo.WithOverride)
	if err != nil {
		return Config{}, fmt.Errorf("merge config: %w", err)
	}

	_, err = config.Snapshot.RetentionPeriod()
	if err != nil {
		return Config{}, err
	}

	config.PagesDir = resolve(dir, config.PagesDir)
	config.Log.File = resolve(dir, config.Log.File)
	if config.Store.Url == "" {
		config.Store.File = resolve(dir, config.Store.File)
	}
	return config, nil
}

func resolve(dir, path string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// PageSource is the source of the configured page dumps.
func (c Config) PageSource() pagesource.Dir {
	return pagesource.NewDir(c.PagesDir, c.Pages, c.Selectors)
}
