package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// LocalName is the override file read next to name: "config.json5" becomes
// "config.local.json5".
func LocalName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

func readInto[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// reads a configuration file and merges the following files, where a higher
// number is more prioritized.
// 1. <name>.<ext>
// 2. <name>.local.<ext>
// fields left at their zero value in the local file keep the base value.
// returns os.ErrNotExist when neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found, err := readInto(name, &out)
	if err != nil {
		return out, err
	}

	localPath := LocalName(name)
	var override T
	foundLocal, err := readInto(localPath, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}

	if !found && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig, trying every directory from the cwd up to
// the filesystem root. It also returns the directory the config was found
// in so relative paths inside it can be resolved.
func ReadRecursively[T any](name string) (T, string, error) {
	var defaultOut T

	current, err := os.Getwd()
	if err != nil {
		return defaultOut, "", err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if err == nil {
			return config, current, nil
		}
		if !os.IsNotExist(err) {
			return defaultOut, "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return defaultOut, "", os.ErrNotExist
		}
		current = parent
	}
}
