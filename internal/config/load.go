package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// SettingsFilepathEnv names the environment variable holding an explicit
// settings file path. It is tried before the conventional locations.
const SettingsFilepathEnv = "SETTINGS_FILEPATH"

// conventionalPaths are tried, relative to the root directory, after
// SETTINGS_FILEPATH.
var conventionalPaths = []string{
	"settings.json",
	"../site/settings.json",
}

// Errors returned by Load.
var (
	// ErrInvalidSettings is returned when the effective settings fail validation.
	// The application must not serve requests in that case.
	ErrInvalidSettings = errors.New("settings validation failed")

	// ErrSettingsFile is returned when a settings file exists but cannot be read or parsed.
	ErrSettingsFile = errors.New("unreadable settings file")
)

var validate = validator.New()

// Options controls where Load looks for input.
// The zero value uses the working directory and the process environment.
type Options struct {
	// RootDir is the directory the conventional settings paths are relative to.
	RootDir string

	// LookupEnv reads an environment variable. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Load resolves the settings from defaults, the settings file and the
// environment, using the working directory and the process environment.
func Load() (*Settings, error) {
	return LoadWithOptions(Options{})
}

// LoadWithOptions resolves the settings.
// Precedence from lowest to highest: defaults, settings file, environment.
// Returns an error wrapping ErrInvalidSettings if the result is invalid.
func LoadWithOptions(opts Options) (*Settings, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	v := viper.New()
	raw := make(map[string]any, len(settingsTable))
	for _, s := range settingsTable {
		v.SetDefault(key(s.Name), s.Default)
		raw[s.Name] = s.Default
	}

	path, fileValues, err := readSettingsFile(v, candidatePaths(opts.RootDir, lookup))
	if err != nil {
		return nil, err
	}
	maps.Copy(raw, fileValues)
	maps.Copy(raw, applyEnv(v, settingsTable, lookup))

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	settings.SettingsFile = path
	settings.Raw = raw

	if err := validate.Struct(settings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	return &settings, nil
}

// candidatePaths returns the settings file locations in search order.
func candidatePaths(rootDir string, lookup func(string) (string, bool)) []string {
	var paths []string
	if p, ok := lookup(SettingsFilepathEnv); ok && p != "" {
		paths = append(paths, p)
	}
	for _, p := range conventionalPaths {
		paths = append(paths, filepath.Clean(filepath.Join(rootDir, p)))
	}
	return paths
}

// readSettingsFile merges the first existing file among paths into v.
// Missing files are skipped; the remaining candidates are not tried once
// one has been read. Returns the path that was read, or "" if none exists,
// and the file's top-level values keyed exactly as written. viper folds
// key case and splits keys on dots, so the raw values are decoded
// separately.
func readSettingsFile(v *viper.Viper, paths []string) (string, map[string]any, error) {
	v.SetConfigType("json")
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrSettingsFile, path, err)
		}
		var values map[string]any
		if err := json.Unmarshal(data, &values); err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrSettingsFile, path, err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrSettingsFile, path, err)
		}
		return path, values, nil
	}
	return "", nil, nil
}

// applyEnv overlays the environment onto v in table order. Unset variables
// and conversion failures keep the previous value. Returns the applied
// values by setting name.
func applyEnv(v *viper.Viper, table []setting, lookup func(string) (string, bool)) map[string]any {
	applied := make(map[string]any)
	for _, s := range table {
		if s.Env == nil {
			continue
		}
		raw, ok := lookup(s.Name)
		if !ok {
			continue
		}
		value, err := s.Env(raw)
		if err != nil {
			continue
		}
		v.Set(key(s.Name), value)
		applied[s.Name] = value
	}
	return applied
}
