// Package config resolves topicflow settings from, lowest first: built-in
// defaults, ~/.topicflow/config.yaml, the nearest .topicflow/config.yaml
// above the working directory, TF_* environment variables, and overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyDatabasePath     = "database.path"
	KeyTopicFile        = "topic.file"
	KeyTopicWatch       = "topic.watch"
	KeyShowImpliedEdges = "display.show-implied-edges"

	KeyLayoutNodeWidth   = "layout.node-width"
	KeyLayoutNodeHeight  = "layout.node-height"
	KeyLayoutNodeSpacing = "layout.node-spacing"
	KeyLayoutRankSpacing = "layout.rank-spacing"

	KeyViewportMargin      = "viewport.margin"
	KeyViewportMinZoom     = "viewport.min-zoom"
	KeyViewportMaxZoom     = "viewport.max-zoom"
	KeyViewportAnimationMs = "viewport.animation-ms"

	KeyCompositions = "compositions"
	KeyTheme        = "theme"
)

const (
	// DefaultNodeWidth and DefaultNodeHeight are the rendered node box size in px.
	DefaultNodeWidth  = 150
	DefaultNodeHeight = 66

	DefaultViewportMargin = 100
	DefaultMinZoom        = 0.25
	DefaultMaxZoom        = 1.0

	envPrefix = "TF"
	configDir = ".topicflow"
	fileName  = "config.yaml"
)

// defaults has every key except compositions, whose absence selects the
// built-in table.
var defaults = map[string]any{
	KeyDatabasePath:        "",
	KeyTopicFile:           "",
	KeyTopicWatch:          true,
	KeyShowImpliedEdges:    false,
	KeyLayoutNodeWidth:     DefaultNodeWidth,
	KeyLayoutNodeHeight:    DefaultNodeHeight,
	KeyLayoutNodeSpacing:   40,
	KeyLayoutRankSpacing:   80,
	KeyViewportMargin:      DefaultViewportMargin,
	KeyViewportMinZoom:     DefaultMinZoom,
	KeyViewportMaxZoom:     DefaultMaxZoom,
	KeyViewportAnimationMs: 500,
	KeyTheme:               "default",
}

type sources struct {
	workingDir  string
	projectFile string
	userFile    string
}

// Option adjusts where Initialize looks for files.
type Option func(*sources)

// WithWorkingDir sets the directory the project file search starts from.
func WithWorkingDir(dir string) Option {
	return func(s *sources) { s.workingDir = dir }
}

// WithProjectConfig skips the search and uses path as the project file.
func WithProjectConfig(path string) Option {
	return func(s *sources) { s.projectFile = path }
}

// WithUserConfig replaces ~/.topicflow/config.yaml.
func WithUserConfig(path string) Option {
	return func(s *sources) { s.userFile = path }
}

var (
	once    sync.Once
	mu      sync.RWMutex
	current *viper.Viper
	initErr error
)

// Initialize builds the configuration once. Later calls return the first
// result and ignore their options.
func Initialize(opts ...Option) error {
	once.Do(func() {
		var src sources
		for _, opt := range opts {
			opt(&src)
		}
		var v *viper.Viper
		v, initErr = load(src)
		if initErr == nil {
			mu.Lock()
			current = v
			mu.Unlock()
		}
	})
	return initErr
}

// ApplyOverrides sets keys above every other source.
func ApplyOverrides(overrides map[string]any) error {
	for k, val := range overrides {
		if err := Set(k, val); err != nil {
			return err
		}
	}
	return nil
}

// Set overrides a single key at runtime.
func Set(key string, value any) error {
	if err := Initialize(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		return errors.New("configuration not initialized")
	}
	current.Set(key, value)
	return nil
}

// read applies get to the live configuration, or returns the zero value
// when configuration could not be loaded.
func read[T any](key string, get func(*viper.Viper, string) T) T {
	var zero T
	if err := Initialize(); err != nil {
		return zero
	}
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return zero
	}
	return get(current, key)
}

func GetString(key string) string          { return read(key, (*viper.Viper).GetString) }
func GetBool(key string) bool              { return read(key, (*viper.Viper).GetBool) }
func GetInt(key string) int                { return read(key, (*viper.Viper).GetInt) }
func GetFloat64(key string) float64        { return read(key, (*viper.Viper).GetFloat64) }
func GetDuration(key string) time.Duration { return read(key, (*viper.Viper).GetDuration) }

// IsSet reports whether any source other than the defaults sets key.
func IsSet(key string) bool {
	return read(key, (*viper.Viper).IsSet)
}

// UnmarshalKey decodes a structured value, such as the composition table.
func UnmarshalKey(key string, out any) error {
	if err := Initialize(); err != nil {
		return err
	}
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return errors.New("configuration not initialized")
	}
	if err := current.UnmarshalKey(key, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func load(src sources) (*viper.Viper, error) {
	workingDir := strings.TrimSpace(src.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userFile := strings.TrimSpace(src.userFile)
	if userFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determine user home: %w", err)
		}
		userFile = filepath.Join(home, configDir, fileName)
	}

	projectFile := strings.TrimSpace(src.projectFile)
	if projectFile == "" {
		found, err := findProjectFile(workingDir)
		if err != nil {
			return nil, err
		}
		projectFile = found
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, layer := range []struct{ name, path string }{
		{"user", userFile},
		{"project", projectFile},
	} {
		if err := mergeFile(v, layer.path); err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
	}
	return v, nil
}

// mergeFile merges a YAML file into v. Missing and blank files are skipped.
func mergeFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	//nolint:gosec // G304: config files are chosen by the user
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// findProjectFile walks from dir to the filesystem root and returns the
// first .topicflow/config.yaml, or "" when there is none.
func findProjectFile(dir string) (string, error) {
	for dir != "" {
		candidate := filepath.Join(dir, configDir, fileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("config path %s is a directory", candidate)
		case err == nil:
			return candidate, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

//nolint:unused // used by config_test.go
func reset() {
	mu.Lock()
	defer mu.Unlock()
	current = nil
	initErr = nil
	once = sync.Once{}
}

// ResetForTesting reloads configuration from an empty temp directory so
// other packages' tests see only defaults. Call the returned func to clean up.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	return reset
}
