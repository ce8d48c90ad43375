package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Manager loads Config from a directory and can watch it for live edits.
// Grounded on _examples/DimaJoyti-AIOS/pkg/config/manager.go's Manager,
// narrowed to a single TOML file instead of a per-environment YAML tree.
type Manager struct {
	v   *viper.Viper
	dir string
}

// NewManager builds a Manager rooted at dir (typically DefaultConfigDir(),
// or the daemon's --config flag override).
func NewManager(dir string) *Manager {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	v.AutomaticEnv()
	v.SetEnvPrefix("LATTICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults(v)

	return &Manager{v: v, dir: dir}
}

// Dir returns the directory this Manager was constructed with.
func (m *Manager) Dir() string {
	return m.dir
}

// Load reads config.toml from Dir(), falling back silently to defaults
// when the file does not exist (a fresh install should still run), and
// fails on any other read/parse/validation error.
func (m *Manager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config.toml in %s: %w", m.dir, err)
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Watch installs a callback invoked with the freshly reloaded Config
// every time config.toml changes on disk. A reload that fails to
// unmarshal or validate never reaches onChange: onInvalid, when non-nil,
// is called with the error instead so the daemon can log it; when
// onInvalid is nil the error is dropped.
func (m *Manager) Watch(onChange func(*Config), onInvalid func(error)) {
	m.v.WatchConfig()
	m.v.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		if err := m.v.Unmarshal(&cfg); err != nil {
			if onInvalid != nil {
				onInvalid(fmt.Errorf("config: reload unmarshal: %w", err))
			}
			return
		}
		if err := validate(&cfg); err != nil {
			if onInvalid != nil {
				onInvalid(err)
			}
			return
		}
		onChange(&cfg)
	})
}
