// Package config loads the daemon's own ambient settings — gaps, border
// colors/width, the workspace tag list, the modifier key and lock-mask
// bits, and the recompile/restart command line — distinct from the
// user's key/mouse-binding source file that spec.md §1 keeps external
// and untouched by this package.
//
// Grounded on _examples/DimaJoyti-AIOS/pkg/config/manager.go's
// Manager: a *viper.Viper wrapped with SetConfigName/AddConfigPath/
// AutomaticEnv, Unmarshal into a typed struct, a validate pass, and a
// WatchConfig(callback) wrapper around viper.WatchConfig +
// OnConfigChange so edits reach a callback without a restart (spec.md §6).
// What a reload changes is up to that callback: the daemon's callback
// replaces border colors/width and lock masks, while gaps and workspace
// tags are read only at startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/lattice-wm/lattice/internal/restart"
	"github.com/lattice-wm/lattice/internal/stack"
	"github.com/lattice-wm/lattice/internal/wm"
)

// Config is the daemon's own settings, unmarshaled from
// $HOME/.lattice/config.toml (or wherever Manager.dir points).
type Config struct {
	WorkspaceTags []string `mapstructure:"workspace_tags"`

	GapTop    uint32 `mapstructure:"gap_top"`
	GapBottom uint32 `mapstructure:"gap_bottom"`
	GapLeft   uint32 `mapstructure:"gap_left"`
	GapRight  uint32 `mapstructure:"gap_right"`

	FocusedBorderColor string `mapstructure:"focused_border_color"`
	NormalBorderColor  string `mapstructure:"normal_border_color"`
	BorderWidth        uint32 `mapstructure:"border_width"`

	Modifier    string `mapstructure:"modifier"`
	NumlockMask uint16 `mapstructure:"numlock_mask"`
	LockMask    uint16 `mapstructure:"lock_mask"`

	ConfigSource   string `mapstructure:"config_source"`
	Binary         string `mapstructure:"binary"`
	ErrorLog       string `mapstructure:"error_log"`
	CompileCommand string `mapstructure:"compile_command"`
	DialogCommand  string `mapstructure:"dialog_command"`
}

// DefaultConfigDir returns $HOME/.lattice, the directory Manager looks in
// when no --config override is given (spec.md §6 CLI surface).
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolving home directory: %w", err)
	}
	return filepath.Join(home, ".lattice"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workspace_tags", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"})
	v.SetDefault("gap_top", 0)
	v.SetDefault("gap_bottom", 0)
	v.SetDefault("gap_left", 0)
	v.SetDefault("gap_right", 0)
	v.SetDefault("focused_border_color", "#ff0000")
	v.SetDefault("normal_border_color", "#000000")
	v.SetDefault("border_width", 1)
	v.SetDefault("modifier", "mod4")
	v.SetDefault("numlock_mask", 0x10)
	v.SetDefault("lock_mask", 0x02)
	v.SetDefault("config_source", "lattice.go")
	v.SetDefault("binary", "lattice-config")
	v.SetDefault("error_log", "error.log")
	v.SetDefault("compile_command", "go build -o {dst} {src}")
	v.SetDefault("dialog_command", "xmessage -file {errlog}")
}

func validate(cfg *Config) error {
	if len(cfg.WorkspaceTags) == 0 {
		return fmt.Errorf("config: workspace_tags must not be empty")
	}
	seen := make(map[string]struct{}, len(cfg.WorkspaceTags))
	for _, tag := range cfg.WorkspaceTags {
		if tag == "" {
			return fmt.Errorf("config: workspace_tags entries must not be empty")
		}
		if _, dup := seen[tag]; dup {
			return fmt.Errorf("config: duplicate workspace tag %q", tag)
		}
		seen[tag] = struct{}{}
	}
	if _, err := parseColor(cfg.FocusedBorderColor); err != nil {
		return fmt.Errorf("config: focused_border_color: %w", err)
	}
	if _, err := parseColor(cfg.NormalBorderColor); err != nil {
		return fmt.Errorf("config: normal_border_color: %w", err)
	}
	return nil
}

// parseColor turns a "#rrggbb" string into the 0x00RRGGBB pixel value X
// expects for a window border.
func parseColor(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("expected a 6-digit #rrggbb color, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as hex: %w", s, err)
	}
	return uint32(v), nil
}

// Tags converts WorkspaceTags into the stack package's tag type, in the
// order stack.New expects.
func (c *Config) Tags() []stack.WorkspaceTag {
	tags := make([]stack.WorkspaceTag, len(c.WorkspaceTags))
	for i, t := range c.WorkspaceTags {
		tags[i] = stack.WorkspaceTag(t)
	}
	return tags
}

// Gap converts the four gap fields into a stack.Gap.
func (c *Config) Gap() stack.Gap {
	return stack.Gap{Top: c.GapTop, Bottom: c.GapBottom, Left: c.GapLeft, Right: c.GapRight}
}

// ToWMConfig converts into the wm.Core's runtime Config, resolving the
// border color strings into X pixel values. Colors were already checked
// by validate during Load/Watch, so the parse here cannot fail in
// practice; it is re-checked anyway since ToWMConfig may be called on a
// Config built by hand (e.g. in a test) that skipped validate.
func (c *Config) ToWMConfig() (wm.Config, error) {
	focused, err := parseColor(c.FocusedBorderColor)
	if err != nil {
		return wm.Config{}, fmt.Errorf("config: focused_border_color: %w", err)
	}
	normal, err := parseColor(c.NormalBorderColor)
	if err != nil {
		return wm.Config{}, fmt.Errorf("config: normal_border_color: %w", err)
	}
	return wm.Config{
		FocusedBorder: focused,
		NormalBorder:  normal,
		BorderWidth:   c.BorderWidth,
		NumlockMask:   c.NumlockMask,
		LockMask:      c.LockMask,
	}, nil
}

// ToRestartOptions converts into the Options internal/restart.Recompile
// needs, rooted at configDir (the same directory this Config was loaded
// from).
func (c *Config) ToRestartOptions(configDir string) restart.Options {
	return restart.Options{
		ConfigDir:      configDir,
		Source:         c.ConfigSource,
		Binary:         c.Binary,
		ErrorLog:       c.ErrorLog,
		CompileCommand: c.CompileCommand,
		Dialog:         c.DialogCommand,
	}
}
