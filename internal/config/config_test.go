package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, cfg.WorkspaceTags)
	assert.Equal(t, uint32(1), cfg.BorderWidth)
	assert.Equal(t, "go build -o {dst} {src}", cfg.CompileCommand)
}

func TestLoadReadsOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	toml := `
workspace_tags = ["web", "term", "chat"]
gap_top = 22
border_width = 3
focused_border_color = "#ffaa00"
modifier = "mod1"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644))

	cfg, err := NewManager(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"web", "term", "chat"}, cfg.WorkspaceTags)
	assert.Equal(t, uint32(22), cfg.GapTop)
	assert.Equal(t, uint32(3), cfg.BorderWidth)
	assert.Equal(t, "#ffaa00", cfg.FocusedBorderColor)
	assert.Equal(t, "mod1", cfg.Modifier)
}

func TestLoadRejectsDuplicateWorkspaceTags(t *testing.T) {
	dir := t.TempDir()
	toml := `workspace_tags = ["1", "1", "2"]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644))

	_, err := NewManager(dir).Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedColor(t *testing.T) {
	dir := t.TempDir()
	toml := `focused_border_color = "not-a-color"`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644))

	_, err := NewManager(dir).Load()
	assert.Error(t, err)
}

func TestParseColorAcceptsSixHexDigitsWithOrWithoutHash(t *testing.T) {
	v, err := parseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, uint32(0xff0000), v)

	v, err = parseColor("00ff00")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00ff00), v)
}

func TestTagsAndGapConvertToStackTypes(t *testing.T) {
	cfg := &Config{
		WorkspaceTags: []string{"a", "b"},
		GapTop:        1, GapBottom: 2, GapLeft: 3, GapRight: 4,
	}
	tags := cfg.Tags()
	require.Len(t, tags, 2)
	assert.Equal(t, "a", string(tags[0]))

	gap := cfg.Gap()
	assert.Equal(t, uint32(1), gap.Top)
	assert.Equal(t, uint32(4), gap.Right)
}

func TestToWMConfigResolvesColors(t *testing.T) {
	cfg := &Config{
		FocusedBorderColor: "#ff0000",
		NormalBorderColor:  "#00ff00",
		BorderWidth:        2,
		NumlockMask:        0x10,
		LockMask:           0x02,
	}
	wc, err := cfg.ToWMConfig()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xff0000), wc.FocusedBorder)
	assert.Equal(t, uint32(0x00ff00), wc.NormalBorder)
	assert.Equal(t, uint32(2), wc.BorderWidth)
	assert.Equal(t, uint16(0x10), wc.NumlockMask)
}

func TestToWMConfigFailsOnBadColor(t *testing.T) {
	cfg := &Config{FocusedBorderColor: "nope", NormalBorderColor: "#000000"}
	_, err := cfg.ToWMConfig()
	assert.Error(t, err)
}

func TestToRestartOptionsCarriesConfigDir(t *testing.T) {
	cfg := &Config{
		ConfigSource:   "lattice.go",
		Binary:         "lattice-config",
		ErrorLog:       "error.log",
		CompileCommand: "go build -o {dst} {src}",
		DialogCommand:  "xmessage -file {errlog}",
	}
	opts := cfg.ToRestartOptions("/home/user/.lattice")
	assert.Equal(t, "/home/user/.lattice", opts.ConfigDir)
	assert.Equal(t, "lattice.go", opts.Source)
	assert.Equal(t, "xmessage -file {errlog}", opts.Dialog)
}

func TestWatchDoesNotInvokeCallbackBeforeAnyChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`border_width = 1`), 0o644))

	m := NewManager(dir)
	_, err := m.Load()
	require.NoError(t, err)

	var got *Config
	m.Watch(func(c *Config) { got = c }, func(error) {})

	// Watch registers fsnotify handlers but does not fire synchronously;
	// exercising the actual filesystem event delivery belongs to an
	// integration test run against a real daemon, not this unit test.
	assert.Nil(t, got)
}
