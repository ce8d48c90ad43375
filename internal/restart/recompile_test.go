package restart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstituteReplacesAllTokens(t *testing.T) {
	got := substitute("go build -o {dst} {src}", map[string]string{"src": "a.go", "dst": "/tmp/out"})
	assert.Equal(t, "go build -o /tmp/out a.go", got)
}

func TestIsStaleWhenBinaryMissing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lattice.hs")
	require.NoError(t, os.WriteFile(src, []byte("-- config"), 0o644))

	stale, err := isStale(src, filepath.Join(dir, "lattice-bin"))
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestIsStaleWhenSourceNewer(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "lattice-bin")
	src := filepath.Join(dir, "lattice.hs")
	require.NoError(t, os.WriteFile(bin, []byte("old"), 0o755))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(src, []byte("-- newer"), 0o644))

	stale, err := isStale(src, bin)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestIsStaleFalseWhenBinaryNewer(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lattice.hs")
	bin := filepath.Join(dir, "lattice-bin")
	require.NoError(t, os.WriteFile(src, []byte("-- config"), 0o644))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(bin, []byte("compiled"), 0o755))

	stale, err := isStale(src, bin)
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestRecompileSkipsWhenNotStale(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lattice.hs")
	bin := filepath.Join(dir, "lattice-bin")
	require.NoError(t, os.WriteFile(src, []byte("-- config"), 0o644))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(bin, []byte("compiled"), 0o755))

	attempted, err := Recompile(Options{ConfigDir: dir, Source: "lattice.hs", Binary: "lattice-bin", ErrorLog: "error.log"}, false, testLogEntry())
	require.NoError(t, err)
	assert.False(t, attempted)
}
