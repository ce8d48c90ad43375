package restart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-wm/lattice/internal/layout"
	"github.com/lattice-wm/lattice/internal/stack"
)

func sampleWindowSet(t *testing.T) stack.WindowSet {
	t.Helper()
	ws, err := stack.New(
		[]stack.WorkspaceTag{"1", "2", "3"},
		[]stack.ScreenDetail{{Rect: stack.Rectangle{W: 1920, H: 1080}, Gap: stack.Gap{Top: 4}}},
		func() stack.Layout { return layout.NewTall(1, 0.03, 0.5) },
	)
	require.NoError(t, err)
	out := *ws
	out = stack.InsertUp(out, 0x100)
	out = stack.InsertUp(out, 0x101)
	out = stack.Float(out, 0x100, stack.RationalRect{X: 0.25, Y: 0.25, W: 0.5, H: 0.5})
	return out
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	ws := sampleWindowSet(t)
	blob, err := Serialize(ws)
	require.NoError(t, err)

	back, err := Deserialize(blob)
	require.NoError(t, err)

	assert.Equal(t, ws.Current.Workspace.Tag, back.Current.Workspace.Tag)
	assert.Equal(t, ws.Current.Workspace.Stack.ToList(), back.Current.Workspace.Stack.ToList())
	assert.Equal(t, ws.Current.Workspace.Stack.Focus, back.Current.Workspace.Stack.Focus)
	assert.Equal(t, ws.Current.Detail, back.Current.Detail)
	assert.Equal(t, ws.Floating, back.Floating)
	assert.Len(t, back.Hidden, len(ws.Hidden))

	encodedOriginal, err := ws.Current.Workspace.Layout.Encode()
	require.NoError(t, err)
	encodedRoundTripped, err := back.Current.Workspace.Layout.Encode()
	require.NoError(t, err)
	assert.Equal(t, encodedOriginal, encodedRoundTripped)
}

func TestSerializeDeserializeEmptyWorkspace(t *testing.T) {
	ws := sampleWindowSet(t)
	blob, err := Serialize(ws)
	require.NoError(t, err)
	back, err := Deserialize(blob)
	require.NoError(t, err)

	hidden, ok := back.FindTag("3")
	require.True(t, ok)
	assert.Nil(t, hidden.Stack)
}

func TestReleaseResourcesFromDoesNotPanicOnNilLayout(t *testing.T) {
	ws := sampleWindowSet(t)
	ws.Current.Workspace.Layout = nil
	assert.NotPanics(t, func() {
		ReleaseResourcesFrom(ws, testLogEntry())
	})
}
