package wm

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-wm/lattice/internal/stack"
)

func testLayout() stack.Layout { return nil }

func newTestCore(t *testing.T) *Core {
	t.Helper()
	ws, err := stack.New([]stack.WorkspaceTag{"1", "2"}, []stack.ScreenDetail{
		{Rect: stack.Rectangle{W: 1920, H: 1080}},
	}, testLayout)
	require.NoError(t, err)
	return &Core{
		State: NewState(*ws),
		Log:   logrus.NewEntry(logrus.New()),
	}
}

func TestDefaultManageInsertsAsFocus(t *testing.T) {
	c := newTestCore(t)
	c.manageWindow(0x100, ClientInfo{})
	focus, ok := c.State.WindowSet.PeekFocus()
	require.True(t, ok)
	assert.Equal(t, stack.WindowID(0x100), focus)
}

func TestDefaultManageFloatsDialogs(t *testing.T) {
	c := newTestCore(t)
	c.manageWindow(0x200, ClientInfo{Dialog: true})
	_, floating := c.State.WindowSet.Floating[0x200]
	assert.True(t, floating)
	assert.True(t, c.State.WindowSet.Current.Workspace.Stack.Contains(0x200),
		"a floated dialog must still be a member of its workspace stack")
}

func TestManageHookComposesAfterDefault(t *testing.T) {
	c := newTestCore(t)
	var sawDefaultFocus stack.WindowID
	c.Manage = func(w stack.WindowID, info ClientInfo) Endo {
		return func(ws stack.WindowSet) stack.WindowSet {
			sawDefaultFocus, _ = ws.PeekFocus()
			return stack.Shift(ws, "2")
		}
	}
	c.manageWindow(0x300, ClientInfo{})
	assert.Equal(t, stack.WindowID(0x300), sawDefaultFocus,
		"user hook must observe the default insert_up's result, not a pre-insert snapshot")
	dest, ok := c.State.WindowSet.FindTag("2")
	require.True(t, ok)
	assert.Equal(t, stack.WindowID(0x300), dest.Stack.Focus)
}
