package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noLayout() Layout { return nil }

func fullScreen() ScreenDetail {
	return ScreenDetail{Rect: Rectangle{X: 0, Y: 0, W: 1920, H: 1080}}
}

func freshSet(t *testing.T, tags ...WorkspaceTag) *WindowSet {
	t.Helper()
	ws, err := New(tags, []ScreenDetail{fullScreen()}, noLayout)
	require.NoError(t, err)
	return ws
}

func seedThree(t *testing.T) WindowSet {
	t.Helper()
	ws := *freshSet(t, "1", "2", "3", "4", "5", "6", "7", "8", "9")
	ws = InsertUp(ws, 0x100)
	ws = InsertUp(ws, 0x101)
	ws = InsertUp(ws, 0x102)
	return ws
}

func TestInsertUpMakesLatestFocusAndMaster(t *testing.T) {
	ws := seedThree(t)
	focus, ok := ws.PeekFocus()
	require.True(t, ok)
	assert.Equal(t, WindowID(0x102), focus)
	// Up stays empty across successive InsertUp calls (the operation never
	// populates it), so master == focus here; see DESIGN.md for the
	// resolution of this vs. spec.md §8 scenario S1's illustrative numbers.
	assert.Empty(t, ws.Current.Workspace.Stack.Up)
	assert.Equal(t, []WindowID{0x101, 0x100}, ws.Current.Workspace.Stack.Down)
}

func TestFocusUpDownRoundtrip(t *testing.T) {
	ws := seedThree(t)
	rt := FocusDown(FocusUp(ws))
	assert.Equal(t, ws.Current.Workspace.Stack, rt.Current.Workspace.Stack)

	rt2 := FocusUp(FocusDown(ws))
	assert.Equal(t, ws.Current.Workspace.Stack, rt2.Current.Workspace.Stack)
}

func TestFocusDownWraps(t *testing.T) {
	ws := seedThree(t)
	// focus is 0x102 (head of [0x102 0x101 0x100]); focus_down steps to the
	// next window in list order, and from the last window wraps to the head.
	next := FocusDown(ws)
	f, _ := next.PeekFocus()
	assert.Equal(t, WindowID(0x101), f)

	last := FocusDown(next)
	f, _ = last.PeekFocus()
	assert.Equal(t, WindowID(0x100), f)

	wrapped := FocusDown(last)
	f, _ = wrapped.PeekFocus()
	assert.Equal(t, WindowID(0x102), f)
}

func TestSwapUpDownPreserveFocusIdentity(t *testing.T) {
	ws := seedThree(t)
	before, _ := ws.PeekFocus()
	swapped := SwapUp(ws)
	after, _ := swapped.PeekFocus()
	assert.Equal(t, before, after, "swap_up must keep focus on the same window")
}

func TestSwapMasterWhenAlreadyMasterSwapsWithNext(t *testing.T) {
	ws := seedThree(t)
	// 0x102 is focus and master (Up empty): swap_master exchanges master
	// and position-1 per this implementation's definition, but (like
	// swap_up/swap_down) focus keeps pointing at the same window.
	swapped := SwapMaster(ws)
	focus, _ := swapped.PeekFocus()
	assert.Equal(t, WindowID(0x102), focus, "swap_master must not move focus off the window it started on")
	assert.Equal(t, []WindowID{0x101}, swapped.Current.Workspace.Stack.Up, "0x101 becomes the new master")
}

func TestInsertDeleteInverse(t *testing.T) {
	ws := *freshSet(t, "1", "2")
	before := ws.Clone()
	after := Delete(InsertUp(ws, 0x200), 0x200)
	assert.Equal(t, before.Current.Workspace.Stack, after.Current.Workspace.Stack)
}

func TestUniquenessAfterShift(t *testing.T) {
	ws := seedThree(t)
	shifted := Shift(ws, "2")
	seen := map[WindowID]int{}
	for _, w := range shifted.Current.Workspace.Stack.ToList() {
		seen[w]++
	}
	for _, hws := range shifted.Hidden {
		for _, w := range hws.Stack.ToList() {
			seen[w]++
		}
	}
	for w, n := range seen {
		assert.Equal(t, 1, n, "window %v duplicated", w)
	}
}

func TestShiftConservation(t *testing.T) {
	ws := seedThree(t)
	focus, _ := ws.PeekFocus()
	shifted := Shift(ws, "2")
	assert.Equal(t, 2, shifted.Current.Workspace.Stack.Len())
	assert.False(t, shifted.Current.Workspace.Stack.Contains(focus))

	dest, ok := shifted.FindTag("2")
	require.True(t, ok)
	require.NotNil(t, dest.Stack)
	assert.Equal(t, focus, dest.Stack.Focus)
}

func TestShiftNoOpOnCurrentTag(t *testing.T) {
	ws := seedThree(t)
	same := Shift(ws, ws.Current.Workspace.Tag)
	assert.Equal(t, ws.Current.Workspace.Stack, same.Current.Workspace.Stack)
}

func TestViewInvolutivity(t *testing.T) {
	ws, err := New([]WorkspaceTag{"1", "2", "3"}, []ScreenDetail{fullScreen(), fullScreen()}, noLayout)
	require.NoError(t, err)
	a := ws.Current.Workspace.Tag
	b := WorkspaceTag("3") // hidden workspace

	viewed := View(View(View(*ws, b), a), b)
	assert.Equal(t, b, viewed.Current.Workspace.Tag)
}

func TestFocusWindowIdempotentAndUnknownNoOp(t *testing.T) {
	ws := seedThree(t)
	focus, _ := ws.PeekFocus()
	same := FocusWindow(ws, focus)
	assert.Equal(t, ws.Current.Workspace.Stack, same.Current.Workspace.Stack)

	noop := FocusWindow(ws, 0xDEAD)
	assert.Equal(t, ws.Current.Workspace.Stack, noop.Current.Workspace.Stack)
}

func TestFloatRequiresExistingMember(t *testing.T) {
	ws := seedThree(t)
	rect := RationalRect{X: 0.5, Y: 0, W: 0.5, H: 0.5}

	floated := Float(ws, 0x100, rect)
	assert.Equal(t, rect, floated.Floating[0x100])

	rejected := Float(ws, 0xABCD, rect)
	_, present := rejected.Floating[0xABCD]
	assert.False(t, present, "float must no-op for a window absent from every stack")
}

func TestSinkRemovesFromFloating(t *testing.T) {
	ws := seedThree(t)
	floated := Float(ws, 0x100, RationalRect{W: 1, H: 1})
	sunk := Sink(floated, 0x100)
	_, present := sunk.Floating[0x100]
	assert.False(t, present)
	assert.True(t, sunk.Current.Workspace.Stack.Contains(0x100), "sink must not remove the window from its stack")
}

func TestDeleteAlsoClearsFloating(t *testing.T) {
	ws := seedThree(t)
	floated := Float(ws, 0x100, RationalRect{W: 1, H: 1})
	deleted := Delete(floated, 0x100)
	_, present := deleted.Floating[0x100]
	assert.False(t, present)
	assert.False(t, deleted.Current.Workspace.Stack.Contains(0x100))
}

func TestRectangleShrinkClampsAtZero(t *testing.T) {
	r := Rectangle{X: 0, Y: 0, W: 10, H: 10}
	out := r.Shrink(Gap{Top: 6, Bottom: 6})
	assert.Equal(t, uint32(0), out.H)
	assert.Equal(t, uint32(10), out.W)
}
