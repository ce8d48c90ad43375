// Package wm owns the live WindowManagerState (spec.md §3 "Lifecycle",
// §4.C) and the event reducer that drives it: translating X events and
// user bindings into stack-algebra calls, then a single Refresh that
// synchronizes X geometry/map-state/focus/stacking/borders to match.
//
// Grounded on _examples/funkycode-marwind/wm/wm.go's Run event switch
// (the same case list: KeyPress, EnterNotify, ConfigureRequest,
// MapRequest, UnmapNotify, DestroyNotify) and manager/manager.go's focus
// and WM_DELETE_WINDOW handling, generalised from the teacher's
// frame/column model onto the stack-algebra WindowSet.
package wm

import (
	"github.com/sirupsen/logrus"

	"github.com/lattice-wm/lattice/internal/stack"
	"github.com/lattice-wm/lattice/internal/x11"
)

// Drag holds the pair of callbacks a mouse-press action installs to track
// a window move/resize across subsequent MotionNotify events, torn down
// on ButtonRelease (spec.md §4.C, §5).
type Drag struct {
	Motion func(x, y int32) error
	Finish func() error
}

// State is WindowManagerState (spec.md §3): the live WindowSet plus the
// bookkeeping the reducer needs to tell a self-caused unmap from a
// client-initiated one.
type State struct {
	WindowSet    stack.WindowSet
	Mapped       map[stack.WindowID]struct{}
	WaitingUnmap map[stack.WindowID]int
	Dragging     *Drag
}

// NewState wraps an initial WindowSet (freshly built, or deserialized by
// --resume) into a State with empty bookkeeping.
func NewState(ws stack.WindowSet) *State {
	return &State{
		WindowSet:    ws,
		Mapped:       make(map[stack.WindowID]struct{}),
		WaitingUnmap: make(map[stack.WindowID]int),
	}
}

// Core is the reducer's dependency bag: the X connection, EWMH hint
// writer, live state, static configuration/bindings, and the pluggable
// user hooks (manage pipeline, log hook). One Core exists per process;
// it is never accessed from more than the single event-loop goroutine
// (spec.md §5 "single-threaded and cooperative").
type Core struct {
	Conn     *x11.Conn
	Hints    *x11.Hints
	State    *State
	Config   Config
	Bindings Bindings
	Manage   ManageHook
	Log      *logrus.Entry
}

// Config is the subset of daemon configuration the reducer consults
// directly; internal/config.Config converts into this on load.
type Config struct {
	FocusedBorder uint32
	NormalBorder  uint32
	BorderWidth   uint32
	NumlockMask   uint16
	LockMask      uint16
}

// apply clones+transforms State.WindowSet through fn, the pattern every
// stack-algebra call in package stack follows (pure WindowSet -> WindowSet
// functions; Core.apply is the only place that assigns the result back
// onto the live State).
func (c *Core) apply(fn func(stack.WindowSet) stack.WindowSet) {
	c.State.WindowSet = fn(c.State.WindowSet)
}
