// Package stack implements the pure workspace/screen/stack data model (the
// "zipper of zippers") and its algebra of operations. Every operation here
// is a function WindowSet -> WindowSet; none of them perform I/O.
package stack

import "github.com/lattice-wm/lattice/internal/msg"

// WindowID is the opaque identifier X assigns to a client window.
type WindowID uint32

// WorkspaceTag names a virtual workspace. Tags are unique within a WindowSet.
type WorkspaceTag string

// ScreenID is the dense 0-based index of a physical monitor.
type ScreenID int

// Rectangle is a pixel region of the X root window.
type Rectangle struct {
	X, Y int32
	W, H uint32
}

// Gap is a per-edge pixel offset reserved for external bars/docks.
type Gap struct {
	Top, Bottom, Left, Right uint32
}

// Shrink returns r shrunk by g, clamping width/height at zero.
func (r Rectangle) Shrink(g Gap) Rectangle {
	out := Rectangle{
		X: r.X + int32(g.Left),
		Y: r.Y + int32(g.Top),
	}
	horiz := g.Left + g.Right
	vert := g.Top + g.Bottom
	if horiz < r.W {
		out.W = r.W - horiz
	}
	if vert < r.H {
		out.H = r.H - vert
	}
	return out
}

// ScreenDetail is a screen's geometry plus its reserved gaps. The effective
// drawable area is Rect shrunk by Gap.
type ScreenDetail struct {
	Rect Rectangle
	Gap  Gap
}

// Drawable returns the screen's effective drawable rectangle.
func (d ScreenDetail) Drawable() Rectangle { return d.Rect.Shrink(d.Gap) }

// RationalRect describes a floating window's position and size as a
// fraction (in [0,1]) of its screen's rectangle.
type RationalRect struct {
	X, Y, W, H float64
}

// Scale converts a RationalRect into a pixel Rectangle within screen.
func (r RationalRect) Scale(screen Rectangle) Rectangle {
	return Rectangle{
		X: screen.X + int32(r.X*float64(screen.W)),
		Y: screen.Y + int32(r.Y*float64(screen.H)),
		W: uint32(r.W * float64(screen.W)),
		H: uint32(r.H * float64(screen.H)),
	}
}

// WindowRect pairs a window with the rectangle a layout assigned it.
// Layouts return these in desired stacking order, bottom first.
type WindowRect struct {
	Window WindowID
	Rect   Rectangle
}

// Layout maps a stack and a rectangle to per-window rectangles and a
// stacking order, and reacts to the open Message protocol. Every workspace
// stores exactly one Layout; concrete implementations live in package
// layout, which implements this interface without stack importing it.
type Layout interface {
	// DoLayout computes window rectangles for st within screen. It may
	// return an updated layout (e.g. a resized Tall) alongside the
	// rectangles; a nil second return means the layout is unchanged.
	DoLayout(screen Rectangle, st *Stack[WindowID]) ([]WindowRect, Layout, error)
	// HandleMessage reacts to m. A nil Layout with a nil error means "did
	// not handle this message, do not refresh". A non-nil Layout means
	// the layout changed and a refresh is needed.
	HandleMessage(m msg.Message) (Layout, error)
	// Description is a human-readable name shown by status UI.
	Description() string
	// Encode returns a textual representation that Decode (registered
	// per concrete type in package layout) can parse back into an
	// equivalent Layout, so restart can serialize running state.
	Encode() (string, error)
}

// Workspace is a named virtual desktop: a layout plus an optional
// focus-centred stack of windows. A workspace with zero windows has a nil
// Stack, never an empty one.
type Workspace struct {
	Tag    WorkspaceTag
	Layout Layout
	Stack  *Stack[WindowID]
}

// Screen is a physical monitor currently displaying one workspace.
type Screen struct {
	Workspace Workspace
	ID        ScreenID
	Detail    ScreenDetail
}

// WindowSet is the zipper of zippers: one focused screen, the other
// visible screens, the hidden workspaces, and the floating overlay map.
type WindowSet struct {
	Current  Screen
	Visible  []Screen
	Hidden   []Workspace
	Floating map[WindowID]RationalRect
}

// Clone returns a deep-enough copy of s so that callers may apply an
// operation to the clone without aliasing the original's slices/maps. All
// algebra functions in this package use Clone internally so they never
// mutate their input.
func (s WindowSet) Clone() WindowSet {
	out := s
	out.Current.Workspace.Stack = s.Current.Workspace.Stack.clone()
	out.Visible = make([]Screen, len(s.Visible))
	for i, sc := range s.Visible {
		sc.Workspace.Stack = sc.Workspace.Stack.clone()
		out.Visible[i] = sc
	}
	out.Hidden = make([]Workspace, len(s.Hidden))
	for i, ws := range s.Hidden {
		ws.Stack = ws.Stack.clone()
		out.Hidden[i] = ws
	}
	out.Floating = make(map[WindowID]RationalRect, len(s.Floating))
	for k, v := range s.Floating {
		out.Floating[k] = v
	}
	return out
}

// AllScreens returns every screen in s (current first, then visible).
func (s *WindowSet) AllScreens() []Screen {
	out := make([]Screen, 0, 1+len(s.Visible))
	out = append(out, s.Current)
	out = append(out, s.Visible...)
	return out
}

// AllWorkspaces returns every workspace in s regardless of visibility.
func (s *WindowSet) AllWorkspaces() []Workspace {
	out := make([]Workspace, 0, 1+len(s.Visible)+len(s.Hidden))
	out = append(out, s.Current.Workspace)
	for _, sc := range s.Visible {
		out = append(out, sc.Workspace)
	}
	out = append(out, s.Hidden...)
	return out
}

// FindTag returns the workspace tagged t and whether it was found.
func (s *WindowSet) FindTag(t WorkspaceTag) (Workspace, bool) {
	for _, ws := range s.AllWorkspaces() {
		if ws.Tag == t {
			return ws, true
		}
	}
	return Workspace{}, false
}

// FindWindow reports the tag of the workspace containing w, if any.
func (s *WindowSet) FindWindow(w WindowID) (WorkspaceTag, bool) {
	for _, ws := range s.AllWorkspaces() {
		if ws.Stack != nil && ws.Stack.Contains(w) {
			return ws.Tag, true
		}
	}
	return "", false
}

// PeekFocus returns the focused window of the current workspace, if any.
func (s *WindowSet) PeekFocus() (WindowID, bool) {
	if s.Current.Workspace.Stack == nil {
		return 0, false
	}
	return s.Current.Workspace.Stack.Focus, true
}
