package stack

import "fmt"

// New builds an initial WindowSet: one workspace per tag, the first |rects|
// tags mapped one-per-screen (current + visible), the rest hidden. newLayout
// is called once per workspace to give each an independent layout instance.
func New(tags []WorkspaceTag, details []ScreenDetail, newLayout func() Layout) (*WindowSet, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("stack: at least one workspace tag is required")
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("stack: at least one screen is required")
	}
	if len(details) > len(tags) {
		return nil, fmt.Errorf("stack: %d screens but only %d workspace tags", len(details), len(tags))
	}
	screens := make([]Screen, len(details))
	for i, d := range details {
		screens[i] = Screen{
			Workspace: Workspace{Tag: tags[i], Layout: newLayout()},
			ID:        ScreenID(i),
			Detail:    d,
		}
	}
	hidden := make([]Workspace, 0, len(tags)-len(details))
	for _, t := range tags[len(details):] {
		hidden = append(hidden, Workspace{Tag: t, Layout: newLayout()})
	}
	return &WindowSet{
		Current:  screens[0],
		Visible:  screens[1:],
		Hidden:   hidden,
		Floating: make(map[WindowID]RationalRect),
	}, nil
}

func focusElem(s *Stack[WindowID], w WindowID) *Stack[WindowID] {
	if s == nil || s.Focus == w || !s.Contains(w) {
		return s
	}
	all := s.ToList()
	idx := -1
	for i, v := range all {
		if v == w {
			idx = i
			break
		}
	}
	return &Stack[WindowID]{
		Up:    reverseCopy(all[:idx]),
		Focus: w,
		Down:  append([]WindowID(nil), all[idx+1:]...),
	}
}

// FocusUp rotates focus to the previous window in the current workspace,
// wrapping cyclically.
func FocusUp(ws WindowSet) WindowSet {
	out := ws.Clone()
	out.Current.Workspace.Stack = out.Current.Workspace.Stack.focusUp()
	return out
}

// FocusDown rotates focus to the next window in the current workspace,
// wrapping cyclically.
func FocusDown(ws WindowSet) WindowSet {
	out := ws.Clone()
	out.Current.Workspace.Stack = out.Current.Workspace.Stack.focusDown()
	return out
}

// SwapUp swaps the focused window with its previous neighbour.
func SwapUp(ws WindowSet) WindowSet {
	out := ws.Clone()
	out.Current.Workspace.Stack = out.Current.Workspace.Stack.swapUp()
	return out
}

// SwapDown swaps the focused window with its next neighbour.
func SwapDown(ws WindowSet) WindowSet {
	out := ws.Clone()
	out.Current.Workspace.Stack = out.Current.Workspace.Stack.swapDown()
	return out
}

// SwapMaster moves the focused window to the master position, or swaps it
// with the window at position 1 if it is already master.
func SwapMaster(ws WindowSet) WindowSet {
	out := ws.Clone()
	out.Current.Workspace.Stack = out.Current.Workspace.Stack.swapMaster()
	return out
}

// FocusWindow switches to w's workspace (via View) and focuses it. It is a
// no-op if w is not present anywhere in ws.
func FocusWindow(ws WindowSet, w WindowID) WindowSet {
	tag, ok := ws.FindWindow(w)
	if !ok {
		return ws.Clone()
	}
	out := View(ws, tag)
	out.Current.Workspace.Stack = focusElem(out.Current.Workspace.Stack, w)
	return out
}

// View makes the workspace tagged t the current workspace, swapping
// screens with whichever screen currently shows it, or swapping with the
// current screen's workspace if t is hidden. A no-op if t is unknown or
// already current.
func View(ws WindowSet, t WorkspaceTag) WindowSet {
	out := ws.Clone()
	if out.Current.Workspace.Tag == t {
		return out
	}
	for i, sc := range out.Visible {
		if sc.Workspace.Tag == t {
			oldCurrentWs := out.Current.Workspace
			out.Current.Workspace = sc.Workspace
			out.Visible[i].Workspace = oldCurrentWs
			return out
		}
	}
	for i, hws := range out.Hidden {
		if hws.Tag == t {
			oldCurrentWs := out.Current.Workspace
			out.Current.Workspace = hws
			out.Hidden[i] = oldCurrentWs
			return out
		}
	}
	return out
}

// GreedyView is like View but never moves a workspace across screens: if t
// is already visible on another screen, focus simply moves to that screen.
// If t is hidden, it behaves exactly like View.
func GreedyView(ws WindowSet, t WorkspaceTag) WindowSet {
	out := ws.Clone()
	if out.Current.Workspace.Tag == t {
		return out
	}
	for i, sc := range out.Visible {
		if sc.Workspace.Tag == t {
			oldCurrent := out.Current
			out.Current = sc
			out.Visible[i] = oldCurrent
			return out
		}
	}
	return View(out, t)
}

// Shift moves the focused window of the current workspace to workspace t,
// where it becomes the new focus. A no-op if there is no focused window,
// if t is unknown, or if t is already current.
func Shift(ws WindowSet, t WorkspaceTag) WindowSet {
	out := ws.Clone()
	if out.Current.Workspace.Tag == t {
		return out
	}
	w, ok := out.PeekFocus()
	if !ok {
		return out
	}
	if _, found := out.FindTag(t); !found {
		return out
	}
	out.Current.Workspace.Stack = out.Current.Workspace.Stack.delete(w)
	mutateWorkspace(&out, t, func(dst Workspace) Workspace {
		dst.Stack = dst.Stack.insertUp(w)
		return dst
	})
	return out
}

// InsertUp inserts w as the new focus of the current workspace.
func InsertUp(ws WindowSet, w WindowID) WindowSet {
	out := ws.Clone()
	out.Current.Workspace.Stack = out.Current.Workspace.Stack.insertUp(w)
	return out
}

// Delete removes w from wherever it is (any workspace's stack, and the
// floating map), per the focus-successor rule of stack.delete.
func Delete(ws WindowSet, w WindowID) WindowSet {
	out := ws.Clone()
	out.Current.Workspace.Stack = out.Current.Workspace.Stack.delete(w)
	for i := range out.Visible {
		out.Visible[i].Workspace.Stack = out.Visible[i].Workspace.Stack.delete(w)
	}
	for i := range out.Hidden {
		out.Hidden[i].Stack = out.Hidden[i].Stack.delete(w)
	}
	delete(out.Floating, w)
	return out
}

// Float marks w as floating at rect. A no-op if w is not a member of any
// workspace's stack, enforcing that floating keys are always a subset of
// tiled members (spec.md §9 open question, resolved).
func Float(ws WindowSet, w WindowID, rect RationalRect) WindowSet {
	out := ws.Clone()
	if _, ok := out.FindWindow(w); !ok {
		return out
	}
	out.Floating[w] = rect
	return out
}

// Sink removes w from the floating map, returning it to tiled layout.
func Sink(ws WindowSet, w WindowID) WindowSet {
	out := ws.Clone()
	delete(out.Floating, w)
	return out
}

// mutateWorkspace applies fn to the workspace tagged t, wherever it is
// (current/visible/hidden), in place on ws.
func mutateWorkspace(ws *WindowSet, t WorkspaceTag, fn func(Workspace) Workspace) {
	if ws.Current.Workspace.Tag == t {
		ws.Current.Workspace = fn(ws.Current.Workspace)
		return
	}
	for i, sc := range ws.Visible {
		if sc.Workspace.Tag == t {
			ws.Visible[i].Workspace = fn(sc.Workspace)
			return
		}
	}
	for i, hws := range ws.Hidden {
		if hws.Tag == t {
			ws.Hidden[i] = fn(hws)
			return
		}
	}
}
