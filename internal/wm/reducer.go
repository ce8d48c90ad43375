package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/lattice-wm/lattice/internal/msg"
	"github.com/lattice-wm/lattice/internal/stack"
)

// Dispatch routes one X event through spec.md §4.C's complete taxonomy.
// It is the single entry point the event loop (cmd/latticewm) calls per
// xgb.WaitForEvent result; every branch that mutates state finishes with
// a Refresh, matching the teacher's one-event-one-render loop in
// wm/wm.go's Run, generalised from a frame-tree mutation to a
// stack-algebra Endo.
func (c *Core) Dispatch(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		c.onMapRequest(e)
	case xproto.UnmapNotifyEvent:
		c.onUnmapNotify(e)
	case xproto.DestroyNotifyEvent:
		c.onDestroyNotify(e)
	case xproto.ConfigureRequestEvent:
		c.onConfigureRequest(e)
	case xproto.ConfigureNotifyEvent:
		c.onConfigureNotify(e)
	case xproto.EnterNotifyEvent:
		c.onEnterNotify(e)
	case xproto.ButtonPressEvent:
		c.onButtonPress(e)
	case xproto.KeyPressEvent:
		c.onKeyPress(e)
	case xproto.MotionNotifyEvent:
		c.onMotionNotify(e)
	case xproto.ButtonReleaseEvent:
		c.onButtonRelease(e)
	case xproto.ClientMessageEvent:
		c.onClientMessage(e)
	}
}

func (c *Core) allWindowIDs() map[stack.WindowID]struct{} {
	out := make(map[stack.WindowID]struct{})
	for _, ws := range c.State.WindowSet.AllWorkspaces() {
		for _, w := range ws.Stack.ToList() {
			out[w] = struct{}{}
		}
	}
	return out
}

func (c *Core) onMapRequest(e xproto.MapRequestEvent) {
	if c.Conn.IsOverrideRedirect(e.Window) {
		return
	}
	w := stack.WindowID(e.Window)
	if _, known := c.allWindowIDs()[w]; known {
		return
	}
	c.safely("manage-pipeline", func() error {
		var info ClientInfo
		if c.Hints != nil {
			xi := c.Hints.Classify(e.Window)
			info = ClientInfo{Class: xi.Class, Instance: xi.Instance, Transient: xi.Transient, Dialog: xi.Dialog, Fixed: xi.Fixed}
		}
		_ = c.Conn.SelectClientEvents(e.Window)
		c.Conn.SaveSetInsert(e.Window)
		c.manageWindow(w, info)
		return nil
	})
	c.Refresh()
}

func (c *Core) onUnmapNotify(e xproto.UnmapNotifyEvent) {
	w := stack.WindowID(e.Window)
	if n := c.State.WaitingUnmap[w]; n > 0 {
		if n == 1 {
			delete(c.State.WaitingUnmap, w)
		} else {
			c.State.WaitingUnmap[w] = n - 1
		}
		return
	}
	c.apply(func(ws stack.WindowSet) stack.WindowSet { return stack.Delete(ws, w) })
	delete(c.State.Mapped, w)
	c.Refresh()
}

func (c *Core) onDestroyNotify(e xproto.DestroyNotifyEvent) {
	w := stack.WindowID(e.Window)
	c.apply(func(ws stack.WindowSet) stack.WindowSet { return stack.Delete(ws, w) })
	delete(c.State.WaitingUnmap, w)
	delete(c.State.Mapped, w)
	c.Refresh()
}

func (c *Core) onConfigureRequest(e xproto.ConfigureRequestEvent) {
	w := stack.WindowID(e.Window)
	_, tiled := c.allWindowIDs()[w]
	_, mapped := c.State.Mapped[w]
	if tiled && mapped {
		if rect, ok := c.currentRectOf(w); ok {
			_ = c.Conn.ConfigureWindow(e.Window, rect, c.Config.BorderWidth)
			return
		}
	}
	// Not ours to arbitrate: forward the request verbatim.
	mask := uint16(0)
	var values []uint32
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		mask |= xproto.ConfigWindowX
		values = append(values, uint32(e.X))
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		mask |= xproto.ConfigWindowY
		values = append(values, uint32(e.Y))
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		mask |= xproto.ConfigWindowWidth
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		mask |= xproto.ConfigWindowHeight
		values = append(values, uint32(e.Height))
	}
	if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		mask |= xproto.ConfigWindowBorderWidth
		values = append(values, uint32(e.BorderWidth))
	}
	if mask != 0 {
		_ = xproto.ConfigureWindowChecked(c.Conn.X, e.Window, mask, values).Check()
	}
}

// currentRectOf finds the rectangle Refresh last assigned to w by
// re-deriving it from the X server, since Core does not separately cache
// per-window placements between refreshes.
func (c *Core) currentRectOf(w stack.WindowID) (stack.Rectangle, bool) {
	rect, err := c.Conn.Geometry(uintToXWindow(w))
	if err != nil {
		return stack.Rectangle{}, false
	}
	return rect, true
}

func (c *Core) onConfigureNotify(e xproto.ConfigureNotifyEvent) {
	if e.Window != c.Conn.Root {
		return
	}
	screens, err := c.Conn.Screens()
	if err != nil || len(screens) == 0 {
		c.Log.WithError(err).Warn("re-querying screens on ConfigureNotify failed")
		return
	}
	c.updateScreenDetails(screens)
	c.Refresh()
}

func (c *Core) updateScreenDetails(rects []stack.Rectangle) {
	if len(rects) > 0 {
		c.State.WindowSet.Current.Detail.Rect = rects[0]
	}
	for i := range c.State.WindowSet.Visible {
		if i+1 < len(rects) {
			c.State.WindowSet.Visible[i].Detail.Rect = rects[i+1]
		}
	}
}

func (c *Core) onEnterNotify(e xproto.EnterNotifyEvent) {
	if e.Mode != xproto.NotifyModeNormal {
		return
	}
	w := stack.WindowID(e.Event)
	if _, known := c.allWindowIDs()[w]; !known {
		return
	}
	c.apply(func(ws stack.WindowSet) stack.WindowSet { return stack.FocusWindow(ws, w) })
	c.Refresh()
}

func (c *Core) onButtonPress(e xproto.ButtonPressEvent) {
	chord := ButtonChord{
		Mod:    StripLocks(e.State, c.Config.NumlockMask, c.Config.LockMask),
		Button: e.Detail,
	}
	action, ok := c.Bindings.Buttons[chord]
	if !ok {
		return
	}
	w := stack.WindowID(e.Event)
	c.safely("mouse-action", func() error { return action(c, w) })
	c.Refresh()
}

func (c *Core) onKeyPress(e xproto.KeyPressEvent) {
	chord := KeyChord{
		Mod:     StripLocks(e.State, c.Config.NumlockMask, c.Config.LockMask),
		Keycode: e.Detail,
	}
	action, ok := c.Bindings.Keys[chord]
	if !ok {
		return
	}
	c.safely("key-action", func() error { return action(c) })
	c.Refresh()
}

func (c *Core) onMotionNotify(e xproto.MotionNotifyEvent) {
	if c.State.Dragging == nil {
		return
	}
	motion := c.State.Dragging.Motion
	c.safely("drag-motion", func() error { return motion(int32(e.RootX), int32(e.RootY)) })
}

func (c *Core) onButtonRelease(xproto.ButtonReleaseEvent) {
	if c.State.Dragging == nil {
		return
	}
	finish := c.State.Dragging.Finish
	c.State.Dragging = nil
	c.safely("drag-finish", func() error { return finish() })
	c.Refresh()
}

func (c *Core) onClientMessage(e xproto.ClientMessageEvent) {
	if e.Type != c.Conn.Atoms.WMProtocols {
		return
	}
	data := e.Data.Data32
	if len(data) == 0 {
		return
	}
	if xproto.Atom(data[0]) != c.Conn.Atoms.WMDeleteWindow {
		return
	}
	w := stack.WindowID(e.Window)
	// Route to the owning workspace's layout as an observation message;
	// core takes no further action itself (spec.md §4.C).
	for _, workspace := range c.State.WindowSet.AllWorkspaces() {
		if workspace.Stack.Contains(w) && workspace.Layout != nil {
			_, _ = workspace.Layout.HandleMessage(msg.New(e))
		}
	}
}
