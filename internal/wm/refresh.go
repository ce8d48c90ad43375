package wm

import (
	"github.com/lattice-wm/lattice/internal/stack"
)

// Refresh re-synchronizes X geometry, map state, focus, stacking order and
// borders with the current WindowSet, following the 8-step procedure of
// spec.md §4.C verbatim. It is called once after every mutation that could
// change what is drawn. Apart from answering a ConfigureRequest
// (onConfigureRequest), Core issues no ConfigureWindow/Map/Unmap calls
// outside of this function.
func (c *Core) Refresh() {
	ws := &c.State.WindowSet
	screens := ws.AllScreens()

	type placement struct {
		window stack.WindowID
		rect   stack.Rectangle
	}
	var placements []placement
	visible := make(map[stack.WindowID]stack.Rectangle)

	for i, sc := range screens {
		st := sc.Workspace.Stack
		if st == nil {
			continue
		}
		drawable := sc.Detail.Drawable()

		tiledStack := st.Filter(func(w stack.WindowID) bool {
			_, floating := ws.Floating[w]
			return !floating
		})

		var rects []stack.WindowRect
		if tiledStack != nil && sc.Workspace.Layout != nil {
			r, newLayout, err := sc.Workspace.Layout.DoLayout(drawable, tiledStack)
			if err != nil {
				// spec.md §7 error taxonomy item 2: log, treat as "no
				// change", workspace stays usable with no new geometry.
				c.Log.WithField("workspace", sc.Workspace.Tag).WithError(err).
					Warn("do_layout fault, workspace left untiled this refresh")
			} else {
				rects = r
				if newLayout != nil {
					c.setScreenLayout(i, newLayout)
				}
			}
		}

		for _, wr := range rects {
			visible[wr.Window] = wr.Rect
			placements = append(placements, placement{wr.Window, wr.Rect})
		}
		// Floating overlay: every floating member of this workspace's
		// stack gets its RationalRect scaled into the drawable area,
		// stacked above the tiled set (spec.md §4.B stacking order).
		for _, w := range st.ToList() {
			if rr, ok := ws.Floating[w]; ok {
				rect := rr.Scale(drawable)
				visible[w] = rect
				placements = append(placements, placement{w, rect})
			}
		}
	}

	// Step 3/4: map everything newly visible, unmap everything that isn't
	// anymore.
	for w, rect := range visible {
		if err := c.Conn.ConfigureWindow(uintToXWindow(w), rect, c.Config.BorderWidth); err != nil {
			c.Log.WithField("window", w).WithError(err).Warn("configure window failed")
		}
		if _, alreadyMapped := c.State.Mapped[w]; !alreadyMapped {
			if err := c.Conn.MapWindow(uintToXWindow(w)); err != nil {
				c.Log.WithField("window", w).WithError(err).Warn("map window failed")
			}
			c.State.Mapped[w] = struct{}{}
		}
	}
	for w := range c.State.Mapped {
		if _, stillVisible := visible[w]; stillVisible {
			continue
		}
		c.State.WaitingUnmap[w]++
		if err := c.Conn.UnmapWindow(uintToXWindow(w)); err != nil {
			c.Log.WithField("window", w).WithError(err).Warn("unmap window failed")
		}
		delete(c.State.Mapped, w)
	}

	// Step 5: input focus.
	focus, hasFocus := ws.PeekFocus()
	if hasFocus {
		if err := c.Conn.SetInputFocus(uintToXWindow(focus)); err != nil {
			c.Log.WithError(err).Warn("set input focus failed")
		}
	} else {
		if err := c.Conn.SetInputFocus(c.Conn.Root); err != nil {
			c.Log.WithError(err).Warn("set input focus to root failed")
		}
	}

	// Step 6: restack bottom-to-top; RaiseWindow on each in order leaves
	// the last-raised window on top, so walking placements in the order
	// layouts returned them (bottom->top) and raising the focused window
	// last reproduces spec.md's "tiled -> floating -> focused" order.
	for _, p := range placements {
		if hasFocus && p.window == focus {
			continue
		}
		if err := c.Conn.RaiseWindow(uintToXWindow(p.window)); err != nil {
			c.Log.WithField("window", p.window).WithError(err).Warn("raise window failed")
		}
	}
	if hasFocus {
		if err := c.Conn.RaiseWindow(uintToXWindow(focus)); err != nil {
			c.Log.WithError(err).Warn("raise focused window failed")
		}
	}

	// Step 7: borders.
	for w := range visible {
		color := c.Config.NormalBorder
		if hasFocus && w == focus {
			color = c.Config.FocusedBorder
		}
		if err := c.Conn.SetBorder(uintToXWindow(w), color); err != nil {
			c.Log.WithField("window", w).WithError(err).Warn("set border failed")
		}
	}

	c.publishHints()

	// Step 8: log hook, sandboxed like every other user callback.
	c.safely("log-hook", func() error {
		c.Log.WithFields(logrusFields(ws)).Debug("refresh")
		return nil
	})
}

// setScreenLayout writes back an updated layout (from DoLayout's second
// return) into the screen at index i of AllScreens()'s ordering (0 =
// current, 1..n = visible).
func (c *Core) setScreenLayout(i int, l stack.Layout) {
	if i == 0 {
		c.State.WindowSet.Current.Workspace.Layout = l
		return
	}
	c.State.WindowSet.Visible[i-1].Workspace.Layout = l
}

func (c *Core) publishHints() {
	if c.Hints == nil {
		return
	}
	ws := &c.State.WindowSet
	allWorkspaces := ws.AllWorkspaces()
	tags := make([]stack.WorkspaceTag, len(allWorkspaces))
	currentIdx := 0
	for i, w := range allWorkspaces {
		tags[i] = w.Tag
		if w.Tag == ws.Current.Workspace.Tag {
			currentIdx = i
		}
	}
	if err := c.Hints.PublishDesktops(tags, currentIdx); err != nil {
		c.Log.WithError(err).Debug("publish desktop hints failed")
	}

	var windows []stack.WindowID
	for _, w := range allWorkspaces {
		windows = append(windows, w.Stack.ToList()...)
	}
	if err := c.Hints.PublishClientList(windows); err != nil {
		c.Log.WithError(err).Debug("publish client list failed")
	}

	focus, ok := ws.PeekFocus()
	if err := c.Hints.PublishActiveWindow(focus, ok); err != nil {
		c.Log.WithError(err).Debug("publish active window failed")
	}
}
