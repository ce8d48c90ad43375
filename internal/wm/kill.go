package wm

import "github.com/lattice-wm/lattice/internal/stack"

// Kill closes w per spec.md §6: if it advertises WM_DELETE_WINDOW in
// WM_PROTOCOLS, ask it to close itself; otherwise issue a hard
// KillClient. Grounded on the teacher's manager/manager.go
// takeFocusProp-style protocol check, generalised from "take focus" to
// "delete window".
func (c *Core) Kill(w stack.WindowID) error {
	if c.Hints != nil {
		for _, atom := range c.Hints.Protocols(uintToXWindow(w)) {
			if atom == c.Conn.Atoms.WMDeleteWindow {
				return c.Conn.SendDeleteWindow(uintToXWindow(w))
			}
		}
	}
	return c.Conn.KillClient(uintToXWindow(w))
}

// KillFocused kills the current workspace's focused window, a no-op if
// none is focused. This is the binding action most configs attach to a
// "close window" key.
func (c *Core) KillFocused() error {
	w, ok := c.State.WindowSet.PeekFocus()
	if !ok {
		return nil
	}
	return c.Kill(w)
}
