package wm

import "github.com/lattice-wm/lattice/internal/stack"

// Reconcile diffs a (possibly deserialized, spec.md §9 "--resume")
// WindowSet against the live X window tree and removes any entry whose
// window no longer exists, the reconciliation step spec.md §9's "Open
// questions" section calls out as missing from the original and which an
// implementation should always perform — including on a cold, non-resumed
// start, where a fresh WindowSet has nothing to prune and this is a no-op.
func (c *Core) Reconcile() error {
	live, err := c.Conn.QueryTree()
	if err != nil {
		return err
	}
	present := make(map[stack.WindowID]struct{}, len(live))
	for _, w := range live {
		present[stack.WindowID(w)] = struct{}{}
	}

	ws := c.State.WindowSet
	for _, workspace := range ws.AllWorkspaces() {
		for _, w := range workspace.Stack.ToList() {
			if _, ok := present[w]; !ok {
				ws = stack.Delete(ws, w)
			}
		}
	}
	c.State.WindowSet = ws

	managed := c.allWindowIDs()
	for _, w := range live {
		if _, ok := managed[stack.WindowID(w)]; !ok {
			continue
		}
		if c.Conn.IsOverrideRedirect(w) {
			continue
		}
		c.State.Mapped[stack.WindowID(w)] = struct{}{}
	}
	return nil
}
