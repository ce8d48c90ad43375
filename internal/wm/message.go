package wm

import "github.com/lattice-wm/lattice/internal/msg"

// SendToCurrentLayout delivers m to the current workspace's layout via
// Layout.HandleMessage, writing back the replacement layout it returns
// (the same contract Refresh's DoLayout step honors). Used by the
// IncMasterN/Shrink/Expand/NextLayout/FirstLayout key actions spec.md
// §4.B's Tall/Choose layouts implement HandleMessage for.
func (c *Core) SendToCurrentLayout(m msg.Message) error {
	l := c.State.WindowSet.Current.Workspace.Layout
	if l == nil {
		return nil
	}
	next, err := l.HandleMessage(m)
	if err != nil {
		return err
	}
	if next != nil {
		c.setScreenLayout(0, next)
	}
	return nil
}
