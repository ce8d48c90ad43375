package wm

import "fmt"

// GrabBindings installs an X grab for every entry in Bindings, one grab
// per ExpandMask combination so matching is oblivious to whichever of
// numlock/capslock happens to be active (spec.md §4.C "Mod-masking").
// Grounded on the teacher's grabKeys (_examples/funkycode-marwind/wm/wm.go),
// generalized from its single fixed modifier set to every lock-mask
// combination.
func (c *Core) GrabBindings() error {
	for chord := range c.Bindings.Keys {
		for _, mod := range ExpandMask(chord.Mod, c.Config.NumlockMask, c.Config.LockMask) {
			if err := c.Conn.GrabKey(mod, chord.Keycode); err != nil {
				return fmt.Errorf("wm: grab key %+v: %w", chord, err)
			}
		}
	}
	for chord := range c.Bindings.Buttons {
		for _, mod := range ExpandMask(chord.Mod, c.Config.NumlockMask, c.Config.LockMask) {
			if err := c.Conn.GrabButton(mod, chord.Button); err != nil {
				return fmt.Errorf("wm: grab button %+v: %w", chord, err)
			}
		}
	}
	return nil
}
