package main

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/lattice-wm/lattice/internal/keysym"
	"github.com/lattice-wm/lattice/internal/msg"
	"github.com/lattice-wm/lattice/internal/wm"
)

// modifierMask is Mod4 (Super/Windows), the teacher's and the wider
// tiling-WM corpus's default modifier (dewm, marwind both grab against
// it). Every built-in binding uses it; the daemon config's modifier
// setting is not consulted here.
const modifierMask = xproto.ModMask4

// builtinBindings installs a minimal, always-available key table —
// kill focused window, cycle layout, grow/shrink master, restart, quit —
// standing in for the external user binding source spec.md §1 keeps out
// of scope. A real deployment replaces or extends this via its own
// ManageHook/Bindings construction before calling run's Core.
//
// Grounded on the teacher's action table shape (wm/wm.go's
// initActions/handleKeyPressEvent: sym + modifiers -> action) and
// other_examples/ad0f36b0_driusan-dewm__main.go.go's keysym-driven grab
// list, adapted onto wm.Bindings' keycode-keyed maps via internal/keysym.
func builtinBindings(km *keysym.Keymap, restartFn wm.Action) wm.Bindings {
	bindings := wm.Bindings{
		Keys:    make(map[wm.KeyChord]wm.Action),
		Buttons: make(map[wm.ButtonChord]wm.MouseAction),
	}

	bind := func(sym xproto.Keysym, mod uint16, action wm.Action) {
		for _, code := range km.Keycodes(sym) {
			bindings.Keys[wm.KeyChord{Mod: mod, Keycode: code}] = action
		}
	}

	// Keysym values below are the X11 keysymdef.h constants for the
	// Latin-1 letters/punctuation used, matching the teacher's and
	// dewm's practice of grabbing by keysym rather than by raw keycode.
	const (
		xkC     xproto.Keysym = 0x0063
		xkQ     xproto.Keysym = 0x0071
		xkSpace xproto.Keysym = 0x0020
		xkComma xproto.Keysym = 0x002c
		xkStop  xproto.Keysym = 0x002e
		xkH     xproto.Keysym = 0x0068
		xkL     xproto.Keysym = 0x006c
	)

	bind(xkC, modifierMask|xproto.ModMaskShift, func(c *wm.Core) error { return c.KillFocused() })
	bind(xkSpace, modifierMask, func(c *wm.Core) error { return c.SendToCurrentLayout(msg.NextLayout()) })
	bind(xkSpace, modifierMask|xproto.ModMaskShift, func(c *wm.Core) error { return c.SendToCurrentLayout(msg.FirstLayout()) })
	bind(xkComma, modifierMask, func(c *wm.Core) error { return c.SendToCurrentLayout(msg.IncMasterN(1)) })
	bind(xkStop, modifierMask, func(c *wm.Core) error { return c.SendToCurrentLayout(msg.IncMasterN(-1)) })
	bind(xkH, modifierMask, func(c *wm.Core) error { return c.SendToCurrentLayout(msg.Shrink()) })
	bind(xkL, modifierMask, func(c *wm.Core) error { return c.SendToCurrentLayout(msg.Expand()) })
	bind(xkQ, modifierMask, restartFn)
	bind(xkQ, modifierMask|xproto.ModMaskShift, func(*wm.Core) error { return wm.ExitRequest{Code: 0} })

	return bindings
}
