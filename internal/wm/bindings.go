package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/lattice-wm/lattice/internal/stack"
)

// Action is a user key binding's callback. It runs inside the error
// boundary (spec.md §4.D): a panic or returned error is caught, logged,
// and the WindowSet rolled back to its pre-call snapshot.
type Action func(c *Core) error

// MouseAction is a user button binding's callback; w is the window the
// button was pressed over.
type MouseAction func(c *Core, w stack.WindowID) error

// KeyChord identifies a key binding by its raw modifier mask and keycode,
// already stripped of the numlock/capslock bits (see ExpandMask).
type KeyChord struct {
	Mod     uint16
	Keycode xproto.Keycode
}

// ButtonChord identifies a mouse binding the same way KeyChord does.
type ButtonChord struct {
	Mod    uint16
	Button xproto.Button
}

// Bindings is the static key/button action table the reducer consults on
// KeyPressEvent/ButtonPressEvent (spec.md §4.C).
type Bindings struct {
	Keys    map[KeyChord]Action
	Buttons map[ButtonChord]MouseAction
}

// ExpandMask returns every modifier mask a grab must be installed under
// (or a match attempted against) so that key/button matching is oblivious
// to whichever of numlock/capslock happens to be active, per spec.md
// §4.C "Mod-masking": one grab per combination of {0, numlockMask} x
// {0, lockMask} x requested-mask.
func ExpandMask(requested, numlockMask, lockMask uint16) []uint16 {
	extra := []uint16{0, numlockMask, lockMask, numlockMask | lockMask}
	seen := make(map[uint16]bool, len(extra))
	out := make([]uint16, 0, len(extra))
	for _, e := range extra {
		m := requested | e
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// StripLocks removes the numlock/capslock bits from an incoming event's
// state so it can be looked up in Bindings without needing to know which
// of the four ExpandMask grabs fired.
func StripLocks(state, numlockMask, lockMask uint16) uint16 {
	return state &^ (numlockMask | lockMask)
}
