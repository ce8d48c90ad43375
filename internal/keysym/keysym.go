// Package keysym loads the X server's keycode->keysym table and the
// modifier mapping, so the reducer's key bindings (defined in terms of
// portable keysyms, per spec.md §4.C "KeyPressEvent(mask, keysym)") can
// be resolved to the raw keycodes XGrabKey and incoming KeyPressEvents
// actually deal in, and so the numlock/lock modifier bits (spec.md §4.C
// "Mod-masking") can be identified.
//
// Grounded on other_examples/ad0f36b0_driusan-dewm__main.go.go's
// GetKeyboardMapping(loKey, hiKey-loKey+1) load into a
// [256][]xproto.Keysym table and its keysym->keycode reverse-lookup
// loop feeding XGrabKey.
package keysym

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	loKeycode = 8
	hiKeycode = 255
)

// well-known keysym values needed to locate the numlock/lock modifier
// columns in the server's modifier mapping (X11/keysymdef.h).
const (
	xkNumLock  xproto.Keysym = 0xff7f
	xkCapsLock xproto.Keysym = 0xffe5
)

// Keymap is the server's keycode->keysym table plus the derived
// modifier-bit assignments the reducer needs for mod-masking.
type Keymap struct {
	table       [hiKeycode + 1][]xproto.Keysym
	NumlockMask uint16
	LockMask    uint16
}

// Load queries the X server's current keyboard and modifier mapping and
// builds a Keymap. It should be reloaded (call Load again) on a
// MappingNotifyEvent.
func Load(conn *xgb.Conn) (*Keymap, error) {
	km := xproto.GetKeyboardMapping(conn, loKeycode, hiKeycode-loKeycode+1)
	reply, err := km.Reply()
	if err != nil {
		return nil, fmt.Errorf("keysym: GetKeyboardMapping: %w", err)
	}
	if reply == nil {
		return nil, fmt.Errorf("keysym: GetKeyboardMapping returned no reply")
	}

	k := &Keymap{}
	perCode := int(reply.KeysymsPerKeycode)
	for i := 0; i <= hiKeycode-loKeycode; i++ {
		k.table[loKeycode+i] = reply.Keysyms[i*perCode : (i+1)*perCode]
	}

	modReply, err := xproto.GetModifierMapping(conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("keysym: GetModifierMapping: %w", err)
	}
	k.NumlockMask = k.modifierMaskFor(modReply, xkNumLock)
	k.LockMask = k.modifierMaskFor(modReply, xkCapsLock)
	return k, nil
}

// modifierMaskFor scans the eight modifier columns (Shift, Lock,
// Control, Mod1..Mod5, in that fixed X order) for the one whose
// keycodes produce sym, returning the corresponding ModMask bit.
func (k *Keymap) modifierMaskFor(reply *xproto.GetModifierMappingReply, sym xproto.Keysym) uint16 {
	perMod := int(reply.KeycodesPerModifier)
	for col := 0; col < 8; col++ {
		for row := 0; row < perMod; row++ {
			code := reply.Keycodes[col*perMod+row]
			if code == 0 {
				continue
			}
			if k.HasKeysym(code, sym) {
				return 1 << uint(col)
			}
		}
	}
	return 0
}

// HasKeysym reports whether keycode produces sym in any of its shift
// levels.
func (k *Keymap) HasKeysym(code xproto.Keycode, sym xproto.Keysym) bool {
	if int(code) < loKeycode || int(code) > hiKeycode {
		return false
	}
	for _, s := range k.table[code] {
		if s == sym {
			return true
		}
	}
	return false
}

// Keycodes returns every keycode whose keysym table includes sym — a
// symbolic binding normally resolves to exactly one, but grabbing every
// match keeps behavior correct on keyboards with duplicate mappings.
func (k *Keymap) Keycodes(sym xproto.Keysym) []xproto.Keycode {
	var codes []xproto.Keycode
	for i := loKeycode; i <= hiKeycode; i++ {
		for _, s := range k.table[i] {
			if s == sym {
				codes = append(codes, xproto.Keycode(i))
				break
			}
		}
	}
	return codes
}
