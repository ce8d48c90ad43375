package keysym

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func testKeymap() *Keymap {
	k := &Keymap{}
	k.table[38] = []xproto.Keysym{0x61} // keycode 38 -> 'a'
	k.table[36] = []xproto.Keysym{0xff0d} // keycode 36 -> Return
	k.table[77] = []xproto.Keysym{xkNumLock}
	return k
}

func TestHasKeysymFindsExactMatch(t *testing.T) {
	k := testKeymap()
	assert.True(t, k.HasKeysym(38, 0x61))
	assert.False(t, k.HasKeysym(38, 0xff0d))
}

func TestHasKeysymRejectsOutOfRangeKeycode(t *testing.T) {
	k := testKeymap()
	assert.False(t, k.HasKeysym(0, 0x61))
	assert.False(t, k.HasKeysym(7, 0x61))
}

func TestKeycodesReturnsAllMatches(t *testing.T) {
	k := testKeymap()
	k.table[39] = []xproto.Keysym{0x61} // a second keycode also produces 'a'

	codes := k.Keycodes(0x61)
	assert.ElementsMatch(t, []xproto.Keycode{38, 39}, codes)
}

func TestKeycodesReturnsNilForUnknownSym(t *testing.T) {
	k := testKeymap()
	assert.Nil(t, k.Keycodes(0xdead))
}

func TestModifierMaskForFindsNumlockColumn(t *testing.T) {
	k := testKeymap()
	reply := &xproto.GetModifierMappingReply{
		KeycodesPerModifier: 2,
		// 8 columns x 2 rows; column index 4 (Mod2, the conventional
		// numlock modifier) holds keycode 77.
		Keycodes: []xproto.Keycode{
			0, 0, // Shift
			0, 0, // Lock
			0, 0, // Control
			0, 0, // Mod1
			77, 0, // Mod2
			0, 0, // Mod3
			0, 0, // Mod4
			0, 0, // Mod5
		},
	}
	mask := k.modifierMaskFor(reply, xkNumLock)
	assert.Equal(t, uint16(1<<4), mask)
}

func TestModifierMaskForReturnsZeroWhenNotFound(t *testing.T) {
	k := testKeymap()
	reply := &xproto.GetModifierMappingReply{
		KeycodesPerModifier: 1,
		Keycodes:            make([]xproto.Keycode, 8),
	}
	assert.Equal(t, uint16(0), k.modifierMaskFor(reply, xkNumLock))
}
