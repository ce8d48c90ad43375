package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandMaskCoversAllLockCombinations(t *testing.T) {
	masks := ExpandMask(0x8, 0x10, 0x2)
	assert.ElementsMatch(t, []uint16{0x8, 0x18, 0xa, 0x1a}, masks)
}

func TestExpandMaskDedupesWhenLockMasksAreZero(t *testing.T) {
	masks := ExpandMask(0, 0, 0)
	assert.Equal(t, []uint16{0}, masks)
}

func TestStripLocksRemovesBothBits(t *testing.T) {
	got := StripLocks(0x8|0x10|0x2, 0x10, 0x2)
	assert.Equal(t, uint16(0x8), got)
}
