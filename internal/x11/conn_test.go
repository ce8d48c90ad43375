package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestRootRectSpansWholeScreen(t *testing.T) {
	setup := &xproto.ScreenInfo{WidthInPixels: 1920, HeightInPixels: 1080}
	r := rootRect(setup)
	assert.Equal(t, uint32(1920), r.W)
	assert.Equal(t, uint32(1080), r.H)
	assert.Equal(t, int32(0), r.X)
	assert.Equal(t, int32(0), r.Y)
}
