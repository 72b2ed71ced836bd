package debug_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorb(t *testing.T) {
	c := DuRGBA(200, 100, 50, 255)
	assert.Equal(t, "#c86432", c.Hex())
	assert.Equal(t, 1.0, c.Opacity())

	var back Colorb
	back.FromInt(c.Int())
	assert.Equal(t, c, back)

	assert.Equal(t, DuRGBA(100, 50, 25, 255), DuDarkenCol(c))
	assert.Equal(t, DuRGBA(200, 100, 50, 7), DuTransCol(c, 7))
}

func TestDuIntToCol(t *testing.T) {
	assert.Equal(t, DuRGBA(63, 63, 126, 255), DuIntToCol(1, 255))
	assert.Equal(t, DuRGBA(63, 63, 63, 10), DuIntToCol(0, 10))
	assert.NotEqual(t, DuIntToCol(2, 255), DuIntToCol(4, 255))
}

func TestDuLerpCol(t *testing.T) {
	black, white := DuRGBA(0, 0, 0, 0), DuRGBA(255, 255, 255, 255)
	assert.Equal(t, black, DuLerpCol(black, white, 0))
	assert.Equal(t, white, DuLerpCol(black, white, 255))
	assert.Equal(t, DuRGBA(128, 128, 128, 128), DuLerpCol(black, white, 128))
}
