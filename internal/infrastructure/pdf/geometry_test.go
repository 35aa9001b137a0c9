package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxWithY(t *testing.T) {
	b := Box{X: 10, Y: 500, W: 100, H: 16}
	moved := b.WithY(250)
	assert.Equal(t, Box{X: 10, Y: 250, W: 100, H: 16}, moved)
	assert.Equal(t, 500.0, b.Y, "WithY must not mutate the receiver")
}

func TestBoxInset(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 100, H: 40}
	assert.Equal(t, Box{X: 12, Y: 22, W: 96, H: 36}, b.Inset(2))
}
