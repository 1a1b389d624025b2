//go:build !cgo || headless

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowUnavailable(t *testing.T) {
	w := NewWindow("test", 0, 0, 32, 16, nil)
	var p Presenter = w
	assert.ErrorIs(t, p.Run(newFakeApp(t, 4, 4)), ErrNoWindow)

	width, height := w.Size()
	assert.Equal(t, uint32(32), width)
	assert.Equal(t, uint32(16), height)
}
