//go:build !cgo || headless

package platform

import (
	"errors"

	"github.com/spaghettifunk/softraster/engine/core"
)

// ErrNoWindow is returned by Window.Run in builds without a display stack.
var ErrNoWindow = errors.New("window mode requires cgo and a build without the headless tag")

// Window stands in for the desktop presenter. Only headless rendering is
// available in this build.
type Window struct {
	width  uint32
	height uint32
}

func NewWindow(title string, x, y, width, height uint32, input *core.InputState) *Window {
	return &Window{width: width, height: height}
}

func (w *Window) Run(app Application) error {
	core.LogError(ErrNoWindow.Error())
	return ErrNoWindow
}

func (w *Window) RequestQuit() {}

func (w *Window) Size() (uint32, uint32) {
	return w.width, w.height
}
