package platform

import (
	"time"

	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
)

var startTime = time.Now()

/**
 * @brief The side of the engine a presenter drives. Tick renders one frame
 * into the frame buffer; the presenter then shows or stores that buffer.
 */
type Application interface {
	Tick(deltaTime float64) error
	FrameBuffer() *buffer.FrameBuffer
	OnResized(width, height uint32)
}

// Presenter owns the frame loop. Run blocks until the loop ends.
type Presenter interface {
	Run(app Application) error
	RequestQuit()
}

// GetAbsoluteTime returns the seconds since the process started.
func GetAbsoluteTime() float64 {
	return time.Since(startTime).Seconds()
}

func Sleep(ms float64) {
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}
