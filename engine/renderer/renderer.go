package renderer

import (
	"errors"

	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

type RendererType uint8

const (
	Software RendererType = iota
)

// Renderer is the frontend the engine talks to. It turns render packets into
// backend calls.
type Renderer struct {
	backend RendererBackend
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := r.backend.Initialize(appName, appWidth, appHeight); err != nil {
		core.LogError("renderer backend failed to initialize: %s", err)
		return err
	}
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResized(width, height uint32) error {
	return r.backend.Resized(width, height)
}

/**
 * @brief Draws every geometry of the packet between a begin and an end of
 * frame. A geometry that fails to draw is logged and the frame goes on.
 * @param renderPacket The packet describing the frame.
 * @return The joined draw errors, or the begin/end frame error.
 */
func (r *Renderer) DrawFrame(renderPacket *metadata.RenderPacket) error {
	if err := r.backend.BeginFrame(renderPacket); err != nil {
		core.LogError(err.Error())
		return err
	}

	var drawErrs []error
	for i := range renderPacket.Geometries {
		if err := r.backend.DrawGeometry(&renderPacket.Geometries[i]); err != nil {
			drawErrs = append(drawErrs, err)
		}
	}

	if err := r.backend.EndFrame(renderPacket); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return errors.Join(drawErrs...)
}

func (r *Renderer) FrameBuffer() *buffer.FrameBuffer {
	return r.backend.FrameBuffer()
}

func (r *Renderer) IsMultithreaded() bool {
	return r.backend.IsMultithreaded()
}
