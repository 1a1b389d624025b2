package renderer

import (
	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(packet *metadata.RenderPacket) error
	DrawGeometry(data *metadata.GeometryRenderData) error
	EndFrame(packet *metadata.RenderPacket) error
	// FrameBuffer is the presentable result of the last frame.
	FrameBuffer() *buffer.FrameBuffer
	IsMultithreaded() bool
}
