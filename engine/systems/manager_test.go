package systems

import (
	"testing"

	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/spaghettifunk/softraster/engine/renderer/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemManagerDrawsFrames(t *testing.T) {
	for _, workers := range []int{1, 3} {
		sm, err := NewSystemManager("test", 16, 8, workers, nil)
		require.NoError(t, err)
		assert.Equal(t, workers > 1, sm.JobSystem != nil)
		require.NoError(t, sm.Initialize())
		assert.Equal(t, workers > 1, sm.RendererSystem.IsMultithreaded())

		packet := &metadata.RenderPacket{
			ClearColor: math.NewVec4(0, 0, 0, 1),
			ClearDepth: 1,
			Geometries: []metadata.GeometryRenderData{{
				Geometry: GenerateFullScreenQuad("quad", 0.5),
				Pipeline: shaders.NewVertexColourPipeline(),
			}},
		}
		require.NoError(t, sm.DrawFrame(packet))

		fb := sm.RendererSystem.FrameBuffer()
		require.NotNil(t, fb)
		assert.Equal(t, math.NewVec4(1, 1, 1, 1), fb.Color(7, 3))

		require.NoError(t, sm.OnResize(4, 4))
		require.NoError(t, sm.DrawFrame(packet))
		assert.Equal(t, 4, sm.RendererSystem.FrameBuffer().Width())

		require.NoError(t, sm.Shutdown())
	}
}
