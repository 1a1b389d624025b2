package software

import (
	"sync"
	"testing"

	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goroutineDispatcher runs every index on its own goroutine.
type goroutineDispatcher struct{}

func (goroutineDispatcher) ParallelFor(count int, fn func(i int)) {
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(i int) {
			defer wg.Done()
			fn(i)
		}(i)
	}
	wg.Wait()
}

// positions are already in clip space with w = 1
var passthroughVS = metadata.VertexShaderFunc(func(in *math.Vertex3D, cb *metadata.ConstantBuffers) metadata.ShadedVertex {
	return metadata.ShadedVertex{
		Position: math.NewVec4(in.Position.X, in.Position.Y, in.Position.Z, 1),
		Texcoord: in.Texcoord,
		Colour:   in.Colour,
	}
})

var colourPS = metadata.PixelShaderFunc(func(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers) metadata.Color {
	return in.Colour
})

func vertex(x, y, z float32, colour math.Vec4) math.Vertex3D {
	return math.Vertex3D{Position: math.NewVec3(x, y, z), Colour: colour}
}

// fullScreenTriangle covers the whole viewport once clipped.
func fullScreenTriangle(z float32, colour math.Vec4) []math.Vertex3D {
	return []math.Vertex3D{
		vertex(-1, -1, z, colour),
		vertex(-1, 3, z, colour),
		vertex(3, -1, z, colour),
	}
}

type fixture struct {
	gc    *GraphicsContext
	fb    *buffer.FrameBuffer
	depth *buffer.DepthBuffer
}

func newFixture(t *testing.T, width, height int) *fixture {
	t.Helper()
	fb, err := buffer.NewFrameBuffer(width, height)
	require.NoError(t, err)
	depth, err := buffer.NewDepthBuffer(width, height)
	require.NoError(t, err)

	gc := NewGraphicsContext()
	require.NoError(t, gc.SetRenderTargets(fb, depth))
	gc.SetViewport(metadata.NewViewport(uint32(width), uint32(height)))
	gc.SetPipelineState(metadata.NewPipelineState("test", passthroughVS, colourPS))
	gc.ClearColor(fb, math.NewVec4(0, 0, 0, 1))
	gc.ClearDepth(depth, 1)
	return &fixture{gc: gc, fb: fb, depth: depth}
}

func (f *fixture) draw(t *testing.T, vertices []math.Vertex3D, indices []uint32) {
	t.Helper()
	f.gc.SetVertexBuffer(vertices)
	f.gc.SetIndexBuffer(indices)
	require.NoError(t, f.gc.DrawIndexed(uint32(len(indices)), 0, 0))
}

func assertColour(t *testing.T, fb *buffer.FrameBuffer, x, y int, want math.Vec4) {
	t.Helper()
	got := fb.Color(x, y)
	assert.True(t, got.Compare(want, 1.0/255.0), "pixel (%d,%d): got %v want %v", x, y, got, want)
}

func TestDrawIndexedFillsViewport(t *testing.T) {
	f := newFixture(t, 8, 6)
	red := math.NewVec4(1, 0, 0, 1)
	f.draw(t, fullScreenTriangle(0.5, red), []uint32{0, 1, 2})

	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			assertColour(t, f.fb, x, y, red)
			assert.InDelta(t, 0.5, f.depth.Value(x, y), 1e-5)
		}
	}
	// BGRA in memory
	assert.Equal(t, []uint8{0, 0, 255, 255}, f.fb.Data()[:4])
}

func TestDrawIndexedColorBufferTarget(t *testing.T) {
	cb, err := buffer.NewColorBuffer(4, 4)
	require.NoError(t, err)

	gc := NewGraphicsContext()
	require.NoError(t, gc.SetRenderTargets(cb, nil))
	gc.SetViewport(metadata.NewViewport(4, 4))
	gc.SetPipelineState(metadata.NewPipelineState("test", passthroughVS, colourPS))

	red := math.NewVec4(1, 0, 0, 1)
	gc.ClearColor(cb, math.NewVec4(0, 0, 1, 1))
	gc.SetVertexBuffer(fullScreenTriangle(0.5, red))
	gc.SetIndexBuffer([]uint32{0, 1, 2})
	require.NoError(t, gc.DrawIndexed(3, 0, 0))

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := cb.Color(x, y)
			assert.True(t, got.Compare(red, 1e-4), "pixel (%d,%d): got %v want %v", x, y, got, red)
		}
	}
	// RGBA in memory
	px := cb.Data()[:4]
	assert.InDelta(t, 1, px[0], 1e-4)
	assert.InDelta(t, 0, px[2], 1e-4)
}

func TestDrawIndexedDepthLess(t *testing.T) {
	f := newFixture(t, 4, 4)
	f.gc.ClearDepth(f.depth, 0.5)

	green := math.NewVec4(0, 1, 0, 1)
	f.draw(t, fullScreenTriangle(0.3, green), []uint32{0, 1, 2})
	assert.InDelta(t, 0.3, f.depth.Value(1, 1), 1e-5)
	assertColour(t, f.fb, 1, 1, green)

	blue := math.NewVec4(0, 0, 1, 1)
	f.draw(t, fullScreenTriangle(0.7, blue), []uint32{0, 1, 2})
	assert.InDelta(t, 0.3, f.depth.Value(1, 1), 1e-5)
	assertColour(t, f.fb, 1, 1, green)
}

func TestDrawIndexedDepthFailKeepsBuffer(t *testing.T) {
	f := newFixture(t, 4, 4)
	f.gc.ClearDepth(f.depth, 0.5)

	f.draw(t, fullScreenTriangle(0.7, math.NewVec4(1, 1, 1, 1)), []uint32{0, 1, 2})
	assert.InDelta(t, 0.5, f.depth.Value(2, 2), 1e-6)
	assertColour(t, f.fb, 2, 2, math.NewVec4(0, 0, 0, 1))
}

func TestDrawIndexedWithoutDepthBuffer(t *testing.T) {
	f := newFixture(t, 4, 4)
	require.NoError(t, f.gc.SetRenderTargets(f.fb, nil))

	white := math.NewVec4(1, 1, 1, 1)
	f.draw(t, fullScreenTriangle(0.7, white), []uint32{0, 1, 2})
	f.draw(t, fullScreenTriangle(0.9, math.NewVec4(1, 0, 1, 1)), []uint32{0, 1, 2})
	// last write wins
	assertColour(t, f.fb, 0, 0, math.NewVec4(1, 0, 1, 1))
}

func TestDrawIndexedBackFaceCulling(t *testing.T) {
	white := math.NewVec4(1, 1, 1, 1)
	black := math.NewVec4(0, 0, 0, 1)
	// counter-clockwise in NDC, covers the lower left half
	vertices := []math.Vertex3D{
		vertex(-1, -1, 0.5, white),
		vertex(1, -1, 0.5, white),
		vertex(-1, 1, 0.5, white),
	}

	f := newFixture(t, 8, 8)
	ps := f.gc.pipeline
	ps.RasterizerState = metadata.RasterizerDesc{CullMode: metadata.CullModeBack, FrontCounterClockwise: true}

	f.draw(t, vertices, []uint32{0, 1, 2})
	assertColour(t, f.fb, 1, 6, white)
	assertColour(t, f.fb, 7, 0, black)

	g := newFixture(t, 8, 8)
	g.gc.SetPipelineState(ps)
	g.draw(t, vertices, []uint32{0, 2, 1})
	assertColour(t, g.fb, 1, 6, black)

	ps.RasterizerState.CullMode = metadata.CullModeFront
	g.draw(t, vertices, []uint32{0, 2, 1})
	assertColour(t, g.fb, 1, 6, white)
}

func TestDrawIndexedBaseVertexAndStartIndex(t *testing.T) {
	f := newFixture(t, 4, 4)
	red := math.NewVec4(1, 0, 0, 1)
	green := math.NewVec4(0, 1, 0, 1)
	vertices := append(fullScreenTriangle(0.5, red), fullScreenTriangle(0.4, green)...)

	f.gc.SetVertexBuffer(vertices)
	f.gc.SetIndexBuffer([]uint32{0, 1, 2, 0, 1, 2})
	require.NoError(t, f.gc.DrawIndexed(3, 3, 3))
	assertColour(t, f.fb, 1, 1, green)
}

func TestDrawIndexedPixelInput(t *testing.T) {
	f := newFixture(t, 4, 4)
	var mu sync.Mutex
	seen := map[[2]int]math.Vec4{}
	f.gc.SetPipelineState(metadata.NewPipelineState("capture", passthroughVS,
		metadata.PixelShaderFunc(func(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers) metadata.Color {
			mu.Lock()
			seen[[2]int{int(in.Position.X), int(in.Position.Y)}] = in.Position
			mu.Unlock()
			return in.Colour
		})))
	f.draw(t, fullScreenTriangle(0.25, math.NewVec4One()), []uint32{0, 1, 2})

	require.Len(t, seen, 16)
	p := seen[[2]int{2, 3}]
	assert.InDelta(t, 2.5, p.X, 1e-6)
	assert.InDelta(t, 3.5, p.Y, 1e-6)
	assert.InDelta(t, 0.25, p.Z, 1e-5)
	assert.InDelta(t, 1, p.W, 1e-5)
}

type gbufferShader struct{}

func (gbufferShader) ShadePixel(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers) metadata.Color {
	return in.Colour
}

func (gbufferShader) ShadePixelTargets(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers, out *[metadata.MaxAuxiliaryTargets]metadata.Color) metadata.Color {
	out[0] = math.NewVec4(in.Position.Z, 0, 0, 1)
	return in.Colour
}

func TestDrawIndexedAuxiliaryTargets(t *testing.T) {
	f := newFixture(t, 4, 4)
	aux, err := buffer.NewColorBuffer(4, 4)
	require.NoError(t, err)
	require.NoError(t, f.gc.SetRenderTargets(f.fb, f.depth, aux))
	f.gc.SetPipelineState(metadata.NewPipelineState("gbuffer", passthroughVS, gbufferShader{}))

	red := math.NewVec4(1, 0, 0, 1)
	f.draw(t, fullScreenTriangle(0.75, red), []uint32{0, 1, 2})
	assertColour(t, f.fb, 3, 3, red)
	assert.InDelta(t, 0.75, aux.Color(3, 3).X, 1e-5)

	assert.ErrorIs(t, f.gc.SetRenderTargets(f.fb, nil, make([]RenderTarget, 9)...), ErrTooManyTargets)
}

func TestDrawIndexedParallelMatchesSequential(t *testing.T) {
	var vertices []math.Vertex3D
	var indices []uint32
	for i := 0; i < 40; i++ {
		fi := float32(i)
		c := math.NewVec4(fi/40, 1-fi/40, float32(i%3)/2, 1)
		// overlapping triangles, each at its own depth
		z := 0.9 - fi*0.01
		base := uint32(len(vertices))
		vertices = append(vertices,
			vertex(-1+fi*0.02, -1, z, c),
			vertex(-0.5+fi*0.03, 1, z, c),
			vertex(1, -0.8+fi*0.04, z, c),
		)
		indices = append(indices, base, base+1, base+2)
	}

	seq := newFixture(t, 32, 24)
	seq.draw(t, vertices, indices)

	par := newFixture(t, 32, 24)
	par.gc.SetDispatcher(goroutineDispatcher{})
	par.draw(t, vertices, indices)

	assert.Equal(t, seq.fb.Data(), par.fb.Data())
	assert.Equal(t, seq.depth.Data(), par.depth.Data())
}

func TestDrawIndexedMissingBindings(t *testing.T) {
	fb, err := buffer.NewFrameBuffer(4, 4)
	require.NoError(t, err)
	vertices := fullScreenTriangle(0.5, math.NewVec4One())

	gc := NewGraphicsContext()
	assert.ErrorIs(t, gc.DrawIndexed(3, 0, 0), ErrNoPipelineState)

	gc.SetPipelineState(&metadata.PipelineState{VS: passthroughVS})
	assert.ErrorIs(t, gc.DrawIndexed(3, 0, 0), ErrIncompleteShaders)

	gc.SetPipelineState(metadata.NewPipelineState("test", passthroughVS, colourPS))
	assert.ErrorIs(t, gc.DrawIndexed(3, 0, 0), ErrNoRenderTarget)

	require.NoError(t, gc.SetRenderTargets(fb, nil))
	assert.ErrorIs(t, gc.DrawIndexed(3, 0, 0), ErrNoVertexBuffer)

	gc.SetVertexBuffer(vertices)
	assert.ErrorIs(t, gc.DrawIndexed(3, 0, 0), ErrNoIndexBuffer)

	gc.SetIndexBuffer([]uint32{0, 1, 2})
	assert.ErrorIs(t, gc.DrawIndexed(3, 0, 0), ErrInvalidViewport)

	gc.SetViewport(metadata.NewViewport(4, 4))
	assert.ErrorIs(t, gc.DrawIndexed(6, 0, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, gc.DrawIndexed(3, 0, 1), ErrVertexOutOfRange)
	assert.NoError(t, gc.DrawIndexed(3, 0, 0))

	small, err := buffer.NewDepthBuffer(2, 2)
	require.NoError(t, err)
	require.NoError(t, gc.SetRenderTargets(fb, small))
	assert.ErrorIs(t, gc.DrawIndexed(3, 0, 0), ErrDepthBufferSize)
}

func TestSlotBindings(t *testing.T) {
	gc := NewGraphicsContext()
	assert.NoError(t, gc.SetConstantBuffer(9, 1))
	assert.ErrorIs(t, gc.SetConstantBuffer(10, 1), ErrInvalidSlot)
	assert.ErrorIs(t, gc.SetShaderResource(-1, nil), ErrInvalidSlot)
	assert.ErrorIs(t, gc.SetSampler(10, nil), ErrInvalidSlot)

	gc.ClearState()
	assert.Nil(t, gc.constantBuffers[9])
}
