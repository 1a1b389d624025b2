package software

import (
	"fmt"

	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

// drawCall is a snapshot of the bindings taken when a draw starts. Faces only
// read from it, so they can be processed on any goroutine.
type drawCall struct {
	gc *GraphicsContext

	pipeline   *metadata.PipelineState
	vertices   []math.Vertex3D
	indices    []uint32
	baseVertex uint32
	viewport   metadata.Viewport

	target      RenderTarget
	aux         [metadata.MaxAuxiliaryTargets]RenderTarget
	auxCount    int
	multiTarget metadata.MultiTargetPixelShader
	depth       *buffer.DepthBuffer
	depthFunc   metadata.ComparisonFunc

	constantBuffers metadata.ConstantBuffers
	shaderResources metadata.ShaderResources
	samplers        metadata.Samplers

	concurrent bool
}

/**
 * @brief Draws indexCount/3 triangles reading indices from startIndex on,
 * each offset by baseVertex before the vertex fetch.
 *
 * Every face goes through vertex shading, clipping, perspective divide,
 * culling, viewport mapping, scan conversion, the depth test, perspective
 * correct interpolation and pixel shading. Missing required bindings are
 * reported as errors and nothing is drawn. A nil depth buffer disables the
 * depth test.
 */
func (gc *GraphicsContext) DrawIndexed(indexCount, startIndex, baseVertex uint32) error {
	dc, err := gc.newDrawCall(indexCount, startIndex, baseVertex)
	if err != nil {
		core.LogError("DrawIndexed: %s", err)
		return err
	}

	faces := int(indexCount / 3)
	if faces == 0 {
		return nil
	}
	if gc.dispatcher != nil && faces > 1 {
		dc.concurrent = true
		gc.dispatcher.ParallelFor(faces, dc.drawFace)
		return nil
	}
	for f := 0; f < faces; f++ {
		dc.drawFace(f)
	}
	return nil
}

func (gc *GraphicsContext) newDrawCall(indexCount, startIndex, baseVertex uint32) (*drawCall, error) {
	switch {
	case gc.pipeline == nil:
		return nil, ErrNoPipelineState
	case gc.pipeline.VS == nil || gc.pipeline.PS == nil:
		return nil, ErrIncompleteShaders
	case gc.renderTarget == nil:
		return nil, ErrNoRenderTarget
	case len(gc.vertexBuffer) == 0:
		return nil, ErrNoVertexBuffer
	case gc.indexBuffer == nil:
		return nil, ErrNoIndexBuffer
	case gc.viewport.Width <= 0 || gc.viewport.Height <= 0:
		return nil, ErrInvalidViewport
	}

	end := uint64(startIndex) + uint64(indexCount)
	if end > uint64(len(gc.indexBuffer)) {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrIndexOutOfRange, startIndex, end, len(gc.indexBuffer))
	}
	indices := gc.indexBuffer[startIndex:end]
	for _, idx := range indices {
		if uint64(idx)+uint64(baseVertex) >= uint64(len(gc.vertexBuffer)) {
			return nil, fmt.Errorf("%w: %d+%d of %d", ErrVertexOutOfRange, idx, baseVertex, len(gc.vertexBuffer))
		}
	}

	dc := &drawCall{
		gc:              gc,
		pipeline:        gc.pipeline,
		vertices:        gc.vertexBuffer,
		indices:         indices,
		baseVertex:      baseVertex,
		viewport:        gc.viewport,
		target:          gc.renderTarget,
		aux:             gc.auxTargets,
		constantBuffers: gc.constantBuffers,
		shaderResources: gc.shaderResources,
		samplers:        gc.samplers,
	}

	if gc.pipeline.DepthStencilState.DepthEnable && gc.depthBuffer != nil {
		if gc.depthBuffer.Width() < gc.renderTarget.Width() || gc.depthBuffer.Height() < gc.renderTarget.Height() {
			return nil, fmt.Errorf("%w: %dx%d for %dx%d", ErrDepthBufferSize,
				gc.depthBuffer.Width(), gc.depthBuffer.Height(), gc.renderTarget.Width(), gc.renderTarget.Height())
		}
		dc.depth = gc.depthBuffer
		dc.depthFunc = gc.pipeline.DepthStencilState.DepthFunc
	}

	if mt, ok := gc.pipeline.PS.(metadata.MultiTargetPixelShader); ok {
		for i, t := range dc.aux {
			if t != nil {
				dc.auxCount = i + 1
			}
		}
		if dc.auxCount > 0 {
			dc.multiTarget = mt
		}
	}
	return dc, nil
}

func (dc *drawCall) drawFace(face int) {
	var tri [3]metadata.ShadedVertex
	for k := 0; k < 3; k++ {
		idx := dc.indices[face*3+k] + dc.baseVertex
		tri[k] = dc.pipeline.VS.ShadeVertex(&dc.vertices[idx], &dc.constantBuffers)
	}

	var poly clipPolygon
	clipTriangle(&tri, &poly)
	for i := 0; i+2 < poly.count; i++ {
		dc.drawTriangle(&poly.vertices[0], &poly.vertices[i+1], &poly.vertices[i+2])
	}
}

func (dc *drawCall) drawTriangle(v0, v1, v2 *metadata.ShadedVertex) {
	verts := [3]*metadata.ShadedVertex{v0, v1, v2}

	var ndc [3]math.Vec3
	var screen [3]screenVertex
	for k, v := range verts {
		recipW := 1 / v.Position.W
		ndc[k] = v.Position.ToVec3().MulScalar(recipW)
		screen[k].RecipW = recipW
	}

	raster := dc.pipeline.RasterizerState
	if raster.CullMode != metadata.CullModeNone {
		if culled(raster.CullMode, isBackFace(&ndc, raster.FrontCounterClockwise)) {
			return
		}
	}

	for k := range screen {
		screen[k].Position = dc.viewport.ToScreen(ndc[k])
	}

	rect := boundingRect(&screen, dc.target.Width(), dc.target.Height())
	if rect.empty() {
		return
	}

	a := math.NewVec2(screen[0].Position.X, screen[0].Position.Y)
	b := math.NewVec2(screen[1].Position.X, screen[1].Position.Y)
	c := math.NewVec2(screen[2].Position.X, screen[2].Position.Y)
	recipW := [3]float32{screen[0].RecipW, screen[1].RecipW, screen[2].RecipW}
	if _, _, _, ok := barycentric(a, b, c, a); !ok {
		// zero area
		return
	}

	for y := rect.minY; y <= rect.maxY; y++ {
		for x := rect.minX; x <= rect.maxX; x++ {
			p := math.NewVec2(float32(x)+0.5, float32(y)+0.5)
			alpha, beta, gamma, _ := barycentric(a, b, c, p)
			if !covers(alpha, beta, gamma) {
				continue
			}
			depth := screen[0].Position.Z*alpha + screen[1].Position.Z*beta + screen[2].Position.Z*gamma
			dc.shadePixel(x, y, depth, verts, [3]float32{alpha, beta, gamma}, recipW)
		}
	}
}

func (dc *drawCall) shadePixel(x, y int, depth float32, verts [3]*metadata.ShadedVertex, bary, recipW [3]float32) {
	if dc.concurrent {
		mu := &dc.gc.rowLocks[y%rowLockStripes]
		mu.Lock()
		defer mu.Unlock()
	}

	if dc.depth != nil {
		if !dc.depthFunc.Compare(depth, dc.depth.Value(x, y)) {
			return
		}
		dc.depth.SetValue(x, y, depth)
	}

	weights, clipW := perspectiveWeights(bary, recipW)
	var in metadata.ShadedVertex
	in.Blend(verts[0], verts[1], verts[2], weights[0], weights[1], weights[2])
	in.Position = math.NewVec4(float32(x)+0.5, float32(y)+0.5, depth, clipW)

	if dc.multiTarget != nil {
		var out [metadata.MaxAuxiliaryTargets]metadata.Color
		color := dc.multiTarget.ShadePixelTargets(&in, &dc.constantBuffers, &dc.shaderResources, &dc.samplers, &out)
		for i := 0; i < dc.auxCount; i++ {
			if t := dc.aux[i]; t != nil && x < t.Width() && y < t.Height() {
				t.SetColor(x, y, out[i])
			}
		}
		dc.target.SetColor(x, y, color)
		return
	}

	color := dc.pipeline.PS.ShadePixel(&in, &dc.constantBuffers, &dc.shaderResources, &dc.samplers)
	dc.target.SetColor(x, y, color)
}
