package metadata

/**
 * @brief One geometry to draw with its pipeline and per-draw constants.
 */
type GeometryRenderData struct {
	Geometry        *Geometry
	Pipeline        *PipelineState
	ConstantBuffers ConstantBuffers
}

/**
 * @brief Everything the renderer needs to produce one frame.
 */
type RenderPacket struct {
	DeltaTime  float64
	ClearColor Color
	ClearDepth float32
	Geometries []GeometryRenderData
}
