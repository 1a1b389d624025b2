package software

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

// coverageEpsilon lets pixels on a shared edge land in both triangles
// instead of neither.
const coverageEpsilon = 1.192092896e-07

// screenVertex is a vertex after the perspective divide and viewport mapping.
type screenVertex struct {
	// X and Y in pixels, Z is the mapped depth.
	Position math.Vec3
	// RecipW is 1/w of the clip position.
	RecipW float32
}

/**
 * @brief Computes the barycentric weights of p in triangle (a, b, c) with
 * edge functions against the (b, c) and (c, a) edges.
 * @return The weights and false when the triangle has no area.
 */
func barycentric(a, b, c, p math.Vec2) (alpha, beta, gamma float32, ok bool) {
	ba := a.Sub(b)
	bc := c.Sub(b)
	bp := p.Sub(b)
	ca := a.Sub(c)
	cp := p.Sub(c)

	denomAlpha := -ba.X*bc.Y + ba.Y*bc.X
	denomBeta := bc.X*ca.Y - bc.Y*ca.X
	if denomAlpha == 0 || denomBeta == 0 {
		return 0, 0, 0, false
	}

	alpha = (-bp.X*bc.Y + bp.Y*bc.X) / denomAlpha
	beta = (-cp.X*ca.Y + cp.Y*ca.X) / denomBeta
	gamma = 1 - alpha - beta
	return alpha, beta, gamma, true
}

// covers reports whether all three weights are inside the triangle, edges
// included.
func covers(alpha, beta, gamma float32) bool {
	return alpha > -coverageEpsilon && beta > -coverageEpsilon && gamma > -coverageEpsilon
}

// perspectiveWeights turns screen-space barycentric weights into weights
// that interpolate clip-space attributes correctly. The second result is the
// interpolated clip w.
func perspectiveWeights(bary, recipW [3]float32) ([3]float32, float32) {
	w := [3]float32{
		recipW[0] * bary[0],
		recipW[1] * bary[1],
		recipW[2] * bary[2],
	}
	sum := w[0] + w[1] + w[2]
	if sum == 0 {
		return bary, 0
	}
	inv := 1 / sum
	return [3]float32{w[0] * inv, w[1] * inv, w[2] * inv}, inv
}

// isBackFace classifies an NDC triangle. r is positive for counter-clockwise
// winding seen from the camera.
func isBackFace(ndc *[3]math.Vec3, frontCounterClockwise bool) bool {
	r := ndc[0].Dot(ndc[1].Sub(ndc[0]).Cross(ndc[2].Sub(ndc[0])))
	return !((r < 0) != frontCounterClockwise)
}

func culled(mode metadata.CullMode, back bool) bool {
	switch mode {
	case metadata.CullModeFront:
		return !back
	case metadata.CullModeBack:
		return back
	}
	return false
}

type pixelRect struct {
	minX, minY, maxX, maxY int
}

func (r pixelRect) empty() bool {
	return r.minX > r.maxX || r.minY > r.maxY
}

// boundingRect returns the pixels whose centers may fall in the triangle,
// clamped to a width x height target.
func boundingRect(s *[3]screenVertex, width, height int) pixelRect {
	minX := math.Min(s[0].Position.X, math.Min(s[1].Position.X, s[2].Position.X))
	maxX := math.Max(s[0].Position.X, math.Max(s[1].Position.X, s[2].Position.X))
	minY := math.Min(s[0].Position.Y, math.Min(s[1].Position.Y, s[2].Position.Y))
	maxY := math.Max(s[0].Position.Y, math.Max(s[1].Position.Y, s[2].Position.Y))

	return pixelRect{
		minX: math.Max(int(math32.Floor(minX)), 0),
		minY: math.Max(int(math32.Floor(minY)), 0),
		maxX: math.Min(int(math32.Ceil(maxX)), width-1),
		maxY: math.Min(int(math32.Ceil(maxY)), height-1),
	}
}
