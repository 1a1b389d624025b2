package software

import (
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

const (
	// clipEpsilon keeps w and z strictly positive after clipping.
	clipEpsilon = 1e-5
	// maxClipVertices bounds a triangle clipped by all seven planes: each
	// plane adds at most one vertex to a convex polygon.
	maxClipVertices = 10
)

type clipPlane int

const (
	clipPlaneW clipPlane = iota
	clipPlanePosX
	clipPlaneNegX
	clipPlanePosY
	clipPlaneNegY
	clipPlaneFar
	clipPlaneNear
	numClipPlanes
)

// distance is the signed distance of p from the plane, inside when >= 0.
func (cp clipPlane) distance(p math.Vec4) float32 {
	switch cp {
	case clipPlaneW:
		return p.W - clipEpsilon
	case clipPlanePosX:
		return p.W - p.X
	case clipPlaneNegX:
		return p.W + p.X
	case clipPlanePosY:
		return p.W - p.Y
	case clipPlaneNegY:
		return p.W + p.Y
	case clipPlaneFar:
		return p.W - p.Z
	case clipPlaneNear:
		return p.Z - clipEpsilon
	}
	return 0
}

// clipPolygon is a convex polygon in clip space. It lives on the stack of the
// goroutine clipping a face.
type clipPolygon struct {
	vertices [maxClipVertices]metadata.ShadedVertex
	count    int
}

func (p *clipPolygon) push(v *metadata.ShadedVertex) {
	if p.count == maxClipVertices {
		if debugChecks {
			panic("clip polygon overflow")
		}
		return
	}
	p.vertices[p.count] = *v
	p.count++
}

// clipTriangle clips a clip-space triangle against the w, x, y, far and near
// planes in that order. out holds 0 or 3 to 10 vertices afterwards.
func clipTriangle(tri *[3]metadata.ShadedVertex, out *clipPolygon) {
	var scratch clipPolygon
	out.count = 0
	for i := range tri {
		out.push(&tri[i])
	}

	src, dst := out, &scratch
	for plane := clipPlane(0); plane < numClipPlanes; plane++ {
		clipAgainstPlane(src, dst, plane)
		src, dst = dst, src
		if src.count < 3 {
			src.count = 0
			break
		}
	}
	if src != out {
		*out = *src
	}
}

// clipAgainstPlane is one Sutherland-Hodgman pass from in to out.
func clipAgainstPlane(in, out *clipPolygon, plane clipPlane) {
	out.count = 0
	if in.count == 0 {
		return
	}

	last := &in.vertices[in.count-1]
	lastDist := plane.distance(last.Position)
	for i := 0; i < in.count; i++ {
		cur := &in.vertices[i]
		curDist := plane.distance(cur.Position)

		if curDist >= 0 {
			if lastDist < 0 {
				out.push(intersect(last, cur, lastDist, curDist))
			}
			out.push(cur)
		} else if lastDist >= 0 {
			out.push(intersect(last, cur, lastDist, curDist))
		}

		last, lastDist = cur, curDist
	}
}

func intersect(a, b *metadata.ShadedVertex, da, db float32) *metadata.ShadedVertex {
	var v metadata.ShadedVertex
	v.Lerp(a, b, da/(da-db))
	return &v
}
