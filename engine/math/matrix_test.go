package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-5

func TestMat4MulAppliesLeftFirst(t *testing.T) {
	translate := NewMat4Translation(NewVec3(1, 2, 3))
	scale := NewMat4Scale(NewVec3(2, 2, 2))

	p := NewVec3(1, 1, 1)
	got := p.Transform(scale.Mul(translate))
	assert.True(t, got.Compare(NewVec3(3, 4, 5), tolerance), "got %v", got)

	got = p.Transform(translate.Mul(scale))
	assert.True(t, got.Compare(NewVec3(4, 6, 8), tolerance), "got %v", got)
}

func TestMat4Inverse(t *testing.T) {
	m := NewMat4EulerXYZ(0.3, -1.1, 0.7).Mul(NewMat4Translation(NewVec3(4, -2, 9)))
	id := m.Mul(m.Inverse())
	for i, v := range NewMat4Identity().Data {
		assert.InDelta(t, v, id.Data[i], 1e-4, "element %d", i)
	}
}

func TestMat4InverseSingularReturnsIdentity(t *testing.T) {
	assert.Equal(t, NewMat4Identity(), Mat4{}.Inverse())
}

func TestPerspectiveLHCoefficients(t *testing.T) {
	fov := DegToRad(90)
	m := NewMat4PerspectiveLH(fov, 2.0, 1, 101)

	assert.InDelta(t, 1.0, m.Data[5], tolerance)
	assert.InDelta(t, 0.5, m.Data[0], tolerance)
	assert.InDelta(t, 101.0/100.0, m.Data[10], tolerance)
	assert.InDelta(t, -101.0/100.0, m.Data[14], tolerance)
	assert.Equal(t, float32(1), m.Data[11])
}

func TestPerspectiveLHDepthRange(t *testing.T) {
	m := NewMat4PerspectiveLH(DegToRad(60), 1.0, 0.5, 50)

	near := NewVec4(0, 0, 0.5, 1).MulMat4(m)
	far := NewVec4(0, 0, 50, 1).MulMat4(m)

	assert.InDelta(t, 0.0, near.Z/near.W, tolerance)
	assert.InDelta(t, 1.0, far.Z/far.W, tolerance)
	assert.InDelta(t, 0.5, near.W, tolerance)
}

func TestLookAtLHPutsTargetOnAxis(t *testing.T) {
	view := NewMat4LookAtLH(NewVec3(3, 4, -5), NewVec3Zero(), NewVec3Up())
	target := NewVec3Zero().Transform(view)

	assert.InDelta(t, 0.0, target.X, tolerance)
	assert.InDelta(t, 0.0, target.Y, tolerance)
	assert.InDelta(t, NewVec3(3, 4, -5).Length(), target.Z, tolerance)
}

func TestQuaternionMatchesEuler(t *testing.T) {
	q := NewQuatFromAxisAngle(NewVec3(0, 0, 1), K_HALF_PI, true)
	got := NewVec3(1, 0, 0).Transform(q.ToMat4())
	want := NewVec3(1, 0, 0).Transform(NewMat4EulerZ(K_HALF_PI))

	assert.True(t, got.Compare(want, tolerance), "got %v want %v", got, want)
	assert.True(t, got.Compare(NewVec3(0, 1, 0), tolerance))
}

func TestTransformLocalOrder(t *testing.T) {
	tr := NewTransformFromPosition(NewVec3(10, 0, 0))
	tr.SetScale(NewVec3(2, 2, 2))

	got := NewVec3(1, 0, 0).Transform(tr.GetLocal())
	assert.True(t, got.Compare(NewVec3(12, 0, 0), tolerance), "got %v", got)
	assert.False(t, tr.IsDirty)
}
