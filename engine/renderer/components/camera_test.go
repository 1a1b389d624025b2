package components

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/stretchr/testify/assert"
)

func TestDefaultCameraLooksAtOrigin(t *testing.T) {
	c := NewCamera(2)
	assert.InDelta(t, 2, c.Distance(), 1e-6)
	assert.True(t, c.Forward.Compare(math.NewVec3(0, 0, 1), 1e-6))
	assert.True(t, c.Right.Compare(math.NewVec3(1, 0, 0), 1e-6))
	assert.True(t, c.Up.Compare(math.NewVec3(0, 1, 0), 1e-6))

	origin := math.NewVec4(0, 0, 0, 1).MulMat4(c.GetView())
	assert.True(t, origin.Compare(math.NewVec4(0, 0, 2, 1), 1e-6))

	proj := c.GetProjection()
	y := 1 / math32.Tan(DefaultFOV*0.5)
	assert.InDelta(t, y/2, proj.Data[0], 1e-5)
	assert.InDelta(t, y, proj.Data[5], 1e-5)
	assert.InDelta(t, DefaultFar/(DefaultFar-DefaultNear), proj.Data[10], 1e-5)
	assert.InDelta(t, 1, proj.Data[11], 1e-6)
	assert.InDelta(t, -DefaultNear*DefaultFar/(DefaultFar-DefaultNear), proj.Data[14], 1e-5)
}

func TestTargetProjectsToScreenCenter(t *testing.T) {
	c := NewCamera(16.0 / 9.0)
	c.LookAt(math.NewVec3(3, 2, -4), math.NewVec3(1, 0, 1))

	clip := math.NewVec4(1, 0, 1, 1).MulMat4(c.GetViewProjection())
	assert.InDelta(t, 0, clip.X/clip.W, 1e-5)
	assert.InDelta(t, 0, clip.Y/clip.W, 1e-5)
	ndcZ := clip.Z / clip.W
	assert.Greater(t, ndcZ, float32(0))
	assert.Less(t, ndcZ, float32(1))
}

func TestUpdateWithoutInputKeepsMatrices(t *testing.T) {
	c := NewCamera(1)
	view := c.GetView()
	c.Update(math.NewVec4Zero(), 0)
	assert.False(t, c.IsDirty)
	assert.Equal(t, view, c.GetView())
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := NewCamera(1)
	c.Update(math.NewVec4(0.25, 0, 0, 0), 0)

	assert.InDelta(t, 2, c.Distance(), 1e-4)
	assert.InDelta(t, 2, math32.Abs(c.Position.X), 1e-4)
	assert.InDelta(t, 0, c.Position.Y, 1e-4)
	assert.InDelta(t, 0, c.Position.Z, 1e-4)
	assert.True(t, c.Target.Compare(math.NewVec3Zero(), 1e-6))
}

func TestOrbitClampsPolarAngle(t *testing.T) {
	c := NewCamera(1)
	c.Update(math.NewVec4(0, 1, 0, 0), 0)

	// pinned just short of the pole above the target
	assert.InDelta(t, 2, c.Position.Y, 1e-4)
	assert.Greater(t, c.Position.Y, float32(0))
	assert.InDelta(t, 1, c.Right.Length(), 1e-4)
	assert.InDelta(t, 1, c.Up.Length(), 1e-4)

	c.Update(math.NewVec4(0, -1, 0, 0), 0)
	assert.InDelta(t, -2, c.Position.Y, 1e-4)
}

func TestPanMovesTargetAndPosition(t *testing.T) {
	c := NewCamera(1)
	c.Update(math.NewVec4(0, 0, 0.5, 0), 0)

	// tan(45 deg) * 2 * distance 2 = 4 units per window, half a window = 2
	assert.True(t, c.Target.Compare(math.NewVec3(-2, 0, 0), 1e-4), "target %v", c.Target)
	assert.True(t, c.Position.Compare(math.NewVec3(-2, 0, -2), 1e-4), "position %v", c.Position)

	c.Update(math.NewVec4(0, 0, 0, 0.25), 0)
	assert.InDelta(t, 1, c.Target.Y, 1e-4)
}

func TestScrollDollies(t *testing.T) {
	c := NewCamera(1)
	c.Update(math.NewVec4Zero(), 1)
	assert.InDelta(t, 1.9, c.Distance(), 1e-5)

	c.Update(math.NewVec4Zero(), -2)
	assert.InDelta(t, 1.9/(0.95*0.95), c.Distance(), 1e-4)
}

func TestOrthographicProjection(t *testing.T) {
	c := NewCamera(2)
	c.SetProjectionMode(ProjectionOrthographic)

	proj := c.GetProjection()
	// visible height is 2 * distance * tan(fov/2) = 4
	assert.InDelta(t, 2.0/8.0, proj.Data[0], 1e-5)
	assert.InDelta(t, 2.0/4.0, proj.Data[5], 1e-5)
	assert.InDelta(t, 0, proj.Data[11], 1e-6)
	assert.InDelta(t, 1, proj.Data[15], 1e-6)
}

func TestMoveTranslatesTargetToo(t *testing.T) {
	c := NewCamera(1)
	c.MoveForward(1)
	c.MoveRight(0.5)
	c.MoveUp(2)
	assert.True(t, c.Position.Compare(math.NewVec3(0.5, 2, -1), 1e-6))
	assert.True(t, c.Target.Compare(math.NewVec3(0.5, 2, 1), 1e-6))
	assert.InDelta(t, 2, c.Distance(), 1e-6)
}
