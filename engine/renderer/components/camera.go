package components

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/softraster/engine/math"
)

type ProjectionMode uint8

const (
	ProjectionPerspective ProjectionMode = iota
	ProjectionOrthographic
)

const (
	/** @brief The name of the default camera. */
	DEFAULT_CAMERA_NAME string = "default"

	DefaultFOV  float32 = 90.0 * math.K_DEG2RAD_MULTIPLIER
	DefaultNear float32 = 0.01
	DefaultFar  float32 = 10000.0

	// polar angle stays this far away from the poles
	polarEpsilon float32 = 1e-3
	// distance multiplier per scroll step
	dollyFactor float32 = 0.95
)

/**
 * @brief An orbit camera circling a target point. The cursor orbits and pans
 * it, the scroll wheel dollies it towards the target.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/** @brief The point the camera orbits and looks at. */
	Target math.Vec3
	/** @brief The reference up direction the basis is built from. */
	WorldUp math.Vec3

	Forward math.Vec3
	Right   math.Vec3
	Up      math.Vec3

	/** @brief Vertical field of view in radians. */
	FOV    float32
	Near   float32
	Far    float32
	Aspect float32
	Mode   ProjectionMode

	/** @brief Internal flag used to determine when the matrices need to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix       math.Mat4
	ProjectionMatrix math.Mat4
}

func NewCamera(aspect float32) *Camera {
	camera := &Camera{}
	camera.Reset()
	camera.SetAspect(aspect)
	return camera
}

// Reset puts the camera two units in front of the origin looking at it.
func (c *Camera) Reset() {
	c.Position = math.NewVec3(0, 0, -2)
	c.Target = math.NewVec3Zero()
	c.WorldUp = math.NewVec3Up()
	c.FOV = DefaultFOV
	c.Near = DefaultNear
	c.Far = DefaultFar
	c.Aspect = 1
	c.Mode = ProjectionPerspective
	c.ViewMatrix = math.NewMat4Identity()
	c.ProjectionMatrix = math.NewMat4Identity()
	c.updateBasis()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.updateBasis()
}

// LookAt moves the camera to position and points it at target.
func (c *Camera) LookAt(position, target math.Vec3) {
	c.Position = position
	c.Target = target
	c.updateBasis()
}

func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	c.IsDirty = true
}

func (c *Camera) SetFOV(fovRadians float32) {
	c.FOV = fovRadians
	c.IsDirty = true
}

func (c *Camera) SetClipPlanes(near, far float32) {
	c.Near, c.Far = near, far
	c.IsDirty = true
}

func (c *Camera) SetProjectionMode(mode ProjectionMode) {
	c.Mode = mode
	c.IsDirty = true
}

// Distance is the distance between the camera and its target.
func (c *Camera) Distance() float32 {
	return c.Target.Sub(c.Position).Length()
}

/**
 * @brief Applies one frame of input.
 * @param cursorDelta xy orbits and zw pans, both as fractions of the window size.
 * @param scrollDelta Wheel steps; positive values move closer to the target.
 */
func (c *Camera) Update(cursorDelta math.Vec4, scrollDelta float32) {
	if cursorDelta == (math.Vec4{}) && scrollDelta == 0 {
		return
	}

	offset := c.Position.Sub(c.Target)
	distance := offset.Length()
	if distance < math.K_FLOAT_EPSILON {
		return
	}

	theta := math32.Atan2(offset.X, offset.Z)
	phi := math32.Acos(math.Clamp(offset.Y/distance, -1, 1))

	theta -= cursorDelta.X * math.K_2PI
	phi -= cursorDelta.Y * math.K_2PI
	phi = math.Clamp(phi, polarEpsilon, math.K_PI-polarEpsilon)

	// one window of drag pans by the visible extent at the target distance
	pan := distance * math32.Tan(c.FOV*0.5) * 2
	c.Target = c.Target.
		Sub(c.Right.MulScalar(cursorDelta.Z * pan)).
		Add(c.Up.MulScalar(cursorDelta.W * pan))

	distance *= math32.Pow(dollyFactor, scrollDelta)
	distance = math.Max(distance, c.Near)

	sinPhi := math32.Sin(phi)
	c.Position = c.Target.Add(math.NewVec3(
		sinPhi*math32.Sin(theta),
		math32.Cos(phi),
		sinPhi*math32.Cos(theta),
	).MulScalar(distance))

	c.updateBasis()
}

func (c *Camera) updateBasis() {
	c.Forward = c.Target.Sub(c.Position).Normalized()
	c.Right = c.WorldUp.Cross(c.Forward).Normalized()
	c.Up = c.Forward.Cross(c.Right)
	c.IsDirty = true
}

func (c *Camera) rebuild() {
	if !c.IsDirty {
		return
	}
	c.ViewMatrix = math.NewMat4View(c.Position, c.Right, c.Up, c.Forward)
	switch c.Mode {
	case ProjectionOrthographic:
		height := 2 * c.Distance() * math32.Tan(c.FOV*0.5)
		c.ProjectionMatrix = math.NewMat4OrthographicLH(height*c.Aspect, height, c.Near, c.Far)
	default:
		c.ProjectionMatrix = math.NewMat4PerspectiveLH(c.FOV, c.Aspect, c.Near, c.Far)
	}
	c.IsDirty = false
}

func (c *Camera) GetView() math.Mat4 {
	c.rebuild()
	return c.ViewMatrix
}

func (c *Camera) GetProjection() math.Mat4 {
	c.rebuild()
	return c.ProjectionMatrix
}

// GetViewProjection transforms world positions straight to clip space.
func (c *Camera) GetViewProjection() math.Mat4 {
	c.rebuild()
	return c.ViewMatrix.Mul(c.ProjectionMatrix)
}

func (c *Camera) translate(direction math.Vec3, amount float32) {
	d := direction.MulScalar(amount)
	c.Position = c.Position.Add(d)
	c.Target = c.Target.Add(d)
	c.IsDirty = true
}

func (c *Camera) MoveForward(amount float32) {
	c.translate(c.Forward, amount)
}

func (c *Camera) MoveBackward(amount float32) {
	c.translate(c.Forward, -amount)
}

func (c *Camera) MoveLeft(amount float32) {
	c.translate(c.Right, -amount)
}

func (c *Camera) MoveRight(amount float32) {
	c.translate(c.Right, amount)
}

func (c *Camera) MoveUp(amount float32) {
	c.translate(c.WorldUp, amount)
}

func (c *Camera) MoveDown(amount float32) {
	c.translate(c.WorldUp, -amount)
}
