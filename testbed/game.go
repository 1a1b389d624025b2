package testbed

import (
	"fmt"

	"github.com/spaghettifunk/softraster/engine"
	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/components"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/spaghettifunk/softraster/engine/renderer/shaders"
)

const cameraMoveSpeed float32 = 2.0

var sceneKeys = [...]core.KeyCode{core.KEY_1, core.KEY_2, core.KEY_3, core.KEY_4, core.KEY_5, core.KEY_6}

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	width  uint32
	height uint32
	time   float64
	angle  float32

	current     *scene
	sceneConsts *shaders.SceneConstants
	objConsts   *shaders.ObjectConstants
}

func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	if config == nil {
		return nil, fmt.Errorf("testbed needs an application config")
	}
	if config.Scene == "" {
		config.Scene = SceneCube
	}

	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				sceneConsts: shaders.NewSceneConstants(),
				objConsts:   shaders.NewObjectConstants(math.NewMat4Identity()),
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	state := g.State.(*gameState)
	state.width = g.ApplicationConfig.StartWidth
	state.height = g.ApplicationConfig.StartHeight
	state.WorldCamera = components.NewCamera(float32(state.width) / float32(state.height))

	return g.LoadScene(g.ApplicationConfig.Scene)
}

// LoadScene replaces the scene on screen.
func (g *TestGame) LoadScene(name string) error {
	state := g.State.(*gameState)
	s, err := g.buildScene(name)
	if err != nil {
		core.LogError("failed to load scene '%s': %s", name, err)
		return err
	}
	g.releaseScene(state.current)
	state.current = s
	state.angle = 0
	state.WorldCamera.SetClipPlanes(s.clipPlanes())
	g.ApplicationConfig.Scene = name
	core.LogInfo("scene '%s' loaded", name)
	return nil
}

// CurrentScene returns the name of the scene on screen.
func (g *TestGame) CurrentScene() string {
	state := g.State.(*gameState)
	if state.current == nil {
		return ""
	}
	return state.current.name
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.time += deltaTime
	dt := float32(deltaTime)

	if state.current != nil {
		state.angle += state.current.spin * dt
	}

	input := g.Input
	if input == nil {
		return nil
	}

	for i, key := range sceneKeys {
		if input.KeyPressed(key) && i < len(SceneNames) && SceneNames[i] != g.CurrentScene() {
			if err := g.LoadScene(SceneNames[i]); err != nil {
				return err
			}
		}
	}

	camera := state.WorldCamera
	camera.Update(input.CameraDelta(state.width, state.height), input.WheelDelta())

	if input.IsKeyDown(core.KEY_W) || input.IsKeyDown(core.KEY_UP) {
		camera.MoveForward(cameraMoveSpeed * dt)
	}
	if input.IsKeyDown(core.KEY_S) || input.IsKeyDown(core.KEY_DOWN) {
		camera.MoveBackward(cameraMoveSpeed * dt)
	}
	if input.IsKeyDown(core.KEY_A) || input.IsKeyDown(core.KEY_LEFT) {
		camera.MoveLeft(cameraMoveSpeed * dt)
	}
	if input.IsKeyDown(core.KEY_D) || input.IsKeyDown(core.KEY_RIGHT) {
		camera.MoveRight(cameraMoveSpeed * dt)
	}
	if input.KeyPressed(core.KEY_R) && state.current != nil {
		camera.Reset()
		camera.SetAspect(float32(state.width) / float32(state.height))
		camera.SetClipPlanes(state.current.clipPlanes())
	}
	if input.KeyPressed(core.KEY_P) {
		pos := camera.GetPosition()
		core.LogDebug("Pos:[%.2f, %.2f, %.2f]", pos.X, pos.Y, pos.Z)
	}
	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)
	if state.current == nil {
		return nil
	}

	camera := state.WorldCamera
	sc := state.sceneConsts
	sc.View = camera.GetView()
	sc.Projection = camera.GetProjection()
	sc.ViewProjection = camera.GetViewProjection()
	sc.CameraPosition = camera.GetPosition()
	sc.Time = float32(state.time)
	sc.Resolution = math.NewVec2(float32(state.width), float32(state.height))
	if g.Input != nil {
		x, y := g.Input.MousePosition()
		sc.Mouse = math.NewVec2(float32(x), float32(y))
	}

	state.objConsts.Model = math.NewMat4EulerY(state.angle)

	data := metadata.GeometryRenderData{
		Geometry: state.current.geometry,
		Pipeline: state.current.pipeline,
	}
	shaders.Bind(&data.ConstantBuffers, sc, state.objConsts)
	packet.Geometries = append(packet.Geometries, data)
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	if width == 0 || height == 0 {
		return nil
	}
	state.width = width
	state.height = height
	if state.WorldCamera != nil {
		state.WorldCamera.SetAspect(float32(width) / float32(height))
	}
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	if g.SystemManager != nil {
		g.releaseScene(state.current)
	}
	state.current = nil
	return nil
}
