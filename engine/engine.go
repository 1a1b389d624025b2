package engine

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/softraster/engine/assets"
	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/platform"
	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/spaghettifunk/softraster/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every system
	EngineStageShutdown
)

const hudMargin = 8

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isSuspended   bool
	showHUD       bool
	quit          atomic.Bool
	presenterMu   sync.Mutex
	presenter     platform.Presenter
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	events        *core.EventBus
	input         *core.InputState
	metrics       *core.Metrics
	width         uint32
	height        uint32
	clock         *core.Clock
	shutdownOnce  sync.Once
	shutdownErr   error
}

func New(g *Game) (*Engine, error) {
	config := g.ApplicationConfig
	if config == nil {
		config = DefaultApplicationConfig()
		g.ApplicationConfig = config
	}
	config.applyDefaults()

	if err := core.SetLogLevel(config.LogLevel); err != nil {
		core.LogWarn("unknown log level '%s': %s", config.LogLevel, err)
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(config.Name, config.StartWidth, config.StartHeight, config.Workers, am)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	events := core.NewEventBus()
	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		showHUD:       config.ShowHUD,
		assetManager:  am,
		systemManager: sm,
		events:        events,
		input:         core.NewInputState(events),
		metrics:       core.NewMetrics(),
		width:         config.StartWidth,
		height:        config.StartHeight,
		clock:         core.NewClock(),
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine initialize: %w", core.ErrAlreadyRunning)
	}
	e.currentStage = EngineStageInitializing

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	config := e.gameInstance.ApplicationConfig
	if info, err := os.Stat(config.AssetsDir); err == nil && info.IsDir() {
		if err := e.assetManager.Initialize(config.AssetsDir); err != nil {
			return err
		}
	} else {
		core.LogWarn("assets directory '%s' not available, only built-in resources can be used", config.AssetsDir)
	}

	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	e.gameInstance.SystemManager = e.systemManager
	e.gameInstance.Input = e.input
	e.gameInstance.Events = e.events

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}
	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run opens a window, or renders headless when the configuration asks for
// it, and blocks until the application quits.
func (e *Engine) Run() error {
	config := e.gameInstance.ApplicationConfig
	if config.Headless.Enabled {
		return e.RunHeadless()
	}
	return e.run(platform.NewWindow(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight, e.input))
}

// RunHeadless renders the configured number of frames without a window.
func (e *Engine) RunHeadless() error {
	h := e.gameInstance.ApplicationConfig.Headless
	return e.run(platform.NewHeadless(platform.HeadlessConfig{
		Frames:    h.Frames,
		OutputDir: h.OutputDir,
		FrameRate: h.FrameRate,
	}))
}

func (e *Engine) run(p platform.Presenter) error {
	if e.currentStage != EngineStageInitialized {
		if e.currentStage == EngineStageRunning {
			return core.ErrAlreadyRunning
		}
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning
	e.presenterMu.Lock()
	e.presenter = p
	e.presenterMu.Unlock()
	e.clock.Start()

	err := p.Run(e)
	e.clock.Stop()
	core.LogInfo("rendered %d frames", e.metrics.TotalFrames())
	return err
}

// RequestQuit stops the frame loop at the next frame. Safe to call from any
// goroutine.
func (e *Engine) RequestQuit() {
	e.quit.Store(true)
	e.presenterMu.Lock()
	defer e.presenterMu.Unlock()
	if e.presenter != nil {
		e.presenter.RequestQuit()
	}
}

/**
 * @brief Runs one frame: game update, packet building, drawing, HUD and
 * input bookkeeping. Called by the presenter.
 * @param deltaTime The seconds since the previous frame.
 */
func (e *Engine) Tick(deltaTime float64) error {
	if e.quit.Load() {
		return core.ErrQuitRequested
	}
	if e.isSuspended {
		e.input.Update()
		return nil
	}

	frameStartTime := platform.GetAbsoluteTime()
	e.clock.Update()

	if err := e.gameInstance.FnUpdate(deltaTime); err != nil {
		core.LogError("Game update failed, shutting down.")
		return err
	}

	config := e.gameInstance.ApplicationConfig
	c := config.ClearColor
	packet := &metadata.RenderPacket{
		DeltaTime:  deltaTime,
		ClearColor: math.NewVec4(c[0], c[1], c[2], c[3]),
		ClearDepth: 1.0,
	}

	// Call the game's render routine.
	if err := e.gameInstance.FnRender(packet, deltaTime); err != nil {
		core.LogError("Game render failed, shutting down.")
		return err
	}

	if err := e.systemManager.DrawFrame(packet); err != nil {
		core.LogError("frame %d: %s", e.metrics.TotalFrames(), err)
	}

	e.metrics.Update(platform.GetAbsoluteTime() - frameStartTime)

	if e.showHUD {
		e.drawHUD()
	}

	// NOTE: Input update/state copying should always be handled
	// after any input should be recorded; I.E. before this line.
	e.input.Update()
	return nil
}

func (e *Engine) drawHUD() {
	fb := e.FrameBuffer()
	if fb == nil {
		return
	}
	config := e.gameInstance.ApplicationConfig
	lines := []string{
		fmt.Sprintf("FPS: %.0f (%.2f ms)", e.metrics.FPS(), e.metrics.FrameTime()),
		fmt.Sprintf("%dx%d  workers: %d", fb.Width(), fb.Height(), config.Workers),
	}
	if config.Scene != "" {
		lines = append(lines, "scene: "+config.Scene)
	}
	if err := platform.DrawText(fb, hudMargin, hudMargin, color.White, lines...); err != nil {
		core.LogError(err.Error())
	}
}

func (e *Engine) FrameBuffer() *buffer.FrameBuffer {
	return e.systemManager.RendererSystem.FrameBuffer()
}

// OnResized is called by the presenter when the output size changes.
func (e *Engine) OnResized(width, height uint32) {
	ctx := core.EventContext{}
	ctx.Data.U32[0] = width
	ctx.Data.U32[1] = height
	e.events.Fire(core.EVENT_CODE_RESIZED, e, ctx)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) Shutdown() error {
	e.shutdownOnce.Do(func() {
		e.currentStage = EngineStageShuttingDown
		var errs []error
		if e.gameInstance.FnShutdown != nil {
			if err := e.gameInstance.FnShutdown(); err != nil {
				errs = append(errs, err)
			}
		}
		if err := e.assetManager.Shutdown(); err != nil {
			errs = append(errs, err)
		}
		if err := e.systemManager.Shutdown(); err != nil {
			errs = append(errs, err)
		}
		e.currentStage = EngineStageShutdown
		e.shutdownErr = errors.Join(errs...)
	})
	return e.shutdownErr
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.RequestQuit()
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	keyCode := core.KeyCode(context.Data.U16[0])
	switch keyCode {
	case core.KEY_ESCAPE:
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
		// Block anything else from processing this.
		return true
	case core.KEY_H:
		e.showHUD = !e.showHUD
		return false
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	width := context.Data.U32[0]
	height := context.Data.U32[1]

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if err := e.systemManager.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	return true
}
