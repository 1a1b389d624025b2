package systems

import (
	"errors"

	"github.com/spaghettifunk/softraster/engine/assets"
	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/renderer"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/spaghettifunk/softraster/engine/renderer/software"
)

const (
	maxTextureCount  uint32 = 256
	maxGeometryCount uint32 = 1024
	jobsPerWorker           = 16
)

/**
 * @brief Owns the engine systems and the renderer, and wires them together:
 * the job system doubles as the renderer dispatcher and as the texture loader.
 */
type SystemManager struct {
	JobSystem      *JobSystem
	TextureSystem  *TextureSystem
	GeometrySystem *GeometrySystem
	RendererSystem *renderer.Renderer

	appName string
	width   uint32
	height  uint32
}

// NewSystemManager creates the systems. With fewer than two workers no job
// system is started: the renderer draws on the calling goroutine and textures
// load synchronously. am may be nil.
func NewSystemManager(appName string, width, height uint32, workers int, am *assets.AssetManager) (*SystemManager, error) {
	var js *JobSystem
	var dispatcher software.Dispatcher
	if workers > 1 {
		var err error
		js, err = NewJobSystem(workers, workers*jobsPerWorker)
		if err != nil {
			return nil, err
		}
		dispatcher = js
	}

	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: maxTextureCount}, js, am)
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: maxGeometryCount})
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		JobSystem:      js,
		TextureSystem:  ts,
		GeometrySystem: gs,
		RendererSystem: renderer.New(software.NewBackend(dispatcher)),
		appName:        appName,
		width:          width,
		height:         height,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	if err := sm.RendererSystem.Initialize(sm.appName, sm.width, sm.height); err != nil {
		return err
	}
	if sm.RendererSystem.IsMultithreaded() {
		core.LogInfo("renderer dispatching faces on %d workers", sm.JobSystem.Workers())
	}
	return nil
}

// DrawFrame applies finished texture loads, then renders the packet.
func (sm *SystemManager) DrawFrame(packet *metadata.RenderPacket) error {
	sm.TextureSystem.Update()
	return sm.RendererSystem.DrawFrame(packet)
}

func (sm *SystemManager) OnResize(width, height uint32) error {
	sm.width, sm.height = width, height
	return sm.RendererSystem.OnResized(width, height)
}

func (sm *SystemManager) Shutdown() error {
	var errs []error
	if err := sm.TextureSystem.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	sm.GeometrySystem.Shutdown()
	if err := sm.RendererSystem.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if sm.JobSystem != nil {
		if err := sm.JobSystem.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
