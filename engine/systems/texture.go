package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/softraster/engine/assets"
	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

const (
	/** @brief The default diffuse texture name. */
	DEFAULT_DIFFUSE_TEXTURE_NAME string = "default_diffuse"

	defaultTextureSize     = 256
	defaultTextureCellSize = 32
)

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

type textureReference struct {
	texture        *metadata.Texture
	referenceCount uint64
	autoRelease    bool
}

type loadedTexture struct {
	target *metadata.Texture
	loaded *metadata.Texture
}

/**
 * @brief Hands out textures by name. A texture that is not loaded yet is
 * returned right away with placeholder pixels while the file is decoded on
 * the job system; Update swaps the decoded pixels in. Files changed on disk
 * are reloaded the same way.
 */
type TextureSystem struct {
	Config                *TextureSystemConfig
	DefaultTexture        *metadata.Texture
	DefaultDiffuseTexture *metadata.Texture

	mu         sync.Mutex
	registered map[string]*textureReference
	pending    []loadedTexture
	inFlight   sync.WaitGroup

	// sub systems
	jobSystem    *JobSystem
	assetManager *assets.AssetManager
}

// NewTextureSystem creates the default textures. js and am may be nil; then
// textures load synchronously or not at all.
func NewTextureSystem(config *TextureSystemConfig, js *JobSystem, am *assets.AssetManager) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}

	white := math.NewVec4One()
	def, err := metadata.NewCheckerboardTexture(metadata.DEFAULT_TEXTURE_NAME, defaultTextureSize, defaultTextureCellSize, white, math.NewVec4(0, 0, 1, 1))
	if err != nil {
		return nil, err
	}
	diffuse, err := metadata.NewCheckerboardTexture(DEFAULT_DIFFUSE_TEXTURE_NAME, 16, 16, white, white)
	if err != nil {
		return nil, err
	}

	return &TextureSystem{
		Config:                config,
		DefaultTexture:        def,
		DefaultDiffuseTexture: diffuse,
		registered:            make(map[string]*textureReference),
		jobSystem:             js,
		assetManager:          am,
	}, nil
}

/**
 * @brief Acquires the texture with the given name, loading it through the
 * asset manager the first time.
 * @param name The texture name, the file name without extension.
 * @param autoRelease Indicates if the texture is dropped when its reference count reaches 0.
 */
func (ts *TextureSystem) Acquire(name string, autoRelease bool) (*metadata.Texture, error) {
	if name == metadata.DEFAULT_TEXTURE_NAME {
		core.LogWarn("func texture system Acquire called for default texture. Use GetDefaultTexture for texture 'default'")
		return ts.DefaultTexture, nil
	}

	ts.mu.Lock()
	if ref, ok := ts.registered[name]; ok {
		ref.referenceCount++
		ts.mu.Unlock()
		return ref.texture, nil
	}
	if uint32(len(ts.registered)) >= ts.Config.MaxTextureCount {
		ts.mu.Unlock()
		err := fmt.Errorf("texture system cannot hold more than %d textures", ts.Config.MaxTextureCount)
		core.LogError(err.Error())
		return nil, err
	}

	placeholder, err := metadata.NewTextureFromPixels(name, ts.DefaultTexture.Width, ts.DefaultTexture.Height,
		ts.DefaultTexture.ChannelCount, append([]uint8(nil), ts.DefaultTexture.Data...))
	if err != nil {
		ts.mu.Unlock()
		return nil, err
	}
	placeholder.ID = uint32(len(ts.registered))
	placeholder.Flags |= metadata.TextureFlagIsGenerated
	ts.registered[name] = &textureReference{
		texture:        placeholder,
		referenceCount: 1,
		autoRelease:    autoRelease,
	}
	ts.mu.Unlock()

	ts.load(name, placeholder)
	return placeholder, nil
}

// Get returns a registered texture without touching its reference count.
func (ts *TextureSystem) Get(name string) (*metadata.Texture, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ref, ok := ts.registered[name]
	if !ok {
		return nil, false
	}
	return ref.texture, true
}

func (ts *TextureSystem) Release(name string) {
	// Ignore release requests for the default texture.
	if name == metadata.DEFAULT_TEXTURE_NAME {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ref, ok := ts.registered[name]
	if !ok {
		core.LogWarn("texture_system_release cannot release unknown texture '%s'", name)
		return
	}
	if ref.referenceCount > 0 {
		ref.referenceCount--
	}
	if ref.referenceCount == 0 && ref.autoRelease {
		delete(ts.registered, name)
		core.LogDebug("texture '%s' released", name)
	}
}

func (ts *TextureSystem) GetDefaultTexture() *metadata.Texture {
	return ts.DefaultTexture
}

func (ts *TextureSystem) GetDefaultDiffuseTexture() *metadata.Texture {
	return ts.DefaultDiffuseTexture
}

func (ts *TextureSystem) load(name string, target *metadata.Texture) {
	if ts.assetManager == nil {
		return
	}

	var loaded *metadata.Texture
	run := func() error {
		res, err := ts.assetManager.LoadAsset(name, metadata.ResourceTypeTexture, &metadata.ImageResourceParams{FlipY: false})
		if err != nil {
			return fmt.Errorf("failed to load texture '%s': %w", name, err)
		}
		loaded = res.Data.(*metadata.Texture)
		return nil
	}
	complete := func() {
		ts.mu.Lock()
		ts.pending = append(ts.pending, loadedTexture{target: target, loaded: loaded})
		ts.mu.Unlock()
	}

	if ts.jobSystem == nil {
		if err := run(); err != nil {
			core.LogWarn(err.Error())
			return
		}
		complete()
		return
	}

	ts.inFlight.Add(1)
	err := ts.jobSystem.Submit(JobTask{
		Run: run,
		OnComplete: func() {
			defer ts.inFlight.Done()
			complete()
		},
		OnFailure: func(err error) {
			defer ts.inFlight.Done()
			core.LogWarn("keeping placeholder pixels for texture '%s'", name)
		},
	})
	if err != nil {
		ts.inFlight.Done()
		core.LogError("failed to schedule texture '%s': %s", name, err)
	}
}

/**
 * @brief Swaps in textures that finished loading and schedules reloads for
 * registered textures changed on disk. Must run while no draw reads the
 * textures, between frames.
 * @return The number of textures updated.
 */
func (ts *TextureSystem) Update() int {
	ts.pollChanges()

	ts.mu.Lock()
	pending := ts.pending
	ts.pending = nil
	ts.mu.Unlock()

	for _, p := range pending {
		p.target.Replace(p.loaded)
		core.LogDebug("texture '%s' updated to generation %d", p.target.Name, p.target.Generation)
	}
	return len(pending)
}

func (ts *TextureSystem) pollChanges() {
	if ts.assetManager == nil {
		return
	}
	for {
		select {
		case change, ok := <-ts.assetManager.Changes():
			if !ok {
				return
			}
			if change.Kind == assets.AssetRemoved || change.Type != metadata.ResourceTypeImage {
				continue
			}
			if tex, registered := ts.Get(change.Name); registered {
				core.LogInfo("reloading texture '%s'", change.Name)
				ts.load(change.Name, tex)
			}
		default:
			return
		}
	}
}

// Wait blocks until every scheduled load finished.
func (ts *TextureSystem) Wait() {
	ts.inFlight.Wait()
}

func (ts *TextureSystem) Shutdown() error {
	ts.Wait()
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.registered = make(map[string]*textureReference)
	ts.pending = nil
	return nil
}
