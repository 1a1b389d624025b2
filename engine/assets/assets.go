package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/softraster/engine/assets/loaders"
	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

// changeBufferSize is how many change notifications are kept for a slow
// consumer before new ones are dropped.
const changeBufferSize = 64

var (
	ErrManagerClosed = errors.New("asset manager already closed")
	ErrAssetNotFound = errors.New("asset not found")
	ErrNoLoader      = errors.New("no loader registered for asset type")
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type ChangeKind uint8

const (
	AssetCreated ChangeKind = iota
	AssetModified
	AssetRemoved
)

// AssetChange reports a file of a known type that changed on disk.
type AssetChange struct {
	Name string
	Path string
	Type metadata.ResourceType
	Kind ChangeKind
}

/**
 * @brief Indexes an assets directory, watches it for changes and loads files
 * through the loader registered for their type.
 */
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	started  bool
	isClosed bool
	changes  chan AssetChange
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan AssetChange, changeBufferSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeTexture, &loaders.TextureLoader{})
	return am, nil
}

// Initialize indexes assetsDir and starts watching it and its sub-directories.
func (am *AssetManager) Initialize(assetsDir string) error {
	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}
	am.mutex.Lock()
	am.started = true
	am.mutex.Unlock()
	go am.start()
	core.LogInfo("asset manager watching %s (%d assets)", assetsDir, am.Count())
	return nil
}

// Changes delivers a notification for every created, modified or removed
// asset.
func (am *AssetManager) Changes() <-chan AssetChange {
	return am.changes
}

// Count returns the number of indexed assets.
func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return ErrManagerClosed
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Resolve finds an indexed asset by path or by file name without extension.
func (am *AssetManager) Resolve(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	if asset, ok := am.assets[filepath.Clean(name)]; ok {
		return asset, true
	}
	for _, asset := range am.assets {
		if assetName(asset.Path) == name {
			return asset, true
		}
	}
	return AssetInfo{}, false
}

/**
 * @brief Loads an asset using the loader registered for resourceType.
 * @param name The asset path or its file name without extension.
 * @param resourceType What to turn the file into.
 * @param params Loader specific parameters, may be nil.
 */
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	asset, exists := am.Resolve(name)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}

	am.mutex.Lock()
	asset.LastLoaded = time.Now()
	am.assets[asset.Path] = asset
	loader, loaderExists := am.loaders[resourceType]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, resourceType)
	}
	return loader.Load(asset.Path, resourceType, params)
}

func (am *AssetManager) UnloadAsset(res *metadata.Resource) error {
	am.mutex.RLock()
	loader, ok := am.loaders[res.Type]
	am.mutex.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoLoader, res.Type)
	}
	return loader.Unload(res)
}

// Shutdown stops watching and closes the change channel.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	started := am.started
	am.mutex.Unlock()

	if !started {
		close(am.changes)
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			close(am.changes)
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	path := filepath.Clean(e.Name)
	if s, err := os.Stat(path); err == nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(path); err != nil {
				core.LogWarn("failed to watch %s: %s", path, err)
			}
		}
		return
	}

	switch {
	case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// Can't stat a deleted directory, so just try to remove it from the watch list.
		_ = am.fsnotify.Remove(path)
		if info, ok := am.removeAsset(path); ok {
			am.notify(AssetChange{Name: assetName(path), Path: path, Type: info.Type, Kind: AssetRemoved})
		}
	case e.Op&(fsnotify.Create|fsnotify.Write) != 0:
		kind := AssetModified
		if e.Op&fsnotify.Create != 0 {
			kind = AssetCreated
		}
		if assetType := am.handleFileEvent(path); assetType != metadata.ResourceTypeNone {
			am.notify(AssetChange{Name: assetName(path), Path: path, Type: assetType, Kind: kind})
		}
	}
}

func (am *AssetManager) notify(change AssetChange) {
	select {
	case am.changes <- change:
	default:
		core.LogWarn("asset change queue full, dropping %s", change.Path)
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files it finds.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(filepath.Clean(walkPath))
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) metadata.ResourceType {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) (AssetInfo, bool) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	info, ok := am.assets[path]
	delete(am.assets, path)
	return info, ok
}

func assetName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".tga":
		return metadata.ResourceTypeImage
	case ".toml":
		return metadata.ResourceTypeConfig
	default:
		return metadata.ResourceTypeNone
	}
}
