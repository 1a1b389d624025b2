package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/softraster/engine/core"
)

const (
	defaultName      = "Software Rasterizer"
	defaultWidth     = 1280
	defaultHeight    = 720
	defaultPosition  = 100
	defaultLogLevel  = "info"
	defaultAssetsDir = "assets"
	defaultOutputDir = "frames"
	defaultFrames    = 60
	defaultFrameRate = 60.0
)

type HeadlessConfig struct {
	// Render without a window and write the frames to OutputDir.
	Enabled   bool    `toml:"enabled"`
	Frames    int     `toml:"frames"`
	OutputDir string  `toml:"output_dir"`
	FrameRate float64 `toml:"frame_rate"`
}

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Scene the testbed starts with.
	Scene string `toml:"scene"`
	// Workers drawing faces in parallel. 0 uses one per CPU, 1 draws serially.
	Workers    int        `toml:"workers"`
	AssetsDir  string     `toml:"assets_dir"`
	ShowHUD    bool       `toml:"show_hud"`
	ClearColor [4]float32 `toml:"clear_color"`

	Headless HeadlessConfig `toml:"headless"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   defaultPosition,
		StartPosY:   defaultPosition,
		StartWidth:  defaultWidth,
		StartHeight: defaultHeight,
		Name:        defaultName,
		LogLevel:    defaultLogLevel,
		AssetsDir:   defaultAssetsDir,
		ShowHUD:     true,
		ClearColor:  [4]float32{0.1, 0.1, 0.12, 1},
		Headless: HeadlessConfig{
			Frames:    defaultFrames,
			OutputDir: defaultOutputDir,
			FrameRate: defaultFrameRate,
		},
	}
}

// LoadApplicationConfig reads a TOML file on top of the defaults. A missing
// file is not an error.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("config file %s not found, using defaults", path)
		config.applyDefaults()
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	config.applyDefaults()
	return config, nil
}

func (c *ApplicationConfig) applyDefaults() {
	if c.StartWidth == 0 {
		c.StartWidth = defaultWidth
	}
	if c.StartHeight == 0 {
		c.StartHeight = defaultHeight
	}
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Headless.Frames <= 0 {
		c.Headless.Frames = defaultFrames
	}
	if c.Headless.FrameRate <= 0 {
		c.Headless.FrameRate = defaultFrameRate
	}
}
