package platform

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
)

const defaultFrameRate = 60.0

var ErrNoFrames = errors.New("headless run needs at least one frame")

type HeadlessConfig struct {
	// Number of frames to render.
	Frames int
	// Directory the frames are written to as PNG. Empty renders without writing.
	OutputDir string
	// Fixed simulation rate, frames per second.
	FrameRate float64
	// Where the progress bar is drawn. Defaults to stderr.
	Progress io.Writer
}

// Headless renders a fixed number of frames with a fixed time step and no window.
type Headless struct {
	config HeadlessConfig
	quit   atomic.Bool
}

func NewHeadless(config HeadlessConfig) *Headless {
	if config.FrameRate <= 0 {
		config.FrameRate = defaultFrameRate
	}
	if config.Progress == nil {
		config.Progress = os.Stderr
	}
	return &Headless{config: config}
}

func (h *Headless) RequestQuit() {
	h.quit.Store(true)
}

func (h *Headless) Run(app Application) error {
	if h.config.Frames <= 0 {
		return ErrNoFrames
	}
	if h.config.OutputDir != "" {
		if err := os.MkdirAll(h.config.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	bar := progressbar.NewOptions(h.config.Frames,
		progressbar.OptionSetWriter(h.config.Progress),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Close()

	dt := 1.0 / h.config.FrameRate
	var rgba *image.RGBA
	for i := 0; i < h.config.Frames; i++ {
		if h.quit.Load() {
			core.LogInfo("headless run stopped after %d frames", i)
			return nil
		}
		if err := app.Tick(dt); err != nil {
			if errors.Is(err, core.ErrQuitRequested) {
				return nil
			}
			return err
		}

		if h.config.OutputDir != "" {
			fb := app.FrameBuffer()
			if rgba == nil || rgba.Bounds().Dx() != fb.Width() || rgba.Bounds().Dy() != fb.Height() {
				rgba = image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
			}
			path := filepath.Join(h.config.OutputDir, fmt.Sprintf("frame_%04d.png", i))
			if err := writeFrame(path, fb, rgba); err != nil {
				return err
			}
		}
		_ = bar.Add(1)
	}
	return nil
}

func writeFrame(path string, fb *buffer.FrameBuffer, rgba *image.RGBA) error {
	if err := buffer.CopyToRGBA(fb, rgba); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, rgba); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
