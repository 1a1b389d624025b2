//go:build cgo && !headless

package platform

import (
	"errors"
	"image"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
)

var buttonMap = [...]struct {
	button core.Button
	mouse  ebiten.MouseButton
}{
	{core.BUTTON_LEFT, ebiten.MouseButtonLeft},
	{core.BUTTON_RIGHT, ebiten.MouseButtonRight},
	{core.BUTTON_MIDDLE, ebiten.MouseButtonMiddle},
}

var keyMap = [...]struct {
	code core.KeyCode
	key  ebiten.Key
}{
	{core.KEY_BACKSPACE, ebiten.KeyBackspace},
	{core.KEY_TAB, ebiten.KeyTab},
	{core.KEY_ENTER, ebiten.KeyEnter},
	{core.KEY_ESCAPE, ebiten.KeyEscape},
	{core.KEY_SPACE, ebiten.KeySpace},
	{core.KEY_LEFT, ebiten.KeyArrowLeft},
	{core.KEY_UP, ebiten.KeyArrowUp},
	{core.KEY_RIGHT, ebiten.KeyArrowRight},
	{core.KEY_DOWN, ebiten.KeyArrowDown},
	{core.KEY_0, ebiten.KeyDigit0},
	{core.KEY_1, ebiten.KeyDigit1},
	{core.KEY_2, ebiten.KeyDigit2},
	{core.KEY_3, ebiten.KeyDigit3},
	{core.KEY_4, ebiten.KeyDigit4},
	{core.KEY_5, ebiten.KeyDigit5},
	{core.KEY_6, ebiten.KeyDigit6},
	{core.KEY_7, ebiten.KeyDigit7},
	{core.KEY_8, ebiten.KeyDigit8},
	{core.KEY_9, ebiten.KeyDigit9},
	{core.KEY_A, ebiten.KeyA},
	{core.KEY_D, ebiten.KeyD},
	{core.KEY_H, ebiten.KeyH},
	{core.KEY_P, ebiten.KeyP},
	{core.KEY_R, ebiten.KeyR},
	{core.KEY_S, ebiten.KeyS},
	{core.KEY_W, ebiten.KeyW},
}

/**
 * @brief Presents frames in a desktop window. The application is ticked from
 * ebiten's update loop and the frame buffer is uploaded on draw.
 */
type Window struct {
	title  string
	x, y   int
	width  int
	height int
	input  *core.InputState

	app  Application
	rgba *image.RGBA
	last time.Time
	quit atomic.Bool
}

func NewWindow(title string, x, y, width, height uint32, input *core.InputState) *Window {
	return &Window{
		title:  title,
		x:      int(x),
		y:      int(y),
		width:  int(width),
		height: int(height),
		input:  input,
	}
}

func (w *Window) Run(app Application) error {
	w.app = app
	w.last = time.Now()

	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowPosition(w.x, w.y)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	core.LogInfo("opening window '%s' (%dx%d)", w.title, w.width, w.height)
	return ebiten.RunGame(&windowGame{w: w})
}

func (w *Window) RequestQuit() {
	w.quit.Store(true)
}

// Size returns the last size reported by the window system.
func (w *Window) Size() (uint32, uint32) {
	return uint32(w.width), uint32(w.height)
}

func (w *Window) pollInput() {
	if w.input == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	w.input.ProcessMouseMove(int32(x), int32(y))
	for _, b := range buttonMap {
		w.input.ProcessButton(b.button, ebiten.IsMouseButtonPressed(b.mouse))
	}
	_, wheel := ebiten.Wheel()
	w.input.ProcessMouseWheel(float32(wheel))
	for _, k := range keyMap {
		w.input.ProcessKey(k.code, ebiten.IsKeyPressed(k.key))
	}
}

type windowGame struct {
	w *Window
}

func (g *windowGame) Update() error {
	if g.w.quit.Load() {
		return ebiten.Termination
	}
	g.w.pollInput()

	now := time.Now()
	delta := now.Sub(g.w.last).Seconds()
	g.w.last = now

	if err := g.w.app.Tick(delta); err != nil {
		if errors.Is(err, core.ErrQuitRequested) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	fb := g.w.app.FrameBuffer()
	if fb == nil {
		return
	}
	// A resize is applied by the renderer on the next frame.
	b := screen.Bounds()
	if fb.Width() != b.Dx() || fb.Height() != b.Dy() {
		return
	}
	if g.w.rgba == nil || g.w.rgba.Bounds() != b {
		g.w.rgba = image.NewRGBA(b)
	}
	if err := buffer.CopyToRGBA(fb, g.w.rgba); err != nil {
		core.LogError(err.Error())
		return
	}
	screen.WritePixels(g.w.rgba.Pix)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		// minimized
		return g.w.width, g.w.height
	}
	if outsideWidth != g.w.width || outsideHeight != g.w.height {
		g.w.width, g.w.height = outsideWidth, outsideHeight
		g.w.app.OnResized(uint32(outsideWidth), uint32(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
