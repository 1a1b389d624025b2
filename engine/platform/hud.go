package platform

import (
	"image"
	"image/color"

	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawText writes lines of text onto fb with their top-left corner at (x, y).
func DrawText(fb *buffer.FrameBuffer, x, y int, c color.Color, lines ...string) error {
	img, err := buffer.NewImage(fb)
	if err != nil {
		return err
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(x, y+face.Ascent+i*face.Height)
		d.DrawString(line)
	}
	return nil
}

// TextHeight is the pixel height of n lines drawn by DrawText.
func TextHeight(n int) int {
	return n * basicfont.Face7x13.Height
}
