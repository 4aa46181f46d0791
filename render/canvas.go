package render

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = &canvas{}

// canvas is an image.RGBA that tinyfont and tinydraw can draw on. It
// implements the drivers.Displayer interface.
type canvas struct {
	img *image.RGBA
}

func newCanvas(width, height int, background color.RGBA) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = background.R
		img.Pix[i+1] = background.G
		img.Pix[i+2] = background.B
		img.Pix[i+3] = background.A
	}
	return &canvas{img: img}
}

// Size implements the Displayer interface.
func (c *canvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel implements the Displayer interface. Pixels out of bounds are
// ignored.
func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	c.set(int(x), int(y), col)
}

// Display implements the Displayer interface. The canvas has nothing to
// flush.
func (c *canvas) Display() error {
	return nil
}

func (c *canvas) set(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(c.img.Bounds()) {
		return
	}
	c.img.SetRGBA(x, y, col)
}
