package scene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/motion"
)

// PadSquare is the side length of the 2D square in pixels. Exported so
// the pad loop can keep the square inside the screen bounds.
const PadSquare = 80

var (
	padBackground = color.NRGBA{200, 230, 255, 255}
	padIdle       = color.NRGBA{106, 13, 173, 255}
	padPressed    = color.NRGBA{0, 0, 255, 255}
	padShadow     = color.NRGBA{50, 50, 50, 255}
)

// PadFrame is the input for the flat 2D visualization: a square on a
// light background, moved directly by the stick, recolored while the
// stick button is held.
type PadFrame struct {
	State   motion.PlanarState
	Pressed bool

	Connected bool
	Port      string
}

// RenderPad draws the 2D square scene.
func (r *Renderer) RenderPad(f PadFrame) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	fill(img, padBackground)

	x := int(f.State.X)
	y := int(f.State.Y)
	half := PadSquare / 2

	fillColor := padIdle
	if f.Pressed {
		fillColor = padPressed
	}

	// Offset shadow behind the square, then the square and its border.
	drawRect(img, x-half+10, y-half+10, PadSquare, PadSquare, padShadow, 3)
	fillRect(img, x-half, y-half, PadSquare, PadSquare, fillColor)
	drawRect(img, x-half, y-half, PadSquare, PadSquare, edgeColor, 2)

	if f.Connected {
		drawText(img, 12, 20, edgeColor, "Joystick connected ("+f.Port+")")
	} else {
		drawText(img, 12, 20, edgeColor, "Keyboard mode")
	}
	drawText(img, 12, 40, edgeColor, fmt.Sprintf("Pos: (%.0f, %.0f)", f.State.X, f.State.Y))

	return img
}

func fillRect(img *image.NRGBA, x, y, w, h int, c color.NRGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			setPixel(img, xx, yy, c)
		}
	}
}

func drawRect(img *image.NRGBA, x, y, w, h int, c color.NRGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		drawLine(img, x+t, y+t, x+w-1-t, y+t, c)
		drawLine(img, x+w-1-t, y+t, x+w-1-t, y+h-1-t, c)
		drawLine(img, x+w-1-t, y+h-1-t, x+t, y+h-1-t, c)
		drawLine(img, x+t, y+h-1-t, x+t, y+t, c)
	}
}
