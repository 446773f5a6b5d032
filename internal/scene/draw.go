package scene

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func fill(img *image.NRGBA, c color.NRGBA) {
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
}

// drawLine draws a straight segment with integer stepping. Good enough for
// grid and edge lines; anti-aliasing is not worth it at this fidelity.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		setPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// fillConvexPoly scan-fills a convex polygon given in order.
func fillConvexPoly(img *image.NRGBA, pts []image.Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}

	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= img.Bounds().Dy() {
		maxY = img.Bounds().Dy() - 1
	}

	for y := minY; y <= maxY; y++ {
		minX, maxX, hit := scanEdges(pts, y)
		if !hit {
			continue
		}
		if minX < 0 {
			minX = 0
		}
		if maxX >= img.Bounds().Dx() {
			maxX = img.Bounds().Dx() - 1
		}
		for x := minX; x <= maxX; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// scanEdges finds the horizontal extent of a convex polygon on scanline y.
func scanEdges(pts []image.Point, y int) (int, int, bool) {
	minX, maxX := 0, 0
	hit := false
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		if a.Y == b.Y {
			if a.Y == y {
				minX, maxX, hit = spread(minX, maxX, hit, a.X, b.X)
			}
			continue
		}
		if (y < a.Y && y < b.Y) || (y > a.Y && y > b.Y) {
			continue
		}
		x := a.X + (y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		minX, maxX, hit = spread(minX, maxX, hit, x, x)
	}
	return minX, maxX, hit
}

func spread(minX, maxX int, hit bool, a, b int) (int, int, bool) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if !hit {
		return lo, hi, true
	}
	if lo < minX {
		minX = lo
	}
	if hi > maxX {
		maxX = hi
	}
	return minX, maxX, true
}

func drawOutline(img *image.NRGBA, pts []image.Point, c color.NRGBA) {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		drawLine(img, a.X, a.Y, b.X, b.Y, c)
	}
}

func drawText(img *image.NRGBA, x, y int, c color.NRGBA, text string) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{c},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if (image.Point{x, y}).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
