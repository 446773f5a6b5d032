// Package scene is the software renderer: it turns the current motion
// state into a finished frame image. It owns no pacing and no state of
// its own; the frame loop calls Render once per iteration.
package scene

import (
	"fmt"
	"image"
	"sort"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/joy"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/motion"
)

// Landmark cube, same placement as the reference scene.
const (
	cubeX     = 0.0
	cubeY     = 0.0
	cubeZ     = 8.0
	cubeScale = 2.2

	gridExtent = 50
	gridStep   = 2

	// Depth shading bounds: faces fade with distance but never go black.
	shadeRange = 50.0
	shadeFloor = 0.4
)

// Renderer projects and rasterizes the scene at a fixed resolution.
type Renderer struct {
	width  int
	height int
	fov    float64
}

func NewRenderer(width, height int, fov float64) *Renderer {
	return &Renderer{width: width, height: height, fov: fov}
}

// Frame is everything one rendered frame depends on. The renderer reads
// it; nothing here is written back.
type Frame struct {
	State   motion.State
	Camera  motion.Camera
	Control motion.Control

	CubeAngle float64 // landmark cube spin, degrees

	Connected bool
	Port      string

	LastSample joy.Sample
	HaveSample bool
}

// Render draws the ground grid, the landmark cube and the HUD into a new
// image.
func (r *Renderer) Render(f Frame) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	fill(img, background)

	r.drawGrid(img, f.Camera)
	r.drawCube(img, f)
	r.drawHUD(img, f)

	return img
}

func (r *Renderer) drawGrid(img *image.NRGBA, cam motion.Camera) {
	for g := -gridExtent; g <= gridExtent; g += gridStep {
		// Lines running along Z, then along X.
		r.drawWorldLine(img, float64(g), 0, -gridExtent, float64(g), 0, gridExtent, cam)
		r.drawWorldLine(img, -gridExtent, 0, float64(g), gridExtent, 0, float64(g), cam)
	}
}

func (r *Renderer) drawWorldLine(img *image.NRGBA, x0, y0, z0, x1, y1, z1 float64, cam motion.Camera) {
	a, ok := r.project(x0, y0, z0, cam)
	if !ok {
		return
	}
	b, ok := r.project(x1, y1, z1, cam)
	if !ok {
		return
	}
	drawLine(img, a.X, a.Y, b.X, b.Y, gridColor)
}

func (r *Renderer) drawCube(img *image.NRGBA, f Frame) {
	// Scale, spin and place the eight vertices in world space.
	var world [8][3]float64
	for i, v := range cubeVerts {
		x, y, z := rotateY(v[0]*cubeScale, v[1]*cubeScale, v[2]*cubeScale, f.CubeAngle)
		world[i] = [3]float64{x + cubeX, y + cubeY, z + cubeZ}
	}

	type faceDraw struct {
		depth float64
		face  int
		pts   []image.Point
	}
	var faces []faceDraw

	for fi, face := range cubeFaces {
		pts := make([]image.Point, 0, 4)
		depth := 0.0
		visible := true
		for _, vi := range face {
			p, ok := r.project(world[vi][0], world[vi][1], world[vi][2], f.Camera)
			if !ok {
				visible = false
				break
			}
			pts = append(pts, image.Point{p.X, p.Y})
			depth += p.Depth
		}
		if !visible {
			continue
		}
		faces = append(faces, faceDraw{depth: depth / 4, face: fi, pts: pts})
	}

	// Painter's algorithm: far faces first.
	sort.Slice(faces, func(i, j int) bool { return faces[i].depth > faces[j].depth })

	for _, fd := range faces {
		shade := 1.0 - fd.depth/shadeRange
		if shade < shadeFloor {
			shade = shadeFloor
		}
		if shade > 1 {
			shade = 1
		}
		c := faceColors[fd.face]
		c.R = uint8(float64(c.R) * shade)
		c.G = uint8(float64(c.G) * shade)
		c.B = uint8(float64(c.B) * shade)

		fillConvexPoly(img, fd.pts, c)
		drawOutline(img, fd.pts, edgeColor)
	}
}

func (r *Renderer) drawHUD(img *image.NRGBA, f Frame) {
	if f.Connected {
		drawText(img, 12, 20, hudOK, "Joystick connected ("+f.Port+")")
	} else {
		drawText(img, 12, 20, hudWarn, "Keyboard mode")
	}

	drawText(img, 12, 40, hudText, fmt.Sprintf(
		"Pos: (%.1f, %.1f, %.1f)  Yaw: %.1f",
		f.State.Pos.X, f.State.Pos.Y, f.State.Pos.Z, f.State.Yaw))

	drawText(img, 12, 56, hudText, fmt.Sprintf(
		"Forward: %.2f  Turn: %.2f", f.Control.Forward, f.Control.Turn))

	if f.HaveSample {
		drawText(img, 12, 72, hudDim, fmt.Sprintf(
			"Joystick: X=%d  Y=%d", f.LastSample.X, f.LastSample.Y))
	}
}
