package scene

import (
	"math"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/motion"
)

// nearPlane culls points at or behind the camera before the perspective
// divide.
const nearPlane = 0.01

// rotateY rotates a point around the Y axis by yaw degrees.
func rotateY(x, y, z, yawDeg float64) (float64, float64, float64) {
	yaw := yawDeg * math.Pi / 180.0
	sin, cos := math.Sin(yaw), math.Cos(yaw)
	return x*cos - z*sin, y, x*sin + z*cos
}

// projected is a world point mapped onto the screen, keeping the camera
// space depth for sorting and shading.
type projected struct {
	X, Y  int
	Depth float64
}

// project transforms a world point into screen coordinates for the given
// camera: translate relative to the camera, undo the camera yaw so the
// view axis is +Z, then apply the perspective divide. ok is false for
// points the near plane culls.
func (r *Renderer) project(x, y, z float64, cam motion.Camera) (projected, bool) {
	rx := x - cam.Pos.X
	ry := y - cam.Pos.Y
	rz := z - cam.Pos.Z

	cx, cy, cz := rotateY(rx, ry, rz, cam.Yaw)
	if cz <= nearPlane {
		return projected{}, false
	}

	f := (float64(r.width) / 2) / math.Tan(r.fov*math.Pi/360.0)
	return projected{
		X:     int(cx*f/cz + float64(r.width)/2),
		Y:     int(-cy*f/cz + float64(r.height)/2),
		Depth: cz,
	}, true
}
