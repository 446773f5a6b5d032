package motion

import (
	"math"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/joy"
)

// Control is the normalized control signal derived from one raw sample,
// independent of the device's numeric range. Both components are in [-1, 1]
// before sensitivity scaling.
type Control struct {
	Forward float64 `json:"forward"`
	Turn    float64 `json:"turn"`
}

// Vec3 is a world-space position. Y is up, the ground plane is XZ.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// State is the rendered entity: position plus heading in degrees.
// It has exactly one writer per frame (Integrate) and is read-only
// to the renderer.
type State struct {
	Pos Vec3    `json:"pos"`
	Yaw float64 `json:"yaw"`
}

// Params holds the tuning values for sample normalization and
// state integration. Passed explicitly; no package globals.
type Params struct {
	AxisMin  float64
	AxisMax  float64
	Deadzone float64

	MoveSensitivity float64
	TurnSensitivity float64

	ForwardSpeed float64 // world units per second
	RotSpeed     float64 // degrees per second

	MaxDT float64 // dt clamp, guards against stalls
}

// Normalize maps a raw axis value onto [-1, 1]. The value is centered on
// the midpoint of [min, max]; anything within the deadzone (inclusive) is
// exactly zero, and the remainder of the range is rescaled linearly so the
// response is continuous at the deadzone edge:
//
//	out = sign(v-c) * (|v-c| - deadzone) / (half - deadzone)
//
// clamped to [-1, 1] at the extremes.
func Normalize(v, min, max, deadzone float64) float64 {
	center := (min + max) / 2
	half := (max - min) / 2
	if half <= deadzone {
		return 0
	}

	c := v - center
	mag := math.Abs(c)
	if mag <= deadzone {
		return 0
	}

	out := (mag - deadzone) / (half - deadzone)
	if out > 1 {
		out = 1
	}
	if c < 0 {
		out = -out
	}
	return out
}

// ControlFrom converts a raw sample into a control vector. The Y axis is
// inverted so pushing the stick up drives forward, matching the wiring of
// the sticks this was built against.
func ControlFrom(s joy.Sample, p Params) Control {
	nx := Normalize(float64(s.X), p.AxisMin, p.AxisMax, p.Deadzone)
	ny := Normalize(float64(s.Y), p.AxisMin, p.AxisMax, p.Deadzone)

	return Control{
		Forward: -ny * p.MoveSensitivity,
		Turn:    nx * p.TurnSensitivity,
	}
}

// ClampDT bounds a frame delta so a stall (debugger pause, frame hitch)
// cannot teleport the entity on the next update.
func ClampDT(dt, max float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

// Integrate advances the state by one frame:
//
//	yaw += turn * rotSpeed * dt
//	pos += heading(yaw) * forward * forwardSpeed * dt
//
// with heading(yaw) = (sin yaw, 0, cos yaw). Pure function; dt is clamped
// to p.MaxDT before use.
func Integrate(st State, c Control, dt float64, p Params) State {
	dt = ClampDT(dt, p.MaxDT)

	st.Yaw += c.Turn * p.RotSpeed * dt

	if math.Abs(c.Forward) > 1e-3 {
		yawRad := st.Yaw * math.Pi / 180.0
		step := c.Forward * p.ForwardSpeed * dt
		st.Pos.X += math.Sin(yawRad) * step
		st.Pos.Z += math.Cos(yawRad) * step
	}
	return st
}
