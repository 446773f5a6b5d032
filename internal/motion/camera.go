package motion

import "math"

// Camera is the follow camera derived from the player state.
type Camera struct {
	Pos Vec3    `json:"pos"`
	Yaw float64 `json:"yaw"`
}

// FollowCamera places the camera behind the player along its facing
// vector at the given distance, raised by height. Recomputed every frame
// from the state alone; there is no smoothing.
func FollowCamera(st State, distance, height float64) Camera {
	yawRad := st.Yaw * math.Pi / 180.0
	return Camera{
		Pos: Vec3{
			X: st.Pos.X - math.Sin(yawRad)*distance,
			Y: st.Pos.Y + height,
			Z: st.Pos.Z - math.Cos(yawRad)*distance,
		},
		Yaw: st.Yaw,
	}
}
