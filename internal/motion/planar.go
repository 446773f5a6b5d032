package motion

// PlanarState is the 2D variant of State: a point on the screen plane,
// no heading. Used by the flat square visualizer.
type PlanarState struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the rectangle a planar entity is confined to.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// IntegratePlanar advances a planar position by (dx, dy) * speed * dt and
// clamps the result to the bounds. dt is clamped to maxDT first.
func IntegratePlanar(st PlanarState, dx, dy, dt, speed, maxDT float64, b Bounds) PlanarState {
	dt = ClampDT(dt, maxDT)

	st.X += dx * speed * dt
	st.Y += dy * speed * dt

	if st.X < b.MinX {
		st.X = b.MinX
	}
	if st.X > b.MaxX {
		st.X = b.MaxX
	}
	if st.Y < b.MinY {
		st.Y = b.MinY
	}
	if st.Y > b.MaxY {
		st.Y = b.MaxY
	}
	return st
}
