package scene

import "image/color"

// Unit cube centered on the origin; faces are convex quads into the
// vertex table.
var cubeVerts = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeFaces = [6][4]int{
	{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
	{2, 3, 7, 6}, {1, 2, 6, 5}, {0, 3, 7, 4},
}

var faceColors = [6]color.NRGBA{
	{150, 150, 160, 255}, {180, 160, 130, 255}, {120, 170, 190, 255},
	{200, 140, 140, 255}, {160, 200, 140, 255}, {160, 140, 200, 255},
}

var (
	background = color.NRGBA{18, 18, 24, 255}
	gridColor  = color.NRGBA{28, 28, 36, 255}
	edgeColor  = color.NRGBA{0, 0, 0, 255}

	hudOK   = color.NRGBA{100, 255, 100, 255}
	hudWarn = color.NRGBA{255, 100, 100, 255}
	hudText = color.NRGBA{230, 230, 230, 255}
	hudDim  = color.NRGBA{150, 200, 255, 255}
)
