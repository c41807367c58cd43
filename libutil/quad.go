package libutil

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Unit square in the xy plane, centered on the origin.
var UnitQuadPositions = []mgl32.Vec3{
	{0.5, 0.5, 0},   // top right
	{0.5, -0.5, 0},  // bottom right
	{-0.5, -0.5, 0}, // bottom left
	{-0.5, 0.5, 0},  // top left
}

var UnitQuadIndices = []uint32{
	0, 3, 1,
	1, 3, 2,
}

// Position (xyz) and uv of two triangles covering clip space.
var ScreenQuadVertices = []float32{
	-1, 1, 0, 0, 1, // top left
	-1, -1, 0, 0, 0, // bottom left
	1, 1, 0, 1, 1, // top right
	1, 1, 0, 1, 1, // top right
	-1, -1, 0, 0, 0, // bottom left
	1, -1, 0, 1, 0, // bottom right
}

const ScreenQuadStride = 5
