package engine

import "github.com/go-gl/mathgl/mgl32"

// Device is the drawing surface the scene renders into.
// All methods must be called from the thread owning the context.
type Device interface {
	// Viewport returns the current framebuffer size.
	Viewport() (width, height int)

	// Clear clears color and depth buffers.
	Clear(color mgl32.Vec3)

	SetRasterState(s RasterState)
	RasterState() RasterState

	// Draw draws the triangles of g with the currently bound program.
	Draw(g *Geometry)
}
