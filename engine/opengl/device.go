package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/rtr/engine"
)

type meshbuffer struct {
	vao, vbo, ebo uint32
	count         int32
}

// Device draws into the default framebuffer of the current context.
// It caches raster state and the uploaded vertex buffers per geometry.
type Device struct {
	width, height int

	state      engine.RasterState
	stateValid bool

	currentGeometry *engine.Geometry
	buffers         map[*engine.Geometry]*meshbuffer
}

// NewDevice must be called after gl.Init on the context's thread.
func NewDevice(width, height int) *Device {
	d := &Device{
		buffers: make(map[*engine.Geometry]*meshbuffer),
	}

	gl.ClearDepth(1)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)

	d.SetViewport(width, height)
	d.SetRasterState(engine.OpaquePass)
	return d
}

func (d *Device) SetViewport(w, h int) {
	if h < 1 {
		h = 1
	}
	if w < 1 {
		w = 1
	}

	d.width, d.height = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (d *Device) Viewport() (int, int) {
	return d.width, d.height
}

func (d *Device) Clear(c mgl32.Vec3) {
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) RasterState() engine.RasterState {
	return d.state
}

func (d *Device) SetRasterState(s engine.RasterState) {
	if d.stateValid && d.state == s {
		return
	}

	enable(gl.DEPTH_TEST, s.DepthTest)
	gl.DepthFunc(depthFunc(s.DepthFunc))

	enable(gl.BLEND, s.Blend)
	gl.BlendFunc(blendFactor(s.BlendSrc), blendFactor(s.BlendDst))

	enable(gl.CULL_FACE, s.CullFace)

	d.state = s
	d.stateValid = true
}

func enable(cap uint32, on bool) {
	if on {
		gl.Enable(cap)
	} else {
		gl.Disable(cap)
	}
}

func depthFunc(f engine.DepthFunc) uint32 {
	switch f {
	case engine.DepthLessEqual:
		return gl.LEQUAL
	case engine.DepthEqual:
		return gl.EQUAL
	case engine.DepthAlways:
		return gl.ALWAYS
	}
	return gl.LESS
}

func blendFactor(b engine.BlendFactor) uint32 {
	switch b {
	case engine.BlendZero:
		return gl.ZERO
	case engine.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case engine.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	}
	return gl.ONE
}

func (d *Device) Draw(g *engine.Geometry) {
	mb, ok := d.buffers[g]
	if !ok {
		mb = upload(g)
		d.buffers[g] = mb
	}

	if d.currentGeometry != g {
		gl.BindVertexArray(mb.vao)
		d.currentGeometry = g
	}

	gl.DrawElements(gl.TRIANGLES, mb.count, gl.UNSIGNED_INT, nil)
}

func upload(g *engine.Geometry) *meshbuffer {
	mb := &meshbuffer{}

	gl.GenVertexArrays(1, &mb.vao)
	gl.BindVertexArray(mb.vao)

	data := g.Interleaved()
	gl.GenBuffers(1, &mb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}

	stride := int32(engine.VertexStride * 4)
	attributes := []struct {
		size   int32
		offset uintptr
	}{
		{3, 0},     // vertexPosition
		{3, 3 * 4}, // vertexNormal
		{2, 6 * 4}, // vertexUV
		{3, 8 * 4}, // vertexColor
	}
	for i, a := range attributes {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, gl.FLOAT, false, stride, a.offset)
	}

	idx := g.FaceIndices()
	gl.GenBuffers(1, &mb.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.ebo)
	if len(idx) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*4, gl.Ptr(idx), gl.STATIC_DRAW)
	}
	mb.count = int32(len(idx))

	gl.BindVertexArray(0)

	engine.Logger().Debug("uploaded geometry", "vertices", g.VerticesCount(), "indices", len(idx))
	return mb
}

// Release frees the buffers uploaded for g.
func (d *Device) Release(g *engine.Geometry) {
	mb, ok := d.buffers[g]
	if !ok {
		return
	}

	gl.DeleteVertexArrays(1, &mb.vao)
	gl.DeleteBuffers(1, &mb.vbo)
	gl.DeleteBuffers(1, &mb.ebo)
	delete(d.buffers, g)

	if d.currentGeometry == g {
		d.currentGeometry = nil
	}
}

func (d *Device) Dispose() {
	for g := range d.buffers {
		d.Release(g)
	}
}
