package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/rtr/engine"
)

type drawCall struct {
	geometry *engine.Geometry
	state    engine.RasterState
	program  string
	pass     int32
	light    mgl32.Vec3
	model    mgl32.Mat4
}

type fakeDevice struct {
	width, height int

	state  engine.RasterState
	bound  *fakeProgram
	clears []mgl32.Vec3
	draws  []drawCall
	states []engine.RasterState
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{width: 640, height: 480}
}

func (d *fakeDevice) Viewport() (int, int)            { return d.width, d.height }
func (d *fakeDevice) Clear(c mgl32.Vec3)              { d.clears = append(d.clears, c) }
func (d *fakeDevice) RasterState() engine.RasterState { return d.state }

func (d *fakeDevice) SetRasterState(s engine.RasterState) {
	d.state = s
	d.states = append(d.states, s)
}

func (d *fakeDevice) Draw(g *engine.Geometry) {
	c := drawCall{geometry: g, state: d.state}
	if p := d.bound; p != nil {
		c.program = p.name
		c.pass, _ = p.uniforms["lightPass"].(int32)
		c.light, _ = p.uniforms["light.position_WC"].(mgl32.Vec3)
		c.model, _ = p.uniforms["modelViewMatrix"].(mgl32.Mat4)
	}
	d.draws = append(d.draws, c)
}

func (d *fakeDevice) reset() {
	d.clears, d.draws, d.states = nil, nil, nil
}

type fakeProgram struct {
	name     string
	device   *fakeDevice
	uses     int
	deleted  bool
	uniforms map[string]interface{}
}

func newFakeProgram(name string, d *fakeDevice) *fakeProgram {
	return &fakeProgram{
		name:     name,
		device:   d,
		uniforms: make(map[string]interface{}),
	}
}

func (p *fakeProgram) Use() {
	p.uses++
	if p.device != nil {
		p.device.bound = p
	}
}

func (p *fakeProgram) SetInt(name string, v int32)       { p.uniforms[name] = v }
func (p *fakeProgram) SetFloat(name string, v float32)   { p.uniforms[name] = v }
func (p *fakeProgram) SetBool(name string, v bool)       { p.uniforms[name] = v }
func (p *fakeProgram) SetVec3(name string, v mgl32.Vec3) { p.uniforms[name] = v }
func (p *fakeProgram) SetMat3(name string, m mgl32.Mat3) { p.uniforms[name] = m }
func (p *fakeProgram) SetMat4(name string, m mgl32.Mat4) { p.uniforms[name] = m }
func (p *fakeProgram) Delete()                           { p.deleted = true }
