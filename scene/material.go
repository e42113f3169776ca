package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/rtr/engine"
)

type Kind int

const (
	KindPhong Kind = iota
	KindToon
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindPhong:
		return "phong"
	case KindToon:
		return "toon"
	case KindPoint:
		return "point"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Light holds the per light parameters a material renders a pass with.
// Position is in world coordinates.
type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

func DefaultLight() Light {
	return Light{
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1,
	}
}

type Material interface {
	Kind() Kind

	// AppliedShader names the shader program the material is drawn with.
	AppliedShader() string

	Program() engine.Program
	SetProgram(p engine.Program)

	// Apply binds the program and uploads the material uniforms and the
	// light of the given pass.
	Apply(pass int)

	Lights() []Light
	SetTime(t float32)

	Base() *PhongMaterial
}

/*
phong material
*/
type PhongMaterial struct {
	program engine.Program

	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32

	AmbientLight mgl32.Vec3

	lights []Light
	time   float32
}

func NewPhongMaterial(p engine.Program) *PhongMaterial {
	return &PhongMaterial{
		program: p,

		Ambient:   mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:   mgl32.Vec3{0.8, 0.8, 0.8},
		Specular:  mgl32.Vec3{0.6, 0.6, 0.6},
		Shininess: 80,

		AmbientLight: mgl32.Vec3{1, 1, 1},
	}
}

// NewColoredMaterial derives ambient from diffuse, the way the palettes
// of the viewer are defined.
func NewColoredMaterial(p engine.Program, diffuse mgl32.Vec3, ambientRatio, shininess float32) *PhongMaterial {
	m := NewPhongMaterial(p)
	m.Diffuse = diffuse
	m.Ambient = diffuse.Mul(ambientRatio)
	m.Shininess = shininess
	return m
}

func (m *PhongMaterial) Kind() Kind                  { return KindPhong }
func (m *PhongMaterial) AppliedShader() string       { return KindPhong.String() }
func (m *PhongMaterial) Program() engine.Program     { return m.program }
func (m *PhongMaterial) SetProgram(p engine.Program) { m.program = p }
func (m *PhongMaterial) Base() *PhongMaterial        { return m }
func (m *PhongMaterial) Lights() []Light             { return m.lights }

func (m *PhongMaterial) Time() float32     { return m.time }
func (m *PhongMaterial) SetTime(t float32) { m.time = t }

// setLightCount resizes the light slots, kept slots keep their values.
func (m *PhongMaterial) setLightCount(n int) {
	if n <= len(m.lights) {
		m.lights = m.lights[:n]
		return
	}
	for len(m.lights) < n {
		m.lights = append(m.lights, DefaultLight())
	}
}

func (m *PhongMaterial) Apply(pass int) {
	m.apply(pass)
}

func (m *PhongMaterial) apply(pass int) engine.Program {
	if m.program == nil {
		panic("scene: material applied without a compiled program")
	}
	if pass < 0 || pass >= len(m.lights) {
		panic(fmt.Sprintf("scene: light pass %d out of range [0, %d)", pass, len(m.lights)))
	}

	p := m.program
	p.Use()

	p.SetVec3("phong.k_ambient", m.Ambient)
	p.SetVec3("phong.k_diffuse", m.Diffuse)
	p.SetVec3("phong.k_specular", m.Specular)
	p.SetFloat("phong.shininess", m.Shininess)
	p.SetVec3("ambientLight", m.AmbientLight)

	l := m.lights[pass]
	p.SetVec3("light.position_WC", l.Position)
	p.SetVec3("light.color", l.Color)
	p.SetFloat("light.intensity", l.Intensity)

	p.SetInt("lightPass", int32(pass))
	p.SetFloat("time", m.time)
	return p
}

/*
toon material
*/
type ToonParams struct {
	Toon       bool
	Silhouette bool
	Threshold  float32
	Discretize int
}

func DefaultToonParams() ToonParams {
	return ToonParams{Threshold: 0.3}
}

type ToonMaterial struct {
	PhongMaterial
	ToonParams
}

func NewToonMaterial(p engine.Program) *ToonMaterial {
	return &ToonMaterial{
		PhongMaterial: *NewPhongMaterial(p),
		ToonParams:    DefaultToonParams(),
	}
}

func (m *ToonMaterial) Kind() Kind            { return KindToon }
func (m *ToonMaterial) AppliedShader() string { return KindToon.String() }

func (m *ToonMaterial) Apply(pass int) {
	p := m.apply(pass)

	p.SetBool("toon.toon", m.Toon)
	p.SetBool("toon.silhouette", m.Silhouette)
	p.SetFloat("toon.threshold", m.Threshold)
	p.SetInt("toon.discretize", int32(m.Discretize))
}

/*
point material
*/
type PointParams struct {
	Density         float32
	Radius          float32
	CircleColor     mgl32.Vec3
	BackgroundColor mgl32.Vec3
	Discard         bool
}

func DefaultPointParams() PointParams {
	return PointParams{
		Density:         5,
		Radius:          0.3,
		CircleColor:     mgl32.Vec3{0.6, 0.2, 0.8},
		BackgroundColor: mgl32.Vec3{0.3, 0.4, 0.6},
	}
}

type PointMaterial struct {
	PhongMaterial
	PointParams
}

func NewPointMaterial(p engine.Program) *PointMaterial {
	return &PointMaterial{
		PhongMaterial: *NewPhongMaterial(p),
		PointParams:   DefaultPointParams(),
	}
}

func (m *PointMaterial) Kind() Kind            { return KindPoint }
func (m *PointMaterial) AppliedShader() string { return KindPoint.String() }

func (m *PointMaterial) Apply(pass int) {
	p := m.apply(pass)

	p.SetFloat("point.density", m.Density)
	p.SetFloat("point.radius", m.Radius)
	p.SetVec3("point.circleColor", m.CircleColor)
	p.SetVec3("point.backgroundColor", m.BackgroundColor)
	p.SetBool("point.discardOutside", m.Discard)
}
