package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/rtr/config"
	"github.com/der-antikeks/rtr/engine"
	"github.com/der-antikeks/rtr/navigator"
	"github.com/der-antikeks/rtr/scene"
)

// Backgrounds cycled through with B.
var Backgrounds = []mgl32.Vec3{
	{0, 0, 0},
	{0.4, 0.4, 0.4},
	{1, 1, 1},
}

// Viewer wires a configured scene, its navigator and the key bindings.
type Viewer struct {
	cfg      config.Config
	compiler engine.Compiler

	scene *scene.SceneGraph
	nav   *navigator.RotateY

	models     []string
	background int

	silhouette bool
	discard    bool
	threshold  float32
	discretize int
	intensity  float32
	lightColor int
	rgb        [3]float32

	density float32
	radius  float32

	quit bool
}

// New compiles the shaders and builds the scene described by cfg.
// A shader that fails to compile panics.
func New(cfg config.Config, device engine.Device, c engine.Compiler) (*Viewer, error) {
	v := &Viewer{
		cfg:       cfg,
		compiler:  c,
		threshold: scene.DefaultToonParams().Threshold,
		intensity: 1,
		rgb:       [3]float32{1, 1, 1},
		density:   scene.DefaultPointParams().Density,
		radius:    scene.DefaultPointParams().Radius,
	}

	v.scene = scene.New(device, scene.Options{
		FieldOfView:    cfg.Camera.FieldOfView,
		Near:           cfg.Camera.Near,
		Far:            cfg.Camera.Far,
		Background:     mgl32.Vec3(cfg.Background),
		RedrawInterval: fpsInterval(cfg.FPS),
	})
	for i, b := range Backgrounds {
		if b == mgl32.Vec3(cfg.Background) {
			v.background = i
		}
	}

	programs := make(map[string]engine.Program)
	for _, m := range cfg.Materials {
		if _, ok := programs[m.Shader]; ok {
			continue
		}

		src, err := engine.Shader(cfg.ShaderDir, m.Shader)
		if err != nil {
			return nil, err
		}
		programs[m.Shader] = engine.MustCompile(c, src)
	}

	for _, m := range cfg.Materials {
		if _, err := v.scene.AddMaterial(m.Name, newMaterial(m, programs[m.Shader])); err != nil {
			return nil, err
		}
	}

	for _, m := range cfg.Models {
		if err := v.addModel(m); err != nil {
			return nil, err
		}
	}

	for _, l := range cfg.Lights {
		v.intensity, v.rgb = l.Intensity, l.Color
		if err := v.addLight(l); err != nil {
			return nil, err
		}
	}

	if cfg.Scene != "" {
		if err := v.scene.SetSceneNode(cfg.Scene); err != nil {
			return nil, err
		}
	}

	v.nav = navigator.NewRotateY(v.scene.Graph(), v.scene.Camera())
	v.nav.SetRotateAxis(axis(cfg.Camera.Axis))
	v.nav.SetDistance(cfg.Camera.Distance)

	v.scene.ToggleAnimation(cfg.Animate)
	return v, nil
}

func newMaterial(m config.Material, p engine.Program) scene.Material {
	var mat scene.Material
	switch m.Shader {
	case "toon":
		mat = scene.NewToonMaterial(p)
	case "point":
		mat = scene.NewPointMaterial(p)
	default:
		mat = scene.NewPhongMaterial(p)
	}

	base := mat.Base()
	base.Diffuse = mgl32.Vec3(m.Diffuse)
	base.Ambient = base.Diffuse.Mul(m.AmbientRatio)
	base.Shininess = m.Shininess
	return mat
}

func geometry(m config.Model) (*engine.Geometry, error) {
	if m.Path != "" {
		return engine.LoadOBJ(m.Path)
	}

	switch m.Primitive {
	case "cube":
		return engine.NewCubeGeometry(1), nil
	case "sphere":
		return engine.NewSphereGeometry(0.5, 32, 16), nil
	case "torus":
		return engine.NewTorusGeometry(0.35, 0.15, 16, 32), nil
	case "plane":
		return engine.NewPlaneGeometry(1, 1), nil
	}
	return nil, fmt.Errorf("model %q: unknown primitive %q", m.Name, m.Primitive)
}

func (v *Viewer) addModel(m config.Model) error {
	g, err := geometry(m)
	if err != nil {
		return err
	}

	mat, err := v.scene.Materials().Lookup(m.Material)
	if err != nil {
		return fmt.Errorf("model %q: %w", m.Name, err)
	}

	if _, err := v.scene.AddModel(m.Name, g, mat, m.Normalize); err != nil {
		return err
	}
	v.models = append(v.models, m.Name)
	return nil
}

func (v *Viewer) addLight(l config.Light) error {
	parent, err := v.scene.Names().Lookup(l.Parent)
	if err != nil {
		return fmt.Errorf("light %q: %w", l.Name, err)
	}

	p := l.Position
	if _, err := v.scene.AddLight(l.Name, parent, mgl32.Translate3D(p[0], p[1], p[2])); err != nil {
		return err
	}

	i := len(v.scene.Lights()) - 1
	v.scene.SetLightIntensity(i, l.Intensity)
	v.scene.Materials().Each(func(_ scene.MaterialID, m scene.Material) {
		m.Lights()[i].Color = mgl32.Vec3(l.Color)
	})
	return nil
}

func fpsInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

func axis(s string) navigator.Axis {
	switch strings.ToLower(s) {
	case "x":
		return navigator.AxisX
	case "z":
		return navigator.AxisZ
	}
	return navigator.AxisY
}

func (v *Viewer) Scene() *scene.SceneGraph      { return v.scene }
func (v *Viewer) Navigator() *navigator.RotateY { return v.nav }
func (v *Viewer) Models() []string              { return append([]string(nil), v.models...) }
func (v *Viewer) Quit() bool                    { return v.quit }

// Title names the shown model and the shader it is drawn with.
func (v *Viewer) Title() string {
	name := v.scene.CurrentSceneNode()
	if name == "" {
		return v.cfg.Window.Title
	}

	m, err := v.scene.CurrentMaterial()
	if err != nil {
		return fmt.Sprintf("%s - %s", v.cfg.Window.Title, name)
	}
	return fmt.Sprintf("%s - %s (%s)", v.cfg.Window.Title, name, m.AppliedShader())
}

// Frame draws when something changed since the last frame.
func (v *Viewer) Frame() (bool, error) {
	if !v.scene.NeedsRedraw() {
		return false, nil
	}
	return true, v.scene.Draw()
}

// Reload recompiles the named shader from the shader directory. On
// failure the current program stays in use.
func (v *Viewer) Reload(name string) error {
	src, err := engine.Shader(v.cfg.ShaderDir, name)
	if err != nil {
		engine.Logger().Warn("shader reload", "shader", name, "err", err)
		return err
	}

	p, err := v.compiler.Compile(src)
	if err != nil {
		engine.Logger().Warn("shader reload", "shader", name, "err", err)
		return err
	}

	if v.scene.ReloadProgram(name, p) == 0 {
		// nothing draws with it
		p.Delete()
	}
	return nil
}
