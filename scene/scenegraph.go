package scene

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/rtr/engine"
)

// Names of the fixed nodes every SceneGraph starts with.
const (
	WorldNode  = "World"
	SceneNode  = "Scene"
	CameraNode = "Camera"
)

type Options struct {
	FieldOfView float32 // vertical, degrees
	Near, Far   float32

	Background mgl32.Vec3

	// RedrawInterval paces the animation ticker.
	RedrawInterval time.Duration
}

func DefaultOptions() Options {
	return Options{
		FieldOfView:    30,
		Near:           0.01,
		Far:            1000,
		Background:     mgl32.Vec3{0.4, 0.4, 0.4},
		RedrawInterval: time.Second / 60,
	}
}

// SceneGraph renders a World node holding the displayed Scene node and
// the Camera, one pass per light. Not safe for concurrent use, all
// calls belong on the thread owning the device.
type SceneGraph struct {
	device engine.Device
	opts   Options

	graph     *Graph
	names     *Names
	materials *Registry
	meshes    []*Mesh

	world, scene, camera NodeID
	lights               []NodeID
	current              string

	background mgl32.Vec3

	ticker  *engine.Ticker
	now     func() time.Time
	started bool
	start   time.Time

	redraw bool
}

func New(device engine.Device, opts Options) *SceneGraph {
	s := &SceneGraph{
		device:     device,
		opts:       opts,
		graph:      NewGraph(),
		names:      NewNames(),
		materials:  NewRegistry(),
		background: opts.Background,
		ticker:     engine.NewTicker(opts.RedrawInterval),
		now:        time.Now,
		redraw:     true,
	}

	// world contains the scene plus the camera
	s.world = s.mustNamedNode(WorldNode)
	s.scene = s.mustNamedNode(SceneNode)
	s.camera = s.mustNamedNode(CameraNode)

	if err := s.graph.SetChildren(s.world, s.scene, s.camera); err != nil {
		panic(err)
	}
	return s
}

func (s *SceneGraph) mustNamedNode(name string) NodeID {
	id := s.graph.NewNode(nil, mgl32.Ident4())
	if err := s.names.Bind(name, id); err != nil {
		panic(err)
	}
	return id
}

func (s *SceneGraph) Graph() *Graph               { return s.graph }
func (s *SceneGraph) Names() *Names               { return s.names }
func (s *SceneGraph) Materials() *Registry        { return s.materials }
func (s *SceneGraph) Device() engine.Device       { return s.device }
func (s *SceneGraph) World() NodeID               { return s.world }
func (s *SceneGraph) Scene() NodeID               { return s.scene }
func (s *SceneGraph) Camera() NodeID              { return s.camera }
func (s *SceneGraph) Lights() []NodeID            { return append([]NodeID(nil), s.lights...) }
func (s *SceneGraph) Meshes() []*Mesh             { return append([]*Mesh(nil), s.meshes...) }
func (s *SceneGraph) BackgroundColor() mgl32.Vec3 { return s.background }

// SetClock replaces the time source of the animation time.
func (s *SceneGraph) SetClock(now func() time.Time) {
	s.now = now
	s.started = false
}

func (s *SceneGraph) AddMaterial(name string, m Material) (MaterialID, error) {
	return s.materials.Add(name, m)
}

// CreateNode wraps mesh into a detached node. With normalize set the
// node scales the mesh by 1/maxExtent so its bounding box fits a unit cube.
func (s *SceneGraph) CreateNode(mesh *Mesh, normalize bool) NodeID {
	local := mgl32.Ident4()
	if normalize && mesh != nil && mesh.Geometry != nil {
		if r := mesh.Geometry.Boundary().MaxExtent(); r > 0 {
			local = mgl32.Scale3D(1/r, 1/r, 1/r)
		}
	}

	if mesh != nil {
		s.meshes = append(s.meshes, mesh)
	}
	return s.graph.NewNode(mesh, local)
}

// AddModel creates a named, detached node for g drawn with material m.
func (s *SceneGraph) AddModel(name string, g *engine.Geometry, m MaterialID, normalize bool) (NodeID, error) {
	if _, err := s.materials.Get(m); err != nil {
		return NoNode, fmt.Errorf("model %q: %w", name, err)
	}
	if _, err := s.names.Lookup(name); err == nil {
		return NoNode, fmt.Errorf("model %q: %w", name, ErrNameTaken)
	}

	id := s.CreateNode(NewMesh(name, g, m), normalize)
	if err := s.names.Bind(name, id); err != nil {
		return NoNode, err
	}

	engine.Logger().Debug("model added", "name", name, "vertices", g.VerticesCount(), "material", s.materials.Name(m))
	return id, nil
}

// AddLight attaches a named light node below parent and grows the light
// slots of every material.
func (s *SceneGraph) AddLight(name string, parent NodeID, local mgl32.Mat4) (NodeID, error) {
	if !s.graph.Valid(parent) {
		return NoNode, fmt.Errorf("light %q parent %d: %w", name, parent, ErrInvalidNode)
	}
	if _, err := s.names.Lookup(name); err == nil {
		return NoNode, fmt.Errorf("light %q: %w", name, ErrNameTaken)
	}

	id := s.graph.NewNode(nil, local)
	if err := s.names.Bind(name, id); err != nil {
		return NoNode, err
	}
	if err := s.graph.AddChild(parent, id); err != nil {
		return NoNode, err
	}

	s.lights = append(s.lights, id)
	s.materials.SetLightCount(len(s.lights))
	s.RequestRedraw()
	return id, nil
}

// LightPositions resolves the current world position of every light.
func (s *SceneGraph) LightPositions() ([]mgl32.Vec3, error) {
	pos := make([]mgl32.Vec3, len(s.lights))
	for i, l := range s.lights {
		m, err := s.toWorld(l)
		if err != nil {
			return nil, err
		}
		pos[i] = mgl32.TransformCoordinate(mgl32.Vec3{}, m)
	}
	return pos, nil
}

// toWorld maps coordinates of id into world coordinates, applying the
// World node's own transform the same way drawing does.
func (s *SceneGraph) toWorld(id NodeID) (mgl32.Mat4, error) {
	m, err := s.graph.ToParentTransform(s.world, id)
	if err != nil {
		return m, err
	}
	return s.graph.Local(s.world).Mul4(m), nil
}

// SetSceneNode makes the named node the only child of the Scene node.
func (s *SceneGraph) SetSceneNode(name string) error {
	id, err := s.names.Lookup(name)
	if err != nil {
		return err
	}
	if s.fixedRole(id) {
		s.RequestRedraw()
		return fmt.Errorf("scene node %q: %w", name, ErrInvalidNode)
	}
	if err := s.graph.SetChildren(s.scene, id); err != nil {
		return fmt.Errorf("scene node %q: %w", name, err)
	}

	s.current = name
	s.RequestRedraw()
	return nil
}

// fixedRole reports whether id is World, Scene, the camera, a light or
// a node carrying one of them. Those stay where New and AddLight put
// them.
func (s *SceneGraph) fixedRole(id NodeID) bool {
	if id == s.world || id == s.scene || s.graph.IsAncestor(id, s.camera) {
		return true
	}
	for _, l := range s.lights {
		if s.graph.IsAncestor(id, l) {
			return true
		}
	}
	return false
}

func (s *SceneGraph) CurrentSceneNode() string {
	return s.current
}

func (s *SceneGraph) SetBackgroundColor(c mgl32.Vec3) {
	s.background = c
	s.RequestRedraw()
}

// SelectShader draws every mesh with the named material, falling back to
// the first material drawn with the named shader. The toon flag follows
// whether the toon shader was picked.
func (s *SceneGraph) SelectShader(name string) error {
	name = strings.ToLower(name)

	id, err := s.materials.Lookup(name)
	if err != nil {
		id = NoMaterial
		s.materials.Each(func(mid MaterialID, m Material) {
			if id == NoMaterial && m.AppliedShader() == name {
				id = mid
			}
		})
		if id == NoMaterial {
			s.RequestRedraw()
			return fmt.Errorf("shader %q: %w", name, ErrUnknownMaterial)
		}
	}

	m, err := s.materials.Get(id)
	if err != nil {
		s.RequestRedraw()
		return fmt.Errorf("shader %q: %w", name, err)
	}
	isToon := m.Kind() == KindToon
	s.materials.Each(func(_ MaterialID, m Material) {
		if tm, ok := m.(*ToonMaterial); ok {
			tm.Toon = isToon
		}
	})

	s.replaceMaterial(id)
	s.RequestRedraw()
	return nil
}

// replaceMaterial binds id to every mesh unless all of them use it
// already.
func (s *SceneGraph) replaceMaterial(id MaterialID) bool {
	var replaced bool
	for _, mesh := range s.meshes {
		if mesh.ReplaceMaterial(id) {
			replaced = true
		}
	}

	if replaced {
		engine.Logger().Debug("replacing material", "material", s.materials.Name(id))
	}
	return replaced
}

func (s *SceneGraph) ToggleAnimation(on bool) {
	if on {
		s.ticker.Start()
	} else {
		s.ticker.Stop()
	}
}

func (s *SceneGraph) Animating() bool {
	return s.ticker.Running()
}

// Ticks delivers redraw ticks while animating, nil otherwise.
func (s *SceneGraph) Ticks() <-chan time.Time {
	return s.ticker.C()
}

// Animate pushes t seconds into every material.
func (s *SceneGraph) Animate(t float32) {
	s.materials.SetTime(t)
}

func (s *SceneGraph) RequestRedraw() {
	s.redraw = true
}

func (s *SceneGraph) NeedsRedraw() bool {
	return s.redraw
}

// ReloadProgram binds a freshly compiled program to the materials drawn
// with the named shader and deletes the programs it replaces.
func (s *SceneGraph) ReloadProgram(shader string, p engine.Program) int {
	old := s.materials.ReplaceProgram(shader, p)
	for _, prev := range old {
		prev.Delete()
	}

	engine.Logger().Info("program reloaded", "shader", shader, "replaced", len(old))
	s.RequestRedraw()
	return len(old)
}

// Projection builds the projection for the current viewport.
func (s *SceneGraph) Projection() mgl32.Mat4 {
	w, h := s.device.Viewport()
	return Perspective(s.opts.FieldOfView, w, h, s.opts.Near, s.opts.Far)
}

// Draw renders one frame from the Camera node.
func (s *SceneGraph) Draw() error {
	t := s.now()
	if !s.started {
		s.start = t
		s.started = true
	}
	s.Animate(float32(t.Sub(s.start).Seconds()))

	camToWorld, err := s.toWorld(s.camera)
	if err != nil {
		return fmt.Errorf("resolve camera: %w", err)
	}
	cam := NewCamera(camToWorld, s.Projection())

	s.device.Clear(s.background)
	if err := s.drawPasses(cam); err != nil {
		return err
	}

	s.redraw = false
	return nil
}

// ReplaceMaterialAndDrawScene draws every mesh with material id from the
// given camera. Meshes are only rebound when at least one differs.
func (s *SceneGraph) ReplaceMaterialAndDrawScene(cam Camera, id MaterialID) error {
	if _, err := s.materials.Get(id); err != nil {
		return err
	}

	s.replaceMaterial(id)
	return s.drawPasses(cam)
}

// drawPasses writes all light positions into every material before the
// first pass is drawn. Pass 0 resolves depth, every further pass adds
// its light on top of the same depth.
func (s *SceneGraph) drawPasses(cam Camera) error {
	s.materials.BeginFrame()

	for i, l := range s.lights {
		m, err := s.toWorld(l)
		if err != nil {
			return fmt.Errorf("resolve light %d: %w", i, err)
		}
		if err := s.materials.UpdateLight(i, mgl32.TransformCoordinate(mgl32.Vec3{}, m)); err != nil {
			return err
		}
	}

	s.device.SetRasterState(engine.OpaquePass)
	for i := range s.lights {
		if i > 0 {
			s.device.SetRasterState(engine.AccumulatePass)
		}

		if err := s.graph.Draw(s.world, cam, i, s.drawMesh); err != nil {
			return fmt.Errorf("light pass %d: %w", i, err)
		}
	}
	return nil
}

func (s *SceneGraph) drawMesh(mesh *Mesh, model mgl32.Mat4, cam Camera, pass int) error {
	if !s.materials.LightReady(pass) {
		return fmt.Errorf("light %d: %w", pass, ErrLightsStale)
	}

	m, err := s.materials.Get(mesh.Material)
	if err != nil {
		if errors.Is(err, ErrUnknownMaterial) {
			engine.Logger().Warn("mesh without material", "mesh", mesh.Name, "material", mesh.Material)
		}
		return err
	}

	m.Apply(pass)
	p := m.Program()

	modelView := cam.View.Mul4(model)
	p.SetMat4("projectionMatrix", cam.Projection)
	p.SetMat4("viewMatrix", cam.View)
	p.SetMat4("modelViewMatrix", modelView)
	p.SetMat3("normalMatrix", modelView.Mat3().Inv().Transpose())

	s.device.Draw(mesh.Geometry)
	return nil
}
