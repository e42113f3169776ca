package scene

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/rtr/engine"
)

// MaterialID is a handle into a Registry.
type MaterialID int

const NoMaterial MaterialID = -1

// Registry owns the materials of a scene and keeps their light slots in
// step. Lights are updated in two phases: BeginFrame invalidates every
// slot, UpdateLight writes one slot into all materials and marks it
// ready for drawing.
type Registry struct {
	materials []Material
	names     []string
	ids       map[string]MaterialID

	lightCount int
	updated    *bitset.BitSet
}

func NewRegistry() *Registry {
	return &Registry{
		ids:     make(map[string]MaterialID),
		updated: bitset.New(0),
	}
}

// Add registers m under a unique name and sizes its light slots.
func (r *Registry) Add(name string, m Material) (MaterialID, error) {
	if m == nil {
		return NoMaterial, fmt.Errorf("material %q is nil: %w", name, ErrUnknownMaterial)
	}
	if _, ok := r.ids[name]; ok {
		return NoMaterial, fmt.Errorf("material %q already registered", name)
	}

	m.Base().setLightCount(r.lightCount)

	id := MaterialID(len(r.materials))
	r.materials = append(r.materials, m)
	r.names = append(r.names, name)
	r.ids[name] = id
	return id, nil
}

func (r *Registry) Get(id MaterialID) (Material, error) {
	if id < 0 || int(id) >= len(r.materials) {
		return nil, fmt.Errorf("material %d: %w", id, ErrUnknownMaterial)
	}
	return r.materials[id], nil
}

func (r *Registry) Lookup(name string) (MaterialID, error) {
	id, ok := r.ids[name]
	if !ok {
		return NoMaterial, fmt.Errorf("material %q: %w", name, ErrUnknownMaterial)
	}
	return id, nil
}

func (r *Registry) Name(id MaterialID) string {
	if id < 0 || int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

func (r *Registry) Len() int {
	return len(r.materials)
}

// Each calls fn in registration order.
func (r *Registry) Each(fn func(id MaterialID, m Material)) {
	for i, m := range r.materials {
		fn(MaterialID(i), m)
	}
}

func (r *Registry) LightCount() int {
	return r.lightCount
}

// SetLightCount resizes the light slots of every material.
func (r *Registry) SetLightCount(n int) {
	if n < 0 {
		n = 0
	}

	r.lightCount = n
	for _, m := range r.materials {
		m.Base().setLightCount(n)
	}
	r.updated.ClearAll()
}

func (r *Registry) BeginFrame() {
	r.updated.ClearAll()
}

// UpdateLight writes the world position of light i into every material.
func (r *Registry) UpdateLight(i int, pos mgl32.Vec3) error {
	if i < 0 || i >= r.lightCount {
		return fmt.Errorf("light %d of %d: %w", i, r.lightCount, ErrInvalidNode)
	}

	for _, m := range r.materials {
		m.Lights()[i].Position = pos
	}
	r.updated.Set(uint(i))
	return nil
}

// LightReady reports whether slot i was updated since BeginFrame.
func (r *Registry) LightReady(i int) bool {
	if i < 0 || i >= r.lightCount {
		return false
	}
	return r.updated.Test(uint(i))
}

// SetTime pushes the animation time into every material.
func (r *Registry) SetTime(t float32) {
	for _, m := range r.materials {
		m.SetTime(t)
	}
}

// ReplaceProgram binds p to every material drawn with the named shader
// and returns the distinct programs it replaced.
func (r *Registry) ReplaceProgram(shader string, p engine.Program) []engine.Program {
	var old []engine.Program
	for _, m := range r.materials {
		if m.AppliedShader() != shader {
			continue
		}

		prev := m.Program()
		m.SetProgram(p)
		if prev == nil || prev == p || containsProgram(old, prev) {
			continue
		}
		old = append(old, prev)
	}
	return old
}

func containsProgram(list []engine.Program, p engine.Program) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
