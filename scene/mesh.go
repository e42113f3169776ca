package scene

import "github.com/der-antikeks/rtr/engine"

// Mesh pairs a geometry with a material handle. Meshes sharing a
// MaterialID share the material's state.
type Mesh struct {
	Name     string
	Geometry *engine.Geometry
	Material MaterialID
}

func NewMesh(name string, g *engine.Geometry, m MaterialID) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: g,
		Material: m,
	}
}

// ReplaceMaterial reports whether the handle changed.
func (m *Mesh) ReplaceMaterial(id MaterialID) bool {
	if m.Material == id {
		return false
	}
	m.Material = id
	return true
}
