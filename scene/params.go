package scene

import (
	"fmt"

	"github.com/der-antikeks/rtr/engine"
)

// Setters below change the material of the mesh shown in the Scene node.
// Setters bound to a material variant leave other variants untouched and
// report false. All of them request a redraw.

// CurrentMaterial resolves the material of the current scene node's mesh.
func (s *SceneGraph) CurrentMaterial() (Material, error) {
	if s.current == "" {
		return nil, fmt.Errorf("no scene node selected: %w", ErrUnknownNode)
	}

	id, err := s.names.Lookup(s.current)
	if err != nil {
		return nil, err
	}

	mesh := s.graph.Mesh(id)
	if mesh == nil {
		return nil, fmt.Errorf("%q: %w", s.current, ErrNoMesh)
	}

	return s.materials.Get(mesh.Material)
}

func (s *SceneGraph) currentToon(setter string) (*ToonMaterial, bool) {
	m, err := s.CurrentMaterial()
	if err != nil {
		engine.Logger().Debug("setter ignored", "setter", setter, "err", err)
		return nil, false
	}

	tm, ok := m.(*ToonMaterial)
	if !ok {
		engine.Logger().Debug("setter ignored", "setter", setter, "shader", m.AppliedShader())
	}
	return tm, ok
}

func (s *SceneGraph) currentPoint(setter string) (*PointMaterial, bool) {
	m, err := s.CurrentMaterial()
	if err != nil {
		engine.Logger().Debug("setter ignored", "setter", setter, "err", err)
		return nil, false
	}

	pm, ok := m.(*PointMaterial)
	if !ok {
		engine.Logger().Debug("setter ignored", "setter", setter, "shader", m.AppliedShader())
	}
	return pm, ok
}

func (s *SceneGraph) SetThreshold(v float32) bool {
	defer s.RequestRedraw()

	tm, ok := s.currentToon("threshold")
	if ok {
		tm.Threshold = v
	}
	return ok
}

func (s *SceneGraph) SetDiscretize(n int) bool {
	defer s.RequestRedraw()

	tm, ok := s.currentToon("discretize")
	if ok {
		tm.Discretize = n
	}
	return ok
}

func (s *SceneGraph) EnableSilhouette(on bool) bool {
	defer s.RequestRedraw()

	tm, ok := s.currentToon("silhouette")
	if ok {
		tm.Silhouette = on
	}
	return ok
}

func (s *SceneGraph) EnableToon(on bool) bool {
	defer s.RequestRedraw()

	tm, ok := s.currentToon("toon")
	if ok {
		tm.Toon = on
	}
	return ok
}

func (s *SceneGraph) SetDensity(v float32) bool {
	defer s.RequestRedraw()

	pm, ok := s.currentPoint("density")
	if ok {
		pm.Density = v
	}
	return ok
}

func (s *SceneGraph) SetRadius(v float32) bool {
	defer s.RequestRedraw()

	pm, ok := s.currentPoint("radius")
	if ok {
		pm.Radius = v
	}
	return ok
}

func (s *SceneGraph) SetDiscard(on bool) bool {
	defer s.RequestRedraw()

	pm, ok := s.currentPoint("discard")
	if ok {
		pm.Discard = on
	}
	return ok
}

// Color channels of the light slots.
const (
	Red = iota
	Green
	Blue
)

// SetLightColorChannel sets one color channel of every light slot of the
// current material, whatever its variant.
func (s *SceneGraph) SetLightColorChannel(channel int, v float32) bool {
	defer s.RequestRedraw()

	if channel < Red || channel > Blue {
		engine.Logger().Debug("setter ignored", "setter", "light color", "channel", channel)
		return false
	}

	m, err := s.CurrentMaterial()
	if err != nil {
		engine.Logger().Debug("setter ignored", "setter", "light color", "err", err)
		return false
	}

	lights := m.Lights()
	for i := range lights {
		lights[i].Color[channel] = v
	}
	return true
}

func (s *SceneGraph) SetRedIntensity(v float32) bool   { return s.SetLightColorChannel(Red, v) }
func (s *SceneGraph) SetGreenIntensity(v float32) bool { return s.SetLightColorChannel(Green, v) }
func (s *SceneGraph) SetBlueIntensity(v float32) bool  { return s.SetLightColorChannel(Blue, v) }

// SetLightIntensity sets the intensity of light i in every material.
func (s *SceneGraph) SetLightIntensity(i int, v float32) bool {
	defer s.RequestRedraw()

	if i < 0 || i >= len(s.lights) {
		engine.Logger().Debug("setter ignored", "setter", "light intensity", "light", i, "lights", len(s.lights))
		return false
	}

	s.materials.Each(func(_ MaterialID, m Material) {
		m.Lights()[i].Intensity = v
	})
	return true
}
