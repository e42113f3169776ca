package navigator

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/rtr/scene"
)

type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyZoomIn
	KeyZoomOut
	KeyReset
)

type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Navigator turns input events into a transform of a scene node.
// Handlers report whether the node changed.
type Navigator interface {
	OnKey(k Key, a Action) bool
	OnScroll(x, y float64) bool
}

// NodeTransformer is the part of a scene graph a navigator writes to.
type NodeTransformer interface {
	SetLocal(id scene.NodeID, m mgl32.Mat4) error
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func (a Axis) vector() mgl32.Vec3 {
	switch a {
	case AxisX:
		return mgl32.Vec3{1, 0, 0}
	case AxisZ:
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}
