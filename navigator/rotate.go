package navigator

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/rtr/engine"
	"github.com/der-antikeks/rtr/scene"
)

// RotateY orbits a node around the origin. The node sits at distance
// along its local z axis, rotated by angle around the selected axis.
// Left/Right rotate, Up/Down and scrolling change the distance.
type RotateY struct {
	graph NodeTransformer
	node  scene.NodeID

	axis     Axis
	angle    float32 // radians
	distance float32

	rotateSpeed float32 // radians per key press
	zoomSpeed   float32

	minDistance float32
	maxDistance float32
}

func NewRotateY(graph NodeTransformer, node scene.NodeID) *RotateY {
	return &RotateY{
		graph: graph,
		node:  node,

		axis:     AxisY,
		distance: 3,

		rotateSpeed: mgl32.DegToRad(5),
		zoomSpeed:   0.1,

		minDistance: 0.1,
		maxDistance: math32.Inf(1),
	}
}

func (c *RotateY) Axis() Axis        { return c.axis }
func (c *RotateY) Angle() float32    { return c.angle }
func (c *RotateY) Distance() float32 { return c.distance }

func (c *RotateY) SetRotateAxis(a Axis) {
	c.axis = a
	c.update()
}

func (c *RotateY) SetDistance(d float32) {
	c.distance = c.clamp(d)
	c.update()
}

func (c *RotateY) SetAngle(rad float32) {
	c.angle = wrap(rad)
	c.update()
}

func (c *RotateY) SetSpeed(rotate, zoom float32) {
	c.rotateSpeed, c.zoomSpeed = rotate, zoom
}

func (c *RotateY) SetDistanceLimits(min, max float32) {
	c.minDistance, c.maxDistance = min, max
	c.distance = c.clamp(c.distance)
	c.update()
}

func (c *RotateY) clamp(d float32) float32 {
	return math32.Max(c.minDistance, math32.Min(c.maxDistance, d))
}

func wrap(rad float32) float32 {
	rad = math32.Mod(rad, 2*math32.Pi)
	if rad < 0 {
		rad += 2 * math32.Pi
	}
	return rad
}

// Transform is the local transform written to the node.
func (c *RotateY) Transform() mgl32.Mat4 {
	rot := mgl32.HomogRotate3D(c.angle, c.axis.vector())
	return rot.Mul4(mgl32.Translate3D(0, 0, c.distance))
}

func (c *RotateY) update() {
	if c.graph == nil {
		return
	}
	if err := c.graph.SetLocal(c.node, c.Transform()); err != nil {
		engine.Logger().Warn("navigator", "node", c.node, "err", err)
	}
}

func (c *RotateY) OnKey(k Key, a Action) bool {
	if a != Press && a != Repeat {
		return false
	}

	switch k {
	case KeyLeft:
		c.angle = wrap(c.angle - c.rotateSpeed)
	case KeyRight:
		c.angle = wrap(c.angle + c.rotateSpeed)
	case KeyUp, KeyZoomIn:
		c.distance = c.clamp(c.distance - c.zoomSpeed)
	case KeyDown, KeyZoomOut:
		c.distance = c.clamp(c.distance + c.zoomSpeed)
	case KeyReset:
		c.angle = 0
	default:
		return false
	}

	c.update()
	return true
}

func (c *RotateY) OnScroll(_, y float64) bool {
	if y == 0 {
		return false
	}

	c.distance = c.clamp(c.distance - c.zoomSpeed*float32(y))
	c.update()
	return true
}
