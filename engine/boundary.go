package engine

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Boundary is an axis aligned bounding box.
type Boundary struct {
	Min, Max mgl32.Vec3
}

func NewBoundary() Boundary {
	return Boundary{
		Min: mgl32.Vec3{math32.Inf(1), math32.Inf(1), math32.Inf(1)},
		Max: mgl32.Vec3{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)},
	}
}

// Empty reports whether no point was added yet.
func (b Boundary) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

func (b *Boundary) AddPoint(p mgl32.Vec3) {
	b.Min[0], b.Max[0] = math32.Min(b.Min[0], p[0]), math32.Max(b.Max[0], p[0])
	b.Min[1], b.Max[1] = math32.Min(b.Min[1], p[1]), math32.Max(b.Max[1], p[1])
	b.Min[2], b.Max[2] = math32.Min(b.Min[2], p[2]), math32.Max(b.Max[2], p[2])
}

func (b Boundary) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Boundary) Size() mgl32.Vec3 {
	if b.Empty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// MaxExtent returns the length of the longest axis.
func (b Boundary) MaxExtent() float32 {
	s := b.Size()
	return math32.Max(s[0], math32.Max(s[1], s[2]))
}

// Transform returns the boundary of the eight transformed corners.
func (b Boundary) Transform(m mgl32.Mat4) Boundary {
	if b.Empty() {
		return b
	}

	r := NewBoundary()
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		r.AddPoint(mgl32.TransformCoordinate(c, m))
	}

	return r
}

func (b Boundary) ApproxEqual(e Boundary, threshold float32) bool {
	return b.Min.ApproxEqualThreshold(e.Min, threshold) && b.Max.ApproxEqualThreshold(e.Max, threshold)
}
