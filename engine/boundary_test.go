package engine

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewBoundary(t *testing.T) {
	b := NewBoundary()
	if !b.Empty() {
		t.Errorf("NewBoundary() is not empty: %v", b)
	}
	if s := b.Size(); s != (mgl32.Vec3{}) {
		t.Errorf("NewBoundary().Size() != 0 (got %v)", s)
	}
	if e := b.MaxExtent(); e != 0 {
		t.Errorf("NewBoundary().MaxExtent() != 0 (got %v)", e)
	}
	if b.Min[0] != math32.Inf(1) || b.Max[0] != math32.Inf(-1) {
		t.Errorf("NewBoundary() has finite limits: %v", b)
	}
}

func TestBoundary_AddPoint(t *testing.T) {
	tests := []struct {
		Points   []mgl32.Vec3
		Expected Boundary
	}{
		{
			[]mgl32.Vec3{{0, 0, 0}},
			Boundary{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 0}},
		},
		{
			[]mgl32.Vec3{{1, 2, 3}, {-1, 5, 0}},
			Boundary{mgl32.Vec3{-1, 2, 0}, mgl32.Vec3{1, 5, 3}},
		},
		{
			[]mgl32.Vec3{{1, 1, 1}, {-1, -1, -1}, {0.5, 2, -3}},
			Boundary{mgl32.Vec3{-1, -1, -3}, mgl32.Vec3{1, 2, 1}},
		},
	}

	for _, c := range tests {
		b := NewBoundary()
		for _, p := range c.Points {
			b.AddPoint(p)
		}
		if !b.ApproxEqual(c.Expected, 1e-6) {
			t.Errorf("AddPoint(%v) != %v (got %v)", c.Points, c.Expected, b)
		}
	}
}

func TestBoundary_Extent(t *testing.T) {
	tests := []struct {
		B         Boundary
		Center    mgl32.Vec3
		Size      mgl32.Vec3
		MaxExtent float32
	}{
		{
			Boundary{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}},
			mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}, 2,
		},
		{
			Boundary{mgl32.Vec3{0, 1, 2}, mgl32.Vec3{1, 5, 3}},
			mgl32.Vec3{0.5, 3, 2.5}, mgl32.Vec3{1, 4, 1}, 4,
		},
		{
			Boundary{mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{5, 0, 0}},
			mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 0, 0}, 10,
		},
	}

	for _, c := range tests {
		if r := c.B.Center(); !r.ApproxEqual(c.Center) {
			t.Errorf("Boundary(%v).Center() != %v (got %v)", c.B, c.Center, r)
		}
		if r := c.B.Size(); !r.ApproxEqual(c.Size) {
			t.Errorf("Boundary(%v).Size() != %v (got %v)", c.B, c.Size, r)
		}
		if r := c.B.MaxExtent(); !NearlyEquals(r, c.MaxExtent, 1e-6) {
			t.Errorf("Boundary(%v).MaxExtent() != %v (got %v)", c.B, c.MaxExtent, r)
		}
	}
}

func TestBoundary_Transform(t *testing.T) {
	halfDiagonal := math32.Sqrt(2) / 2
	unit := Boundary{mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}}

	tests := []struct {
		M        mgl32.Mat4
		Expected Boundary
	}{
		{
			mgl32.Ident4(),
			unit,
		},
		{
			mgl32.Translate3D(1, 2, 3),
			Boundary{mgl32.Vec3{0.5, 1.5, 2.5}, mgl32.Vec3{1.5, 2.5, 3.5}},
		},
		{
			mgl32.Scale3D(2, 1, 0.5),
			Boundary{mgl32.Vec3{-1, -0.5, -0.25}, mgl32.Vec3{1, 0.5, 0.25}},
		},
		{
			// rotated box grows to enclose the corners
			mgl32.HomogRotate3DY(math32.Pi / 4),
			Boundary{
				mgl32.Vec3{-halfDiagonal, -0.5, -halfDiagonal},
				mgl32.Vec3{halfDiagonal, 0.5, halfDiagonal},
			},
		},
	}

	for _, c := range tests {
		if r := unit.Transform(c.M); !r.ApproxEqual(c.Expected, 1e-5) {
			t.Errorf("Boundary(%v).Transform(%v) != %v (got %v)", unit, c.M, c.Expected, r)
		}
	}

	if r := NewBoundary().Transform(mgl32.Translate3D(1, 1, 1)); !r.Empty() {
		t.Errorf("transformed empty boundary is not empty: %v", r)
	}
}
