package engine

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var white = mgl32.Vec3{1, 1, 1}

func NewCubeGeometry(size float32) *Geometry {
	geo := NewGeometry()
	h := size / 2.0

	/*
		    vertices			uvs

		  h +------+ e
			|\     |\
			| \    | \
			|b +------+ a   tl +------+ tr
		  g +--|---+ f|        |      |
			 \ |    \ |        |      |
			  \|     \|        |      |
			 c +------+ d   bl +------+ br
	*/

	a := mgl32.Vec3{h, h, h}
	b := mgl32.Vec3{-h, h, h}
	c := mgl32.Vec3{-h, -h, h}
	d := mgl32.Vec3{h, -h, h}
	e := mgl32.Vec3{h, h, -h}
	f := mgl32.Vec3{h, -h, -h}
	g := mgl32.Vec3{-h, -h, -h}
	hh := mgl32.Vec3{-h, h, -h}

	sides := []struct {
		normal         mgl32.Vec3
		tr, tl, bl, br mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, a, b, c, d},   // front
		{mgl32.Vec3{0, 0, -1}, hh, e, f, g}, // back
		{mgl32.Vec3{0, 1, 0}, e, hh, b, a},  // top
		{mgl32.Vec3{0, -1, 0}, d, c, g, f},  // bottom
		{mgl32.Vec3{1, 0, 0}, e, a, d, f},   // right
		{mgl32.Vec3{-1, 0, 0}, b, hh, g, c}, // left
	}

	tl := mgl32.Vec2{0, 1}
	tr := mgl32.Vec2{1, 1}
	bl := mgl32.Vec2{0, 0}
	br := mgl32.Vec2{1, 0}

	for _, s := range sides {
		geo.AddFace(
			Vertex{Position: s.tr, Normal: s.normal, UV: tr, Color: white},
			Vertex{Position: s.tl, Normal: s.normal, UV: tl, Color: white},
			Vertex{Position: s.bl, Normal: s.normal, UV: bl, Color: white},
		)
		geo.AddFace(
			Vertex{Position: s.bl, Normal: s.normal, UV: bl, Color: white},
			Vertex{Position: s.br, Normal: s.normal, UV: br, Color: white},
			Vertex{Position: s.tr, Normal: s.normal, UV: tr, Color: white},
		)
	}

	geo.MergeVertices()
	geo.ComputeBoundary()

	return geo
}

func NewPlaneGeometry(width, height float32) *Geometry {
	geo := NewGeometry()

	hw, hh := width/2.0, height/2.0

	/*
		    vertices			uvs

			b +------+ a   tl +------+ tr
		      |      |        |      |
			  |      |        |      |
			c +------+ d   bl +------+ br
	*/

	a := mgl32.Vec3{hw, hh, 0}
	b := mgl32.Vec3{-hw, hh, 0}
	c := mgl32.Vec3{-hw, -hh, 0}
	d := mgl32.Vec3{hw, -hh, 0}
	normal := mgl32.Vec3{0, 0, 1}

	geo.AddFace(
		Vertex{Position: a, Normal: normal, UV: mgl32.Vec2{1, 1}, Color: white},
		Vertex{Position: b, Normal: normal, UV: mgl32.Vec2{0, 1}, Color: white},
		Vertex{Position: c, Normal: normal, UV: mgl32.Vec2{0, 0}, Color: white},
	)
	geo.AddFace(
		Vertex{Position: c, Normal: normal, UV: mgl32.Vec2{0, 0}, Color: white},
		Vertex{Position: d, Normal: normal, UV: mgl32.Vec2{1, 0}, Color: white},
		Vertex{Position: a, Normal: normal, UV: mgl32.Vec2{1, 1}, Color: white},
	)

	geo.MergeVertices()
	geo.ComputeBoundary()

	return geo
}

func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	grid := func(x, y int) Vertex {
		u := float32(x) / float32(widthSegments)
		v := float32(y) / float32(heightSegments)
		phi, theta := u*2*math32.Pi, v*math32.Pi

		p := mgl32.Vec3{
			-radius * math32.Cos(phi) * math32.Sin(theta),
			radius * math32.Cos(theta),
			radius * math32.Sin(phi) * math32.Sin(theta),
		}
		n := mgl32.Vec3{0, 1, 0}
		if p.Len() > 0 {
			n = p.Normalize()
		}

		return Vertex{Position: p, Normal: n, UV: mgl32.Vec2{u, 1 - v}, Color: white}
	}

	return newGridGeometry(widthSegments, heightSegments, grid)
}

// NewTorusGeometry builds a ring around the y axis.
func NewTorusGeometry(radius, tube float32, radialSegments, tubularSegments int) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}

	grid := func(x, y int) Vertex {
		u := float32(x) / float32(tubularSegments) * 2 * math32.Pi
		v := float32(y) / float32(radialSegments) * 2 * math32.Pi

		center := mgl32.Vec3{radius * math32.Cos(u), 0, radius * math32.Sin(u)}
		p := mgl32.Vec3{
			(radius + tube*math32.Cos(v)) * math32.Cos(u),
			tube * math32.Sin(v),
			(radius + tube*math32.Cos(v)) * math32.Sin(u),
		}

		return Vertex{
			Position: p,
			Normal:   p.Sub(center).Normalize(),
			UV:       mgl32.Vec2{float32(x) / float32(tubularSegments), float32(y) / float32(radialSegments)},
			Color:    white,
		}
	}

	return newGridGeometry(tubularSegments, radialSegments, grid)
}

// newGridGeometry triangulates a (w+1)x(h+1) vertex grid.
func newGridGeometry(w, h int, at func(x, y int) Vertex) *Geometry {
	geo := NewGeometry()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v1 := at(x+1, y)
			v2 := at(x, y)
			v3 := at(x, y+1)
			v4 := at(x+1, y+1)

			geo.AddFace(v1, v2, v4)
			geo.AddFace(v2, v3, v4)
		}
	}

	geo.MergeVertices()
	geo.ComputeBoundary()

	return geo
}
