package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	Color    mgl32.Vec3
}

func (v Vertex) Key(precision int) string {
	r := func(f float32) float32 { return Round(f, precision) }
	return fmt.Sprintf("%v_%v_%v_%v_%v_%v_%v_%v_%v_%v_%v",
		r(v.Position[0]), r(v.Position[1]), r(v.Position[2]),
		r(v.Normal[0]), r(v.Normal[1]), r(v.Normal[2]),
		r(v.UV[0]), r(v.UV[1]),
		r(v.Color[0]), r(v.Color[1]), r(v.Color[2]),
	)
}

type Face struct {
	A, B, C int
}

// Geometry holds indexed triangle data and its bounding box.
// It is GPU independent, a Device uploads it on first draw.
type Geometry struct {
	vertices []Vertex
	faces    []Face

	bounding Boundary
}

func NewGeometry() *Geometry {
	return &Geometry{
		bounding: NewBoundary(),
	}
}

func (g *Geometry) AddFace(a, b, c Vertex) {
	offset := len(g.vertices)
	g.vertices = append(g.vertices, a, b, c)
	g.faces = append(g.faces, Face{offset, offset + 1, offset + 2})
}

func (g *Geometry) MergeVertices() {
	// search and mark duplicate vertices
	lookup := map[string]int{}
	unique := []Vertex{}
	changed := make([]int, len(g.vertices))

	for i, v := range g.vertices {
		key := v.Key(4)

		if j, found := lookup[key]; !found {
			lookup[key] = i
			unique = append(unique, v)
			changed[i] = len(unique) - 1
		} else {
			changed[i] = changed[j]
		}
	}

	cleaned := []Face{}

	for _, f := range g.faces {
		a, b, c := changed[f.A], changed[f.B], changed[f.C]
		if a == b || b == c || c == a {
			// degenerated
			continue
		}

		cleaned = append(cleaned, Face{a, b, c})
	}

	g.vertices = unique
	g.faces = cleaned
}

// ComputeNormals replaces all vertex normals with the normalized
// sum of the adjacent face normals.
func (g *Geometry) ComputeNormals() {
	sums := make([]mgl32.Vec3, len(g.vertices))
	for _, f := range g.faces {
		a, b, c := g.vertices[f.A].Position, g.vertices[f.B].Position, g.vertices[f.C].Position
		n := b.Sub(a).Cross(c.Sub(a))
		sums[f.A] = sums[f.A].Add(n)
		sums[f.B] = sums[f.B].Add(n)
		sums[f.C] = sums[f.C].Add(n)
	}

	for i := range g.vertices {
		if sums[i].Len() > 0 {
			g.vertices[i].Normal = sums[i].Normalize()
		}
	}
}

func (g *Geometry) ComputeBoundary() {
	g.bounding = NewBoundary()
	for _, v := range g.vertices {
		g.bounding.AddPoint(v.Position)
	}
}

func (g *Geometry) Boundary() Boundary {
	return g.bounding
}

func (g *Geometry) Vertices() []Vertex { return g.vertices }
func (g *Geometry) Faces() []Face      { return g.faces }

func (g *Geometry) VerticesCount() int { return len(g.vertices) }
func (g *Geometry) FaceCount() int     { return len(g.faces) * 3 }

// Interleaved returns position, normal, uv and color of every vertex
// packed as 11 floats per vertex.
func (g *Geometry) Interleaved() []float32 {
	data := make([]float32, 0, len(g.vertices)*VertexStride)
	for _, v := range g.vertices {
		data = append(data,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
			v.Color[0], v.Color[1], v.Color[2],
		)
	}
	return data
}

// VertexStride is the number of floats per vertex in Interleaved.
const VertexStride = 11

func (g *Geometry) FaceIndices() []uint32 {
	idx := make([]uint32, len(g.faces)*3)
	for i, f := range g.faces {
		idx[i*3] = uint32(f.A)
		idx[i*3+1] = uint32(f.B)
		idx[i*3+2] = uint32(f.C)
	}
	return idx
}
