package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# a unit quad
mtllib quad.mtl
o Quad
v -0.5 -0.5 0
v 0.5 -0.5 0
v 0.5 0.5 0
v -0.5 0.5 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl default
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestReadOBJ(t *testing.T) {
	g, err := ReadOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	// the quad is split into a fan of two triangles sharing 4 vertices
	assert.Len(t, g.Faces(), 2)
	assert.Equal(t, 4, g.VerticesCount())
	assert.Equal(t, float32(1), g.Boundary().MaxExtent())

	for _, v := range g.Vertices() {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, v.Normal)
		assert.Equal(t, white, v.Color)
	}

	// v coordinates are flipped
	assert.Equal(t, mgl32.Vec2{0, 1}, g.Vertices()[0].UV)
}

func TestReadOBJ_IndexForms(t *testing.T) {
	tests := []struct {
		name string
		obj  string
	}{
		{"vertex", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"},
		{"vertex/uv", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1/1 2/1 3/1\n"},
		{"vertex//normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n"},
		{"relative", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadOBJ(strings.NewReader(tt.obj))
			require.NoError(t, err)
			require.Len(t, g.Faces(), 1)

			// normals are computed when missing
			for _, v := range g.Vertices() {
				assert.True(t, v.Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}), "normal %v", v.Normal)
			}
		})
	}
}

func TestReadOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		obj  string
		msg  string
	}{
		{"empty", "", "no faces"},
		{"only vertices", "v 0 0 0\n", "no faces"},
		{"short vertex", "v 0 0\n", "line 1"},
		{"bad float", "v 0 x 0\n", "line 1"},
		{"index range", "v 0 0 0\nf 1 2 3\n", "line 2: vertex"},
		{"uv range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/2 2 3\n", "line 4: uv"},
		{"two vertices", "v 0 0 0\nf 1 1\n", "face with 2 vertices"},
		{"unknown", "v 0 0 0\ncurv 0 1\n", "unknown object line type: curv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.obj))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	g, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Len(t, g.Faces(), 2)

	_, err = LoadOBJ(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.obj")
	require.NoError(t, os.WriteFile(bad, []byte("f 1 2 3\n"), 0o644))
	_, err = LoadOBJ(bad)
	assert.ErrorContains(t, err, bad)
}
