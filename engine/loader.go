package engine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadOBJ reads a wavefront object file into a single geometry.
// Groups, objects and material libraries are flattened.
func LoadOBJ(path string) (*Geometry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	geo, err := ReadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	Logger().Debug("loaded object", "path", path, "vertices", geo.VerticesCount(), "faces", len(geo.Faces()))
	return geo, nil
}

func ReadOBJ(r io.Reader) (*Geometry, error) {
	geo := NewGeometry()

	var (
		vertices   []mgl32.Vec3
		normals    []mgl32.Vec3
		uvs        []mgl32.Vec2
		hasNormals = true
		lineNumber int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "v": // vertex: x, y, z
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			vertices = append(vertices, mgl32.Vec3{v[0], v[1], v[2]})

		case "vt": // texture: u, v
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], 1.0 - v[1]})

		case "vn": // normal: x, y, z
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})

		case "f": // face
			// f 3 8 4 - vertex
			// f 1/4 2/5 3/6 - vertex/uv
			// f 24//24 25//24 13//24 - vertex//normal
			// f 5/1/1 1/2/1 4/3/1 - vertex/uv/normal
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with %d vertices", lineNumber, len(fields)-1)
			}

			face := make([]Vertex, len(fields)-1)
			for i, f := range fields[1:] {
				a := strings.Split(f, "/")
				face[i].Color = white

				idx, err := objIndex(a[0], len(vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: vertex: %w", lineNumber, err)
				}
				face[i].Position = vertices[idx]

				if len(a) > 1 && a[1] != "" {
					idx, err := objIndex(a[1], len(uvs))
					if err != nil {
						return nil, fmt.Errorf("line %d: uv: %w", lineNumber, err)
					}
					face[i].UV = uvs[idx]
				}

				if len(a) == 3 && a[2] != "" {
					idx, err := objIndex(a[2], len(normals))
					if err != nil {
						return nil, fmt.Errorf("line %d: normal: %w", lineNumber, err)
					}
					face[i].Normal = normals[idx]
				} else {
					hasNormals = false
				}
			}

			// polygons are split up as a fan
			for i := 1; i+1 < len(face); i++ {
				geo.AddFace(face[0], face[i], face[i+1])
			}

		case "o", "g", "usemtl", "mtllib", "s", "l", "p":
		default:
			if strings.HasPrefix(fields[0], "#") {
				continue
			}
			return nil, fmt.Errorf("line %d: unknown object line type: %s", lineNumber, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(geo.Faces()) == 0 {
		return nil, fmt.Errorf("no faces found")
	}

	if !hasNormals {
		geo.ComputeNormals()
	}
	geo.MergeVertices()
	geo.ComputeBoundary()

	return geo, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}

	r := make([]float32, n)
	for i := range r {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		r[i] = float32(f)
	}
	return r, nil
}

// objIndex converts a 1 based (or negative, relative) index.
func objIndex(s string, count int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	if v < 0 {
		v = count + v
	} else {
		v--
	}

	if v < 0 || v >= count {
		return 0, fmt.Errorf("index %s out of range (%d)", s, count)
	}
	return v, nil
}
