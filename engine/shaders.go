package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadShaderSource reads <name>.vert, <name>.frag and, when present,
// <name>.geom from dir.
func LoadShaderSource(dir, name string) (ShaderSource, error) {
	src := ShaderSource{Name: name}

	read := func(ext string, optional bool) (string, error) {
		b, err := os.ReadFile(filepath.Join(dir, name+ext))
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				return "", nil
			}
			return "", fmt.Errorf("shader %s: %w", name, err)
		}
		return string(b), nil
	}

	var err error
	if src.Vertex, err = read(".vert", false); err != nil {
		return src, err
	}
	if src.Fragment, err = read(".frag", false); err != nil {
		return src, err
	}
	if src.Geometry, err = read(".geom", true); err != nil {
		return src, err
	}

	return src, nil
}

// ShaderLibrary returns the built-in programs keyed by name.
func ShaderLibrary() map[string]ShaderSource {
	return map[string]ShaderSource{
		"phong": {Name: "phong", Vertex: litVertex, Fragment: phongFragment},
		"toon":  {Name: "toon", Vertex: litVertex, Fragment: toonFragment},
		"point": {Name: "point", Vertex: litVertex, Fragment: pointFragment},
	}
}

// Shader returns the named program from dir when dir is set and holds
// it, the built-in source otherwise.
func Shader(dir, name string) (ShaderSource, error) {
	if dir != "" {
		src, err := LoadShaderSource(dir, name)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return src, err
		}
	}

	src, ok := ShaderLibrary()[name]
	if !ok {
		return ShaderSource{}, fmt.Errorf("unknown shader name: %v", name)
	}
	return src, nil
}

const litVertex = `
	#version 330 core

	layout(location = 0) in vec3 vertexPosition;
	layout(location = 1) in vec3 vertexNormal;
	layout(location = 2) in vec2 vertexUV;
	layout(location = 3) in vec3 vertexColor;

	uniform mat4 projectionMatrix;
	uniform mat4 viewMatrix;
	uniform mat4 modelViewMatrix;
	uniform mat3 normalMatrix;

	uniform struct Light {
		vec3 position_WC;
		vec3 color;
		float intensity;
	} light;

	out vec3 Position; // eye coordinates
	out vec3 Normal;   // eye coordinates
	out vec3 LightDir; // eye coordinates
	out vec2 UV;
	out vec3 Color;

	void main() {
		vec4 p = modelViewMatrix * vec4(vertexPosition, 1.0);
		gl_Position = projectionMatrix * p;

		Position = p.xyz;
		Normal = normalize(normalMatrix * vertexNormal);
		LightDir = (viewMatrix * vec4(light.position_WC, 1.0)).xyz - p.xyz;
		UV = vertexUV;
		Color = vertexColor;
	}`

const phongCommon = `
	#version 330 core

	in vec3 Position;
	in vec3 Normal;
	in vec3 LightDir;
	in vec2 UV;
	in vec3 Color;

	uniform struct Light {
		vec3 position_WC;
		vec3 color;
		float intensity;
	} light;

	uniform struct Phong {
		vec3 k_ambient;
		vec3 k_diffuse;
		vec3 k_specular;
		float shininess;
	} phong;

	uniform vec3 ambientLight;
	uniform int lightPass;
	uniform float time;

	out vec4 fragmentColor;

	// ambient is only added once, in the first light pass
	vec3 ambient() {
		return lightPass == 0 ? phong.k_ambient * ambientLight : vec3(0.0);
	}

	float diffuseTerm(vec3 n, vec3 l) {
		return max(dot(n, l), 0.0);
	}

	float specularTerm(vec3 n, vec3 l, vec3 v) {
		if (dot(n, l) <= 0.0) {
			return 0.0;
		}
		vec3 r = reflect(-l, n);
		return pow(max(dot(r, v), 0.0), phong.shininess);
	}
`

const phongFragment = phongCommon + `
	void main() {
		vec3 n = normalize(Normal);
		vec3 l = normalize(LightDir);
		vec3 v = normalize(-Position);

		vec3 c = ambient();
		vec3 li = light.color * light.intensity;
		c += phong.k_diffuse * li * diffuseTerm(n, l);
		c += phong.k_specular * li * specularTerm(n, l, v);

		fragmentColor = vec4(c, 1.0);
	}`

const toonFragment = phongCommon + `
	uniform struct Toon {
		bool toon;
		bool silhouette;
		float threshold;
		int discretize;
	} toon;

	void main() {
		vec3 n = normalize(Normal);
		vec3 l = normalize(LightDir);
		vec3 v = normalize(-Position);

		if (toon.silhouette && abs(dot(n, v)) < toon.threshold) {
			fragmentColor = vec4(0.0, 0.0, 0.0, 1.0);
			return;
		}

		float d = diffuseTerm(n, l);
		float s = specularTerm(n, l, v);
		if (toon.toon) {
			float steps = toon.discretize > 0 ? float(toon.discretize) : 3.0;
			d = floor(d * steps) / steps;
			s = step(0.5, s);
		}

		vec3 li = light.color * light.intensity;
		vec3 c = ambient() + phong.k_diffuse * li * d + phong.k_specular * li * s;
		fragmentColor = vec4(c, 1.0);
	}`

const pointFragment = phongCommon + `
	uniform struct Point {
		float density;
		float radius;
		vec3 circleColor;
		vec3 backgroundColor;
		bool discardOutside;
	} point;

	void main() {
		vec2 cell = fract(UV * point.density) - vec2(0.5);
		bool inside = length(cell) < point.radius;
		if (point.discardOutside && !inside) {
			discard;
		}

		vec3 base = inside ? point.circleColor : point.backgroundColor;

		vec3 n = normalize(Normal);
		vec3 l = normalize(LightDir);
		vec3 v = normalize(-Position);

		vec3 li = light.color * light.intensity;
		vec3 c = (lightPass == 0 ? base * ambientLight : vec3(0.0));
		c += base * li * diffuseTerm(n, l);
		c += phong.k_specular * li * specularTerm(n, l, v);
		fragmentColor = vec4(c, 1.0);
	}`
