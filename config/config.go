package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Window struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

type Camera struct {
	FieldOfView float32 `toml:"fov" yaml:"fov"` // vertical, degrees
	Near        float32 `toml:"near" yaml:"near"`
	Far         float32 `toml:"far" yaml:"far"`
	Distance    float32 `toml:"distance" yaml:"distance"`
	Axis        string  `toml:"axis" yaml:"axis"`
}

type Material struct {
	Name         string     `toml:"name" yaml:"name"`
	Shader       string     `toml:"shader" yaml:"shader"`
	Diffuse      [3]float32 `toml:"diffuse" yaml:"diffuse"`
	AmbientRatio float32    `toml:"ambient_ratio" yaml:"ambient_ratio"`
	Shininess    float32    `toml:"shininess" yaml:"shininess"`
}

// Model is loaded from Path or generated from Primitive.
type Model struct {
	Name      string `toml:"name" yaml:"name"`
	Path      string `toml:"path" yaml:"path"`
	Primitive string `toml:"primitive" yaml:"primitive"`
	Material  string `toml:"material" yaml:"material"`
	Normalize bool   `toml:"normalize" yaml:"normalize"`
}

type Light struct {
	Name      string     `toml:"name" yaml:"name"`
	Parent    string     `toml:"parent" yaml:"parent"`
	Position  [3]float32 `toml:"position" yaml:"position"`
	Color     [3]float32 `toml:"color" yaml:"color"`
	Intensity float32    `toml:"intensity" yaml:"intensity"`
}

type Config struct {
	Window     Window     `toml:"window" yaml:"window"`
	Camera     Camera     `toml:"camera" yaml:"camera"`
	Background [3]float32 `toml:"background" yaml:"background"`

	ShaderDir string  `toml:"shader_dir" yaml:"shader_dir"`
	LogLevel  string  `toml:"log_level" yaml:"log_level"`
	FPS       float64 `toml:"fps" yaml:"fps"`
	Animate   bool    `toml:"animate" yaml:"animate"`

	Materials []Material `toml:"materials" yaml:"materials"`
	Models    []Model    `toml:"models" yaml:"models"`
	Lights    []Light    `toml:"lights" yaml:"lights"`

	// Scene names the model shown at start.
	Scene string `toml:"scene" yaml:"scene"`
}

// Default describes the viewer's stock scene: a red cube lit by a light
// right above the camera, in front of a grey background.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "rtr",
			Width:  800,
			Height: 600,
		},
		Camera: Camera{
			FieldOfView: 30,
			Near:        0.01,
			Far:         1000,
			Distance:    3,
			Axis:        "y",
		},
		Background: [3]float32{0.4, 0.4, 0.4},
		LogLevel:   "info",
		FPS:        60,

		Materials: []Material{
			{Name: "red", Shader: "phong", Diffuse: [3]float32{0.8, 0.1, 0.1}, AmbientRatio: 0.3, Shininess: 80},
			{Name: "goblin", Shader: "phong", Diffuse: [3]float32{0.8, 0.6, 0.1}, AmbientRatio: 0.4, Shininess: 90},
			{Name: "toon", Shader: "toon", Diffuse: [3]float32{0.8, 0.8, 0.8}, AmbientRatio: 0.3, Shininess: 80},
			{Name: "point", Shader: "point", Diffuse: [3]float32{0.8, 0.8, 0.8}, AmbientRatio: 0.3, Shininess: 80},
		},
		Models: []Model{
			{Name: "Cube", Primitive: "cube", Material: "red", Normalize: true},
			{Name: "Sphere", Primitive: "sphere", Material: "red", Normalize: true},
			{Name: "Torus", Primitive: "torus", Material: "goblin", Normalize: true},
			{Name: "Plane", Primitive: "plane", Material: "red", Normalize: true},
		},
		Lights: []Light{
			{Name: "Light0", Parent: "Camera", Position: [3]float32{0, 1, 0}, Color: [3]float32{1, 1, 1}, Intensity: 0.5},
		},
		Scene: "Cube",
	}
}

type decoder interface {
	Decode(v any) error
}

type decoderFunc func(r io.Reader) decoder

func decoderFor(path string) (decoderFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return func(r io.Reader) decoder { return toml.NewDecoder(r).DisallowUnknownFields() }, nil
	case ".yaml", ".yml":
		return func(r io.Reader) decoder {
			d := yaml.NewDecoder(r)
			d.KnownFields(true)
			return d
		}, nil
	}
	return nil, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
}

// Load reads a .toml or .yaml file. Fields the file leaves out keep
// their default value, lists given in the file replace the defaults.
func Load(path string) (Config, error) {
	f, err := decoderFor(path)
	if err != nil {
		return Config{}, err
	}

	fp, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer fp.Close()

	var c Config
	if err := f(bufio.NewReader(fp)).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	c.fill(Default())
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// fill copies every unset field from d.
func (c *Config) fill(d Config) {
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width == 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height == 0 {
		c.Window.Height = d.Window.Height
	}

	if c.Camera.FieldOfView == 0 {
		c.Camera.FieldOfView = d.Camera.FieldOfView
	}
	if c.Camera.Near == 0 {
		c.Camera.Near = d.Camera.Near
	}
	if c.Camera.Far == 0 {
		c.Camera.Far = d.Camera.Far
	}
	if c.Camera.Distance == 0 {
		c.Camera.Distance = d.Camera.Distance
	}
	if c.Camera.Axis == "" {
		c.Camera.Axis = d.Camera.Axis
	}

	if c.Background == [3]float32{} {
		c.Background = d.Background
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.FPS == 0 {
		c.FPS = d.FPS
	}

	if c.Materials == nil {
		c.Materials = d.Materials
	}
	if c.Models == nil {
		c.Models = d.Models
	}
	if c.Lights == nil {
		c.Lights = d.Lights
	}
	if c.Scene == "" && len(c.Models) > 0 {
		c.Scene = c.Models[0].Name
	}
}

var (
	shaders    = []string{"phong", "toon", "point"}
	primitives = []string{"cube", "sphere", "torus", "plane"}
	axes       = []string{"x", "y", "z"}
	levels     = []string{"debug", "info", "warn", "error"}
)

func oneOf(v string, list []string) bool {
	for _, s := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		add("camera fov %v out of (0, 180)", c.Camera.FieldOfView)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		add("camera planes near %v far %v: need 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Distance <= 0 {
		add("camera distance %v must be positive", c.Camera.Distance)
	}
	if !oneOf(strings.ToLower(c.Camera.Axis), axes) {
		add("camera axis %q not one of %v", c.Camera.Axis, axes)
	}
	if !oneOf(strings.ToLower(c.LogLevel), levels) {
		add("log level %q not one of %v", c.LogLevel, levels)
	}
	if c.FPS <= 0 {
		add("fps %v must be positive", c.FPS)
	}

	names := map[string]bool{"World": true, "Scene": true, "Camera": true}

	materials := make(map[string]bool)
	for _, m := range c.Materials {
		if m.Name == "" || materials[m.Name] {
			add("material name %q empty or duplicate", m.Name)
		}
		materials[m.Name] = true
		if !oneOf(m.Shader, shaders) {
			add("material %q: shader %q not one of %v", m.Name, m.Shader, shaders)
		}
	}

	models := make(map[string]bool)
	for _, m := range c.Models {
		if m.Name == "" || names[m.Name] {
			add("model name %q empty or duplicate", m.Name)
		}
		names[m.Name] = true
		models[m.Name] = true

		if (m.Path == "") == (m.Primitive == "") {
			add("model %q: exactly one of path and primitive must be set", m.Name)
		} else if m.Primitive != "" && !oneOf(m.Primitive, primitives) {
			add("model %q: primitive %q not one of %v", m.Name, m.Primitive, primitives)
		}
		if !materials[m.Material] {
			add("model %q: unknown material %q", m.Name, m.Material)
		}
	}

	for _, l := range c.Lights {
		if !names[l.Parent] {
			add("light %q: unknown parent %q", l.Name, l.Parent)
		}
		if l.Name == "" || names[l.Name] {
			add("light name %q empty or duplicate", l.Name)
		}
		names[l.Name] = true
	}

	if c.Scene != "" && !models[c.Scene] {
		add("scene %q is not a model", c.Scene)
	}

	return errors.Join(errs...)
}
