package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/rtr/engine"
)

type Program struct {
	name     string
	program  uint32
	uniforms map[string]int32
}

// Compiler builds programs on the current GL context.
type Compiler struct{}

func (Compiler) Compile(src engine.ShaderSource) (engine.Program, error) {
	stages := []struct {
		kind   uint32
		stage  string
		source string
	}{
		{gl.VERTEX_SHADER, "vertex", src.Vertex},
		{gl.FRAGMENT_SHADER, "fragment", src.Fragment},
		{gl.GEOMETRY_SHADER, "geometry", src.Geometry},
	}

	var shaders []uint32
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, s := range stages {
		if s.source == "" {
			continue
		}

		shader, err := compileShader(src.Name, s.stage, s.source, s.kind)
		if err != nil {
			return nil, err
		}
		shaders = append(shaders, shader)
	}

	prg := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prg, s)
	}
	gl.LinkProgram(prg)

	var status int32
	gl.GetProgramiv(prg, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prg, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prg, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prg)

		return nil, &engine.CompileError{Program: src.Name, Stage: "linker", Log: strings.TrimRight(log, "\x00")}
	}

	return &Program{
		name:     src.Name,
		program:  prg,
		uniforms: make(map[string]int32),
	}, nil
}

func compileShader(name, stage, source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, &engine.CompileError{Program: name, Stage: stage, Log: strings.TrimRight(log, "\x00")}
	}

	return shader, nil
}

func (p *Program) Use() {
	gl.UseProgram(p.program)
}

func (p *Program) Delete() {
	gl.DeleteProgram(p.program)
}

// location caches lookups, -1 for uniforms the linker optimized away.
func (p *Program) location(name string) int32 {
	if l, ok := p.uniforms[name]; ok {
		return l
	}

	l := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	if l < 0 {
		engine.Logger().Debug("unknown uniform", "program", p.name, "uniform", name)
	}
	p.uniforms[name] = l
	return l
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.location(name), v[0], v[1], v[2])
}

func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	gl.UniformMatrix3fv(p.location(name), 1, false, &m[0])
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}
