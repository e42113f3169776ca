package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program. Uniform setters address uniforms
// by name, unknown names are ignored the way GL ignores location -1.
type Program interface {
	Use()

	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetBool(name string, v bool)
	SetVec3(name string, v mgl32.Vec3)
	SetMat3(name string, m mgl32.Mat3)
	SetMat4(name string, m mgl32.Mat4)

	Delete()
}

// ShaderSource holds the stages of one program, Geometry is optional.
type ShaderSource struct {
	Name     string
	Vertex   string
	Fragment string
	Geometry string
}

type Compiler interface {
	Compile(src ShaderSource) (Program, error)
}

// CompileError reports the failing stage and the driver log.
type CompileError struct {
	Program string
	Stage   string
	Log     string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s shader error: %s", e.Program, e.Stage, e.Log)
}

// MustCompile compiles src and panics on failure. A missing program
// leaves nothing to render with, there is no fallback shader.
func MustCompile(c Compiler, src ShaderSource) Program {
	prg, err := c.Compile(src)
	if err != nil {
		Logger().Error("could not build program", "program", src.Name, "err", err)
		panic(err.Error())
	}

	Logger().Debug("program ready", "program", src.Name)
	return prg
}
