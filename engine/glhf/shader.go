package glhf

import (
	"runtime"
	"strings"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// AttrFormat defines names and types of OpenGL attributes (vertex format, uniform format, etc.).
//
// Example:
//
//	AttrFormat{{"position", Vec3}, {"texCoord", Vec2}}
type AttrFormat []Attr

// Size returns the total size of all attributes of the AttrFormat in bytes.
func (af AttrFormat) Size() int {
	total := 0
	for _, attr := range af {
		total += attr.Type.Size()
	}
	return total
}

// Attr represents an arbitrary OpenGL attribute, such as a vertex attribute or a shader
// uniform attribute.
type Attr struct {
	Name string
	Type AttrType
}

// AttrType represents the type of an OpenGL attribute.
type AttrType int

// List of all possible attribute types.
const (
	Int AttrType = iota
	UInt
	Float
	Vec2
	Vec3
	Vec4
	Mat4
)

// Size returns the size of a type in bytes.
func (at AttrType) Size() int {
	switch at {
	case Int, UInt, Float:
		return SizeOfFloat32
	case Vec2:
		return 2 * SizeOfFloat32
	case Vec3:
		return 3 * SizeOfFloat32
	case Vec4:
		return 4 * SizeOfFloat32
	case Mat4:
		return SizeOfMat4
	default:
		panic("size of vertex attribute type: invalid type")
	}
}

// Components returns the number of scalar components of a type.
func (at AttrType) Components() int {
	return at.Size() / SizeOfFloat32
}

const SizeOfFloat32 = 4
const SizeOfMat4 = 16 * SizeOfFloat32

// Shader is an OpenGL shader program.
type Shader struct {
	program    binder
	vertexFmt  AttrFormat
	uniformFmt AttrFormat
	uniformLoc []int32
}

// NewShader creates a new shader program from the specified vertex shader and fragment shader
// sources.
//
// Note that vertexShader and fragmentShader parameters must contain the source code, they're
// not filenames.
func NewShader(vertexFmt, uniformFmt AttrFormat, vertexShader, fragmentShader string) (*Shader, error) {
	shader := &Shader{
		program: binder{
			restoreLoc: gl.CURRENT_PROGRAM,
			bindFunc: func(obj uint32) {
				gl.UseProgram(obj)
			},
		},
		vertexFmt:  vertexFmt,
		uniformFmt: uniformFmt,
		uniformLoc: make([]int32, len(uniformFmt)),
	}

	vshader, err := compileStage(gl.VERTEX_SHADER, vertexShader)
	if err != nil {
		return nil, errors.Wrap(err, "error compiling vertex shader")
	}
	defer gl.DeleteShader(vshader)

	fshader, err := compileStage(gl.FRAGMENT_SHADER, fragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "error compiling fragment shader")
	}
	defer gl.DeleteShader(fshader)

	shader.program.obj = gl.CreateProgram()
	gl.AttachShader(shader.program.obj, vshader)
	gl.AttachShader(shader.program.obj, fshader)
	gl.LinkProgram(shader.program.obj)

	var success int32
	gl.GetProgramiv(shader.program.obj, gl.LINK_STATUS, &success)
	if success == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(shader.program.obj, gl.INFO_LOG_LENGTH, &logLen)

		infoLog := strings.Repeat("\x00", int(logLen)+1)
		gl.GetProgramInfoLog(shader.program.obj, logLen, nil, gl.Str(infoLog))
		gl.DeleteProgram(shader.program.obj)
		return nil, errors.Errorf("error linking shader program: %s", strings.TrimRight(infoLog, "\x00"))
	}

	for i, uniform := range uniformFmt {
		loc := gl.GetUniformLocation(shader.program.obj, gl.Str(uniform.Name+"\x00"))
		shader.uniformLoc[i] = loc
	}

	runtime.SetFinalizer(shader, (*Shader).delete)

	return shader, nil
}

func compileStage(stage uint32, source string) (uint32, error) {
	obj := gl.CreateShader(stage)
	src, free := gl.Strs(source)
	defer free()
	length := int32(len(source))
	gl.ShaderSource(obj, 1, src, &length)
	gl.CompileShader(obj)

	var success int32
	gl.GetShaderiv(obj, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(obj, gl.INFO_LOG_LENGTH, &logLen)

		infoLog := strings.Repeat("\x00", int(logLen)+1)
		gl.GetShaderInfoLog(obj, logLen, nil, gl.Str(infoLog))
		gl.DeleteShader(obj)
		return 0, errors.New(strings.TrimRight(infoLog, "\x00"))
	}
	return obj, nil
}

func (s *Shader) delete() {
	mainthread.CallNonBlock(func() {
		gl.DeleteProgram(s.program.obj)
	})
}

// Delete releases the program right away. The Shader must not be used afterwards.
func (s *Shader) Delete() {
	runtime.SetFinalizer(s, nil)
	gl.DeleteProgram(s.program.obj)
	s.program.obj = 0
}

// ID returns the OpenGL ID of this Shader.
func (s *Shader) ID() uint32 {
	return s.program.obj
}

// VertexFormat returns the vertex attribute format of this Shader. Do not change it.
func (s *Shader) VertexFormat() AttrFormat {
	return s.vertexFmt
}

// UniformFormat returns the uniform attribute format of this Shader. Do not change it.
func (s *Shader) UniformFormat() AttrFormat {
	return s.uniformFmt
}

// AttribLocation returns the location of the named vertex attribute, or -1.
func (s *Shader) AttribLocation(name string) int32 {
	return gl.GetAttribLocation(s.program.obj, gl.Str(name+"\x00"))
}

// SetUniformAttr sets the value of a uniform attribute of this Shader. The attribute is
// specified by the index in the Shader's uniform format.
//
// If the uniform attribute does not exist in the Shader, this method returns false.
//
// Supplied value must correspond to the type of the attribute. Correct types are these
// (right-hand is the type of the value):
//
//	Attr{Type: Int}:   int32
//	Attr{Type: Float}: float32
//	Attr{Type: Vec2}:  mgl32.Vec2
//	Attr{Type: Vec3}:  mgl32.Vec3
//	Attr{Type: Vec4}:  mgl32.Vec4
//	Attr{Type: Mat4}:  mgl32.Mat4
//
// No other types are supported.
//
// The Shader must be bound before calling this method.
func (s *Shader) SetUniformAttr(uniform int, value interface{}) (ok bool) {
	if s.uniformLoc[uniform] < 0 {
		return false
	}

	switch s.uniformFmt[uniform].Type {
	case Int:
		value := value.(int32)
		gl.Uniform1iv(s.uniformLoc[uniform], 1, &value)
	case UInt:
		value := value.(uint32)
		gl.Uniform1uiv(s.uniformLoc[uniform], 1, &value)
	case Float:
		value := value.(float32)
		gl.Uniform1fv(s.uniformLoc[uniform], 1, &value)
	case Vec2:
		value := value.(mgl32.Vec2)
		gl.Uniform2fv(s.uniformLoc[uniform], 1, &value[0])
	case Vec3:
		value := value.(mgl32.Vec3)
		gl.Uniform3fv(s.uniformLoc[uniform], 1, &value[0])
	case Vec4:
		value := value.(mgl32.Vec4)
		gl.Uniform4fv(s.uniformLoc[uniform], 1, &value[0])
	case Mat4:
		value := value.(mgl32.Mat4)
		gl.UniformMatrix4fv(s.uniformLoc[uniform], 1, false, &value[0])
	default:
		panic("set uniform attr: invalid attribute type")
	}

	return true
}

// Begin binds the Shader program. This is necessary before using the Shader.
func (s *Shader) Begin() {
	s.program.bind()
}

// End unbinds the Shader program and restores the previous one.
func (s *Shader) End() {
	s.program.restore()
}
