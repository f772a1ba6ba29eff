package libgl

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type program struct {
	glId             uint32
	name             string
	state            *StateManager
	uniformLocations map[string]int32
	attribLocations  map[string]int32
}

type UnboundProgram interface {
	LabeledGlObject
	Id() uint32
	Name() string
	Bind() BoundProgram
	// Locations are -1 for inputs that are not active. Lookups are cached.
	GetUniformLocation(name string) int32
	GetAttribLocation(name string) int32
	SetUniform(name string, value any)
	SetUniformAt(location int32, value any)
	Delete()
}

type BoundProgram interface {
	UnboundProgram
}

// NewProgram compiles and links a vertex and a fragment stage.
func NewProgram(state *StateManager, name, vertSource, fragSource string) (UnboundProgram, error) {
	vert, err := compileShader(gl.VERTEX_SHADER, vertSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %v vertex shader: %w", name, err)
	}
	defer gl.DeleteShader(vert)
	frag, err := compileShader(gl.FRAGMENT_SHADER, fragSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %v fragment shader: %w", name, err)
	}
	defer gl.DeleteShader(frag)

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)
	gl.DetachShader(id, vert)
	gl.DetachShader(id, frag)

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		info := readProgramInfoLog(id)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("failed to link %v shader, log: %v", name, info)
	}

	prog := &program{
		glId:             id,
		name:             name,
		state:            state,
		uniformLocations: map[string]int32{},
		attribLocations:  map[string]int32{},
	}
	prog.SetDebugLabel(name)
	return prog, nil
}

func compileShader(stage uint32, source string) (uint32, error) {
	id := gl.CreateShader(stage)
	cStrs, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, cStrs, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		info := readShaderInfoLog(id)
		gl.DeleteShader(id)
		return 0, fmt.Errorf("log: %v", info)
	}
	return id, nil
}

func readShaderInfoLog(id uint32) string {
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Name() string {
	return prog.name
}

func (prog *program) SetDebugLabel(label string) {
	setObjectLabel(gl.PROGRAM, prog.glId, label)
}

func (prog *program) Bind() BoundProgram {
	prog.state.UseProgram(prog.glId)
	return BoundProgram(prog)
}

func (prog *program) GetUniformLocation(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location

	if location == -1 {
		log.Printf("%v shader: could not get location of uniform %q\n", prog.name, name)
	}

	return location
}

func (prog *program) GetAttribLocation(name string) int32 {
	if location, ok := prog.attribLocations[name]; ok {
		return location
	}

	location := gl.GetAttribLocation(prog.glId, gl.Str(name+"\x00"))
	prog.attribLocations[name] = location

	if location == -1 {
		log.Printf("%v shader: could not get location of attribute %q\n", prog.name, name)
	}

	return location
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func (prog *program) SetUniformAt(location int32, value any) {
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func (prog *program) Delete() {
	if prog.state.Program == prog.glId {
		prog.state.UseProgram(0)
	}
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

func setProgramUniformAny(prog uint32, location int32, value any) {
	for refVal := reflect.ValueOf(value); refVal.Kind() == reflect.Ptr; refVal = reflect.ValueOf(value) {
		value = refVal.Elem().Interface()
	}

	switch v := value.(type) {
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case bool:
		var b int32
		if v {
			b = 1
		}
		gl.ProgramUniform1i(prog, location, b)
	case mgl32.Vec2:
		gl.ProgramUniform2f(prog, location, v.X(), v.Y())
	case mgl32.Vec3:
		gl.ProgramUniform3f(prog, location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		gl.ProgramUniform4f(prog, location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat3:
		gl.ProgramUniformMatrix3fv(prog, location, 1, false, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	default:
		log.Panicf("Unsupported uniform type %T", value)
	}
}
