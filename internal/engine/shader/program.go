package shader

import (
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/witchhut/internal/logger"
)

// Program is a linked shader program with its active uniform locations
// looked up once at link time.
type Program struct {
	Name string
	ID   uint32

	uniforms map[string]int32
}

// New compiles and links a program and caches its uniform locations.
func New(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	p := &Program{Name: name, ID: id}
	p.uniforms = activeUniforms(id)

	logger.Debug("shader program linked",
		zap.String("program", name),
		zap.Uint32("id", id),
		zap.Int("uniforms", len(p.uniforms)),
	)
	return p, nil
}

// activeUniforms maps every active uniform name to its location. Array
// uniforms get one entry per element ("lights[0]", "lights[1]", ...).
func activeUniforms(program uint32) map[string]int32 {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)

	locations := make(map[string]int32, count)
	buf := make([]byte, maxLen+1)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var kind uint32
		gl.GetActiveUniform(program, i, maxLen, &length, &size, &kind, &buf[0])
		name := string(buf[:length])

		if size > 1 && strings.HasSuffix(name, "[0]") {
			base := strings.TrimSuffix(name, "[0]")
			for e := int32(0); e < size; e++ {
				elem := base + "[" + strconv.Itoa(int(e)) + "]"
				locations[elem] = gl.GetUniformLocation(program, gl.Str(elem+"\x00"))
			}
			continue
		}
		locations[name] = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}
	return locations
}

// Location returns the cached location of name, or -1 when the program has
// no such active uniform.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// SetMat4 sets a mat4 uniform. Unknown names are skipped.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// SetMat3 sets a mat3 uniform. Unknown names are skipped.
func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	if loc := p.Location(name); loc >= 0 {
		gl.UniformMatrix3fv(loc, 1, false, &m[0])
	}
}

// SetVec3 sets a vec3 uniform. Unknown names are skipped.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform3fv(loc, 1, &v[0])
	}
}

// SetInt sets an int or sampler uniform. Unknown names are skipped.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
