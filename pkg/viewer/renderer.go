package viewer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"europa/pkg/terrain"
)

// Shading holds the lighting inputs of the terrain shader
type Shading struct {
	SunDir  mgl32.Vec3
	Albedo  mgl32.Vec3
	Ambient float32
}

// TerrainRenderer owns the GPU copy of one mesh
type TerrainRenderer struct {
	program    uint32
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	viewProjLocation    int32
	sunLocation         int32
	albedoLocation      int32
	ambientLocation     int32
	heightRangeLocation int32

	heightRange [2]float32
}

// NewTerrainRenderer compiles the shaders and uploads mesh. A GL context
// must be current.
func NewTerrainRenderer(mesh *terrain.Mesh) (*TerrainRenderer, error) {
	vertices, err := Interleave(mesh)
	if err != nil {
		return nil, err
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("mesh has no triangles")
	}

	program, err := createShaderProgram(terrainVertexShader, terrainFragmentShader)
	if err != nil {
		return nil, err
	}

	r := &TerrainRenderer{
		program:    program,
		indexCount: int32(len(mesh.Indices)),
	}
	lo, hi := mesh.HeightRange()
	r.heightRange = [2]float32{lo, hi}

	r.viewProjLocation = gl.GetUniformLocation(program, gl.Str("viewProj\x00"))
	r.sunLocation = gl.GetUniformLocation(program, gl.Str("sunDir\x00"))
	r.albedoLocation = gl.GetUniformLocation(program, gl.Str("albedo\x00"))
	r.ambientLocation = gl.GetUniformLocation(program, gl.Str("ambient\x00"))
	r.heightRangeLocation = gl.GetUniformLocation(program, gl.Str("heightRange\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	// Position attribute
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Normal attribute
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(normalOffset))
	gl.EnableVertexAttribArray(1)
	// UV attribute
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(uvOffset))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	return r, nil
}

// Draw renders the mesh with the given combined view-projection matrix
func (r *TerrainRenderer) Draw(viewProj mgl32.Mat4, shading Shading) {
	gl.UseProgram(r.program)

	gl.UniformMatrix4fv(r.viewProjLocation, 1, false, &viewProj[0])
	sun := shading.SunDir.Normalize()
	gl.Uniform3f(r.sunLocation, sun[0], sun[1], sun[2])
	gl.Uniform3f(r.albedoLocation, shading.Albedo[0], shading.Albedo[1], shading.Albedo[2])
	gl.Uniform1f(r.ambientLocation, shading.Ambient)
	gl.Uniform2f(r.heightRangeLocation, r.heightRange[0], r.heightRange[1])

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// Close releases the GPU resources
func (r *TerrainRenderer) Close() {
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.program)
}

// createShaderProgram links a vertex and fragment shader into a program
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	// The linked program keeps its own copy
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a NUL-terminated GLSL source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}

	return shader, nil
}
