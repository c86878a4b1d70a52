// Package shader composes GLSL programs from a base source with named include
// anchors, patches custom code in at those anchors, and compiles the result.
package shader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Compile compiles both stages of a fully resolved Source and links them.
// Compile errors quote the offending source line, since patched programs
// rarely match any file on disk.
func Compile(src Source) (uint32, error) {
	vert, err := compileStage(Vertex, src.Vertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(Fragment, src.Fragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(string(log), "\x00\n"))
	}
	return program, nil
}

func compileStage(stage Stage, text string) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == Fragment {
		kind = gl.FRAGMENT_SHADER
	}

	sh := gl.CreateShader(kind)
	csource, free := gl.Strs(text + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetShaderInfoLog(sh, logLen, nil, &log[0])
		gl.DeleteShader(sh)
		msg := strings.TrimRight(string(log), "\x00\n")
		return 0, fmt.Errorf("%s shader: %s", stage, annotate(text, msg))
	}
	return sh, nil
}

// Drivers report "0:12(3)", "0(12)" or "ERROR: 0:12:".
var logLine = regexp.MustCompile(`\b0[:(](\d+)`)

// annotate appends the source line the first log entry points at.
func annotate(text, log string) string {
	m := logLine.FindStringSubmatch(log)
	if m == nil {
		return log
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return log
	}
	lines := strings.Split(text, "\n")
	if n < 1 || n > len(lines) {
		return log
	}
	return fmt.Sprintf("%s\n  %d | %s", log, n, strings.TrimSpace(lines[n-1]))
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or was optimized out.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
