package shader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedBase is returned when a base program does not expose the
// anchors or chunks a patch expects, usually a version mismatch between the
// base program and the code patched into it.
var ErrUnsupportedBase = errors.New("unsupported base shader version")

// Stage identifies a pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Source holds the GLSL text of both stages.
type Source struct {
	Vertex   string
	Fragment string
}

// Get returns the text of one stage.
func (s Source) Get(stage Stage) string {
	if stage == Fragment {
		return s.Fragment
	}
	return s.Vertex
}

// With returns a copy of s with one stage replaced.
func (s Source) With(stage Stage, text string) Source {
	if stage == Fragment {
		s.Fragment = text
	} else {
		s.Vertex = text
	}
	return s
}

// Anchor returns the include directive that marks an insertion point.
func Anchor(name string) string {
	return "#include <" + name + ">"
}

// WithDefines inserts #define lines right after the #version line of both
// stages (or at the top when there is none).
func (s Source) WithDefines(defines ...string) Source {
	if len(defines) == 0 {
		return s
	}
	var b strings.Builder
	for _, d := range defines {
		b.WriteString("#define ")
		b.WriteString(d)
		b.WriteByte('\n')
	}
	block := b.String()
	insert := func(text string) string {
		if strings.HasPrefix(text, "#version") {
			if i := strings.IndexByte(text, '\n'); i >= 0 {
				return text[:i+1] + block + text[i+1:]
			}
			return text + "\n" + block
		}
		return block + text
	}
	return Source{Vertex: insert(s.Vertex), Fragment: insert(s.Fragment)}
}
