package shader

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

// includePattern matches a whole-line include directive.
var includePattern = regexp.MustCompile(`(?m)^[ \t]*#include <(\w+)>[ \t]*$`)

// maxIncludeDepth bounds recursive expansion.
const maxIncludeDepth = 16

// Library maps chunk names to GLSL text.
type Library map[string]string

// LoadLibrary reads every *.glsl file under dir in fsys; the file name
// without extension is the chunk name.
func LoadLibrary(fsys fs.FS, dir string) (Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading chunk dir %s: %w", dir, err)
	}
	lib := make(Library, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".glsl" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading chunk %s: %w", e.Name(), err)
		}
		lib[strings.TrimSuffix(e.Name(), ".glsl")] = string(data)
	}
	return lib, nil
}

// Clone returns a shallow copy that can be extended without touching l.
func (l Library) Clone() Library {
	out := make(Library, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Expand replaces every include directive in text with its chunk, recursively.
// An unknown chunk or an include cycle is an error wrapping ErrUnsupportedBase.
func (l Library) Expand(text string) (string, error) {
	return l.expand(text, nil)
}

func (l Library) expand(text string, stack []string) (string, error) {
	if len(stack) > maxIncludeDepth {
		return "", fmt.Errorf("%w: include depth exceeded at %s", ErrUnsupportedBase, strings.Join(stack, " > "))
	}

	var firstErr error
	out := includePattern.ReplaceAllStringFunc(text, func(directive string) string {
		if firstErr != nil {
			return directive
		}
		name := includePattern.FindStringSubmatch(directive)[1]
		for _, s := range stack {
			if s == name {
				firstErr = fmt.Errorf("%w: include cycle %s > %s", ErrUnsupportedBase, strings.Join(stack, " > "), name)
				return directive
			}
		}
		chunk, ok := l[name]
		if !ok {
			firstErr = fmt.Errorf("%w: unknown chunk %q", ErrUnsupportedBase, name)
			return directive
		}
		expanded, err := l.expand(chunk, append(stack, name))
		if err != nil {
			firstErr = err
			return directive
		}
		return expanded
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// Resolve expands includes in both stages of src.
func (l Library) Resolve(src Source) (Source, error) {
	vert, err := l.Expand(src.Vertex)
	if err != nil {
		return Source{}, fmt.Errorf("vertex: %w", err)
	}
	frag, err := l.Expand(src.Fragment)
	if err != nil {
		return Source{}, fmt.Errorf("fragment: %w", err)
	}
	return Source{Vertex: vert, Fragment: frag}, nil
}
