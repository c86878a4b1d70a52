package shader

import (
	"errors"
	"fmt"
	"strings"
)

// Mode says how an Injection treats its anchor.
type Mode int

const (
	// After keeps the anchor and inserts the code after it.
	After Mode = iota
	// Before inserts the code ahead of the anchor.
	Before
	// Replace swaps the anchor for the code.
	Replace
)

// Injection is a block of GLSL spliced into one stage at a named anchor.
type Injection struct {
	Stage  Stage
	Anchor string // chunk name, e.g. "project_vertex"
	Mode   Mode
	Code   string
}

// AnchorError reports an anchor that is missing or ambiguous in a base program.
type AnchorError struct {
	Stage  Stage
	Anchor string
	Count  int
}

func (e *AnchorError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("%v: %s anchor %q not found", ErrUnsupportedBase, e.Stage, e.Anchor)
	}
	return fmt.Sprintf("%v: %s anchor %q found %d times", ErrUnsupportedBase, e.Stage, e.Anchor, e.Count)
}

// Unwrap lets errors.Is match ErrUnsupportedBase.
func (e *AnchorError) Unwrap() error {
	return ErrUnsupportedBase
}

// Validate checks that every injection's anchor occurs exactly once in src.
// All problems are reported together.
func Validate(src Source, injections ...Injection) error {
	var errs []error
	seen := make(map[Stage]map[string]bool)
	for _, inj := range injections {
		if seen[inj.Stage] == nil {
			seen[inj.Stage] = make(map[string]bool)
		}
		if seen[inj.Stage][inj.Anchor] {
			continue
		}
		seen[inj.Stage][inj.Anchor] = true

		if n := strings.Count(src.Get(inj.Stage), Anchor(inj.Anchor)); n != 1 {
			errs = append(errs, &AnchorError{Stage: inj.Stage, Anchor: inj.Anchor, Count: n})
		}
	}
	return errors.Join(errs...)
}

// Patch applies injections in order. It validates first and returns src
// untouched with an error if any anchor is unusable, so a program is never
// partially patched.
func Patch(src Source, injections ...Injection) (Source, error) {
	if err := Validate(src, injections...); err != nil {
		return src, err
	}

	out := src
	for _, inj := range injections {
		anchor := Anchor(inj.Anchor)
		text := out.Get(inj.Stage)
		// An earlier Replace on the same anchor removes it.
		if !strings.Contains(text, anchor) {
			return src, &AnchorError{Stage: inj.Stage, Anchor: inj.Anchor}
		}

		var repl string
		switch inj.Mode {
		case After:
			repl = anchor + "\n" + inj.Code
		case Before:
			repl = inj.Code + "\n" + anchor
		case Replace:
			repl = inj.Code
		default:
			return src, fmt.Errorf("injection at %q: unknown mode %d", inj.Anchor, inj.Mode)
		}
		out = out.With(inj.Stage, strings.Replace(text, anchor, repl, 1))
	}
	return out, nil
}
