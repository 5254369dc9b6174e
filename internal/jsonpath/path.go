// Package jsonpath implements the restricted path grammar used by declarative
// provider descriptions: dotted property access plus single-level `name[index]`
// array indexing (e.g. "messages[0].content"). It is deliberately not a general
// JSONPath engine; wildcards and filters are out of scope.
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Segment is a single hop of a parsed path: either a property lookup on an
// object or an index into an array.
type Segment struct {
	Property string
	Index    int
	IsIndex  bool
}

// Path is an immutable parsed path expression. Safe to share and to cache by
// its source string.
type Path struct {
	source   string
	segments []Segment
}

// String returns the original path string.
func (p *Path) String() string {
	return p.source
}

// Segments returns the parsed segments. Callers must not modify the slice.
func (p *Path) Segments() []Segment {
	return p.segments
}

// MalformedPathError indicates a path string that violates the grammar.
type MalformedPathError struct {
	Path   string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q: %s", e.Path, e.Reason)
}

// InvalidPathTargetError indicates a write that cannot proceed because an
// existing intermediate value is incompatible with the path (scalar where a
// container is needed, or a non-array where an index is required).
type InvalidPathTargetError struct {
	Path    string
	Segment string
	Reason  string
}

func (e *InvalidPathTargetError) Error() string {
	return fmt.Sprintf("invalid target at %q in path %q: %s", e.Segment, e.Path, e.Reason)
}

// Parsed paths are cached by source string; Path is immutable so sharing is safe.
//
//nolint:gochecknoglobals // Package-level parse cache is intentional.
var parseCache sync.Map

// Parse parses a path string into a Path. Results are cached, so repeated
// parsing of the same provider description strings is cheap.
func Parse(path string) (*Path, error) {
	if cached, ok := parseCache.Load(path); ok {
		return cached.(*Path), nil
	}

	parsed, err := parse(path)
	if err != nil {
		return nil, err
	}

	parseCache.Store(path, parsed)
	return parsed, nil
}

// MustParse parses a path string and panics on failure. Reserved for
// compile-time-constant paths in built-in provider descriptions.
func MustParse(path string) *Path {
	parsed, err := Parse(path)
	if err != nil {
		panic(err)
	}
	return parsed
}

func parse(path string) (*Path, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &MalformedPathError{Path: path, Reason: "path cannot be empty"}
	}

	parts := strings.Split(path, ".")
	segments := make([]Segment, 0, len(parts)+1)

	for _, part := range parts {
		if part == "" {
			return nil, &MalformedPathError{Path: path, Reason: "empty segment"}
		}

		open := strings.IndexByte(part, '[')
		if open < 0 {
			if strings.ContainsAny(part, "]") {
				return nil, &MalformedPathError{Path: path, Reason: fmt.Sprintf("mismatched bracket in %q", part)}
			}
			segments = append(segments, Segment{Property: part})
			continue
		}

		// name[index] form: the bracket must close at the end of the segment
		// and the indexed array must be named (bare leading indices are not
		// part of the grammar).
		name := part[:open]
		if name == "" {
			return nil, &MalformedPathError{Path: path, Reason: fmt.Sprintf("bare array index in %q", part)}
		}
		if !strings.HasSuffix(part, "]") {
			return nil, &MalformedPathError{Path: path, Reason: fmt.Sprintf("mismatched bracket in %q", part)}
		}

		inner := part[open+1 : len(part)-1]
		if strings.ContainsAny(inner, "[]") {
			return nil, &MalformedPathError{Path: path, Reason: fmt.Sprintf("nested brackets in %q", part)}
		}

		idx, err := strconv.Atoi(inner)
		if err != nil {
			return nil, &MalformedPathError{Path: path, Reason: fmt.Sprintf("non-numeric index in %q", part)}
		}
		if idx < 0 {
			return nil, &MalformedPathError{Path: path, Reason: fmt.Sprintf("negative index in %q", part)}
		}

		segments = append(segments, Segment{Property: name})
		segments = append(segments, Segment{Index: idx, IsIndex: true})
	}

	return &Path{source: path, segments: segments}, nil
}
