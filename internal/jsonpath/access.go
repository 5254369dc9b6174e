package jsonpath

// Get walks the path against root and returns the value at the end, along with
// whether it resolved. A missing property, an out-of-range index, a nil
// intermediate, or a property lookup on a non-object all yield (nil, false);
// traversal never fails with an error and never mutates root.
func Get(root any, path *Path) (any, bool) {
	cur := root
	for _, seg := range path.segments {
		if cur == nil {
			return nil, false
		}

		if seg.IsIndex {
			arr, ok := cur.([]any)
			if !ok {
				return nil, false
			}
			if seg.Index >= len(arr) {
				return nil, false
			}
			cur = arr[seg.Index]
			continue
		}

		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := obj[seg.Property]
		if !ok {
			return nil, false
		}
		cur = next
	}

	return cur, true
}

// GetString resolves the path and asserts the result is a string.
func GetString(root any, path *Path) (string, bool) {
	value, ok := Get(root, path)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// IsValid reports whether every hop of the path is traversable against root:
// each property segment finds its key on an object and each index segment is
// in range on an array. The final value may be anything, including nil.
func IsValid(root any, path *Path) bool {
	cur := root
	for _, seg := range path.segments {
		if seg.IsIndex {
			arr, isArr := cur.([]any)
			if !isArr || seg.Index >= len(arr) {
				return false
			}
			cur = arr[seg.Index]
			continue
		}

		obj, isObj := cur.(map[string]any)
		if !isObj {
			return false
		}
		next, present := obj[seg.Property]
		if !present {
			return false
		}
		cur = next
	}

	return true
}

// Set returns a new value structurally equivalent to root with value written at
// path. The caller's root is never mutated. Missing intermediate containers are
// created (an array when the next segment is an index, an object otherwise),
// and arrays shorter than a required index are extended with empty-object
// placeholders. Writing through an existing scalar, or indexing into a
// non-array, fails with InvalidPathTargetError.
func Set(root any, path *Path, value any) (any, error) {
	return write(Clone(root), path, path.segments, value)
}

func write(cur any, path *Path, segs []Segment, value any) (any, error) {
	if len(segs) == 0 {
		return value, nil
	}

	seg := segs[0]
	if seg.IsIndex {
		return writeIndex(cur, path, segs, value)
	}
	return writeProperty(cur, path, segs, value)
}

func writeProperty(cur any, path *Path, segs []Segment, value any) (any, error) {
	seg := segs[0]

	obj, ok := cur.(map[string]any)
	if !ok {
		if cur != nil {
			return nil, &InvalidPathTargetError{
				Path:    path.source,
				Segment: seg.Property,
				Reason:  "cannot set property on non-object value",
			}
		}
		obj = make(map[string]any)
	}

	child := obj[seg.Property]
	if child == nil && len(segs) > 1 {
		child = emptyContainerFor(segs[1])
	}

	written, err := write(child, path, segs[1:], value)
	if err != nil {
		return nil, err
	}

	obj[seg.Property] = written
	return obj, nil
}

func writeIndex(cur any, path *Path, segs []Segment, value any) (any, error) {
	seg := segs[0]

	arr, ok := cur.([]any)
	if !ok {
		if cur != nil {
			return nil, &InvalidPathTargetError{
				Path:    path.source,
				Segment: path.source,
				Reason:  "cannot index into non-array value",
			}
		}
		arr = make([]any, 0, seg.Index+1)
	}

	for len(arr) <= seg.Index {
		arr = append(arr, map[string]any{})
	}

	child := arr[seg.Index]
	if child == nil && len(segs) > 1 {
		child = emptyContainerFor(segs[1])
	}

	written, err := write(child, path, segs[1:], value)
	if err != nil {
		return nil, err
	}

	arr[seg.Index] = written
	return arr, nil
}

func emptyContainerFor(next Segment) any {
	if next.IsIndex {
		return []any{}
	}
	return map[string]any{}
}

// Merge shallow-merges fragment over the object at path and returns a new root.
// A nil path merges into the root object itself. The object at the target is
// treated as empty when absent. Fragment keys always win on conflict.
func Merge(root any, path *Path, fragment map[string]any) (any, error) {
	if path == nil || len(path.segments) == 0 {
		obj, ok := Clone(root).(map[string]any)
		if !ok {
			if root != nil {
				return nil, &InvalidPathTargetError{
					Path:   "",
					Reason: "cannot merge into non-object root",
				}
			}
			obj = make(map[string]any)
		}
		for k, v := range fragment {
			obj[k] = Clone(v)
		}
		return obj, nil
	}

	merged := make(map[string]any)
	if existing, ok := Get(root, path); ok {
		obj, isObj := existing.(map[string]any)
		if !isObj {
			return nil, &InvalidPathTargetError{
				Path:   path.source,
				Reason: "cannot merge into non-object value",
			}
		}
		for k, v := range obj {
			merged[k] = Clone(v)
		}
	}
	for k, v := range fragment {
		merged[k] = Clone(v)
	}

	return Set(root, path, merged)
}

// Clone returns a deep structural copy of a JSON value (map[string]any, []any,
// or scalar). Scalars are returned as-is.
func Clone(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = Clone(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Clone(item)
		}
		return out
	default:
		return v
	}
}
