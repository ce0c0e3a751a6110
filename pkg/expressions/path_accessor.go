package expressions

import (
	"strconv"
	"strings"
)

// PathAccessor resolves dotted property paths with optional array indices
// (e.g. "parts[0].text") against item data.
type PathAccessor struct{}

func NewPathAccessor() *PathAccessor {
	return &PathAccessor{}
}

// Get retrieves the value at path from source. The second return value
// reports whether the full path resolved.
func (a *PathAccessor) Get(source any, path string) (any, bool) {
	segments := parsePath(path)
	if len(segments) == 0 {
		return nil, false
	}

	current := source

	for _, segment := range segments {
		if segment.isIndex {
			list, ok := current.([]any)
			if !ok || segment.index < 0 || segment.index >= len(list) {
				return nil, false
			}

			current = list[segment.index]
			continue
		}

		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		value, exists := object[segment.key]
		if !exists {
			return nil, false
		}

		current = value
	}

	return current, true
}

type pathSegment struct {
	key     string
	index   int
	isIndex bool
}

func parsePath(path string) []pathSegment {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	segments := []pathSegment{}

	for _, part := range strings.Split(path, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil
		}

		key := part

		// Split off trailing [i][j]... index accessors.
		var indices []int

		for strings.HasSuffix(key, "]") {
			open := strings.LastIndex(key, "[")
			if open < 0 {
				return nil
			}

			index, err := strconv.Atoi(key[open+1 : len(key)-1])
			if err != nil {
				return nil
			}

			indices = append([]int{index}, indices...)
			key = key[:open]
		}

		if key != "" {
			segments = append(segments, pathSegment{key: key})
		}

		for _, index := range indices {
			segments = append(segments, pathSegment{index: index, isIndex: true})
		}
	}

	return segments
}
