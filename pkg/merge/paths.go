package merge

import "sort"

// LeafPaths returns the sorted dotted paths a document writes. Scalars and
// lists are leaves; an empty mapping is a leaf as well, since writing it still
// claims the path.
func LeafPaths(doc map[string]any) []string {
	paths := collectLeafPaths(doc, "")
	sort.Strings(paths)
	return paths
}

func collectLeafPaths(doc map[string]any, prefix string) []string {
	if len(doc) == 0 && prefix != "" {
		return []string{prefix}
	}

	var paths []string
	for k, v := range doc {
		path := joinPath(prefix, k)
		if child, ok := v.(map[string]any); ok {
			paths = append(paths, collectLeafPaths(child, path)...)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// IntersectPaths returns the sorted intersection of two sorted path lists.
func IntersectPaths(a, b []string) []string {
	var out []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
