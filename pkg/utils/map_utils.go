package utils

import "strings"

// GetValueByPath looks up a dotted path (e.g. `applications.vpn.image.tag`)
// in a nested map. The second return value reports whether the full path
// exists.
func GetValueByPath(data map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	keys := strings.Split(path, ".")
	var current any = data

	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}

	return current, true
}
