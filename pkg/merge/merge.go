// Package merge implements the deep-merge algorithm for configuration
// documents. Mappings merge key by key; matching lists follow the list merge
// strategy the incoming document declares for their path (replace by default);
// any other type pair is a scalar overwrite where the incoming value wins.
package merge

import (
	"fmt"

	errUtils "github.com/fleetops/fleetctl/errors"
	"github.com/fleetops/fleetctl/pkg/schema"
)

const (
	ListMergeStrategyReplace = schema.ListMergeStrategyReplace
	ListMergeStrategyAppend  = schema.ListMergeStrategyAppend
)

// Options controls how one incoming document merges into a base document.
type Options struct {
	// Strategies maps dotted document paths to the list merge strategy of the
	// incoming document. Paths not present default to replace.
	Strategies map[string]string
}

func (o *Options) strategyFor(path string) string {
	if o == nil || o.Strategies == nil {
		return ListMergeStrategyReplace
	}
	if strategy, ok := o.Strategies[path]; ok {
		return strategy
	}
	return ListMergeStrategyReplace
}

// Deep merges incoming into base and returns a new document. Neither input is
// mutated: identical inputs always produce an identical output tree.
func Deep(base, incoming map[string]any, opts *Options) (map[string]any, error) {
	merged, err := mergeMaps(base, incoming, "", opts)
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func mergeMaps(base, incoming map[string]any, path string, opts *Options) (map[string]any, error) {
	result := make(map[string]any, len(base)+len(incoming))
	for k, v := range base {
		result[k] = copyValue(v)
	}

	for k, v := range incoming {
		childPath := joinPath(path, k)
		existing, ok := result[k]
		if !ok {
			result[k] = copyValue(v)
			continue
		}
		merged, err := mergeValues(existing, v, childPath, opts)
		if err != nil {
			return nil, err
		}
		result[k] = merged
	}

	return result, nil
}

func mergeValues(base, incoming any, path string, opts *Options) (any, error) {
	baseMap, baseIsMap := base.(map[string]any)
	incomingMap, incomingIsMap := incoming.(map[string]any)
	if baseIsMap && incomingIsMap {
		return mergeMaps(baseMap, incomingMap, path, opts)
	}

	baseList, baseIsList := base.([]any)
	incomingList, incomingIsList := incoming.([]any)
	if baseIsList && incomingIsList {
		return mergeLists(baseList, incomingList, path, opts)
	}

	// Any other type pair is a scalar overwrite: the incoming value wins.
	return copyValue(incoming), nil
}

func mergeLists(base, incoming []any, path string, opts *Options) (any, error) {
	switch strategy := opts.strategyFor(path); strategy {
	case ListMergeStrategyReplace:
		return copyList(incoming), nil
	case ListMergeStrategyAppend:
		// Append does not deduplicate: an element present in both lists
		// appears twice.
		result := copyList(base)
		return append(result, copyList(incoming)...), nil
	default:
		return nil, fmt.Errorf("%w: `%s` for path `%s`", errUtils.ErrUnknownListMergeStrategy, strategy, path)
	}
}

func copyValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, item := range typed {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		return copyList(typed)
	default:
		return v
	}
}

func copyList(list []any) []any {
	out := make([]any, 0, len(list))
	for _, item := range list {
		out = append(out, copyValue(item))
	}
	return out
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
