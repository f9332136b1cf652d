// Package resolve computes the fully merged configuration of one application
// for one deployment target: cluster-type defaults, base values, then for each
// dimension level from environment down to region the level's override
// followed by its patches in ascending identifier order.
package resolve

import (
	"fmt"

	errUtils "github.com/fleetops/fleetctl/errors"
	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/doctree"
	"github.com/fleetops/fleetctl/pkg/merge"
	"github.com/fleetops/fleetctl/pkg/schema"
)

// ConflictReport names two patches at the same dimension node that write
// overlapping configuration paths. Conflicts never fail resolution: the patch
// later in identifier order wins.
type ConflictReport struct {
	LevelPath []string
	PatchA    string
	PatchB    string
	Paths     []string
}

// Result is the merged configuration for one (cluster-type, application,
// target), plus any conflicts observed while merging.
type Result struct {
	Config    map[string]any
	Conflicts []ConflictReport
}

// Resolver resolves application configuration against a document tree. It
// never mutates the tree and is safe for concurrent read-only use.
type Resolver struct {
	tree  doctree.Tree
	model *dimension.Model
}

func NewResolver(tree doctree.Tree, model *dimension.Model) *Resolver {
	return &Resolver{tree: tree, model: model}
}

// Resolve merges all documents contributing to the application's
// configuration at the given target, in strict precedence order.
func (r *Resolver) Resolve(clusterType, app string, target dimension.Target) (*Result, error) {
	merged := map[string]any{}

	defaults, ok, err := r.tree.ReadDefaults(clusterType)
	if err != nil {
		return nil, err
	}
	if ok {
		if merged, err = merge.Deep(merged, defaults, nil); err != nil {
			return nil, err
		}
	}

	values, ok, err := r.tree.ReadValues(clusterType, app)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: `%s/%s`", errUtils.ErrMissingBaseValues, clusterType, app)
	}
	if merged, err = merge.Deep(merged, values, nil); err != nil {
		return nil, err
	}

	result := &Result{}
	targetPath := target.Path()
	for depth := 1; depth <= len(targetPath); depth++ {
		levelPath := targetPath[:depth]
		if merged, err = r.mergeLevel(merged, result, clusterType, app, levelPath); err != nil {
			return nil, err
		}
	}

	result.Config = merged
	return result, nil
}

// mergeLevel applies one dimension node: its override document first, then its
// patches in ascending identifier order, recording conflicts between patch
// pairs at this node.
func (r *Resolver) mergeLevel(merged map[string]any, result *Result, clusterType, app string, levelPath []string) (map[string]any, error) {
	override, ok, err := r.tree.ReadOverride(clusterType, app, levelPath)
	if err != nil {
		return nil, err
	}
	if ok {
		if merged, err = merge.Deep(merged, override, nil); err != nil {
			return nil, err
		}
	}

	patchIDs, err := r.tree.ListPatches(clusterType, app, levelPath)
	if err != nil {
		return nil, err
	}

	type appliedPatch struct {
		id    string
		paths []string
	}
	var applied []appliedPatch

	for _, patchID := range patchIDs {
		doc, ok, err := r.tree.ReadPatch(clusterType, app, levelPath, patchID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		patch, err := schema.ParsePatch(patchID, doc)
		if err != nil {
			return nil, err
		}

		paths := merge.LeafPaths(patch.Content)
		for _, prior := range applied {
			overlap := merge.IntersectPaths(prior.paths, paths)
			if len(overlap) > 0 {
				result.Conflicts = append(result.Conflicts, ConflictReport{
					LevelPath: levelPath,
					PatchA:    prior.id,
					PatchB:    patchID,
					Paths:     overlap,
				})
			}
		}
		applied = append(applied, appliedPatch{id: patchID, paths: paths})

		if merged, err = merge.Deep(merged, patch.Content, &merge.Options{Strategies: patch.Metadata.ListMerge}); err != nil {
			return nil, err
		}
	}

	return merged, nil
}
