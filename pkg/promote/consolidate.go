package promote

import (
	"errors"
	"fmt"

	errUtils "github.com/fleetops/fleetctl/errors"
	log "github.com/fleetops/fleetctl/pkg/logger"

	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/doctree"
	"github.com/fleetops/fleetctl/pkg/merge"
	"github.com/fleetops/fleetctl/pkg/schema"
)

// Consolidate cascades a patch upward: whenever every leaf beneath a
// dimension node is covered by the patch, the patch is copied to that node and
// all copies beneath it are deleted. When every environment root holds the
// patch, its content is merged into the application's base values and the
// remaining copies are deleted (final integration, terminal and irreversible).
// Every step validates fully before mutating anything; a patch that exists
// nowhere is not an error here.
//
// Returns true when final integration was performed.
func Consolidate(tree doctree.Tree, model *dimension.Model, clusterType, app, patchID string) (bool, error) {
	for {
		locations, err := Locate(tree, model, clusterType, app, patchID)
		if err != nil {
			if errors.Is(err, errUtils.ErrPatchNotFound) {
				return false, nil
			}
			return false, err
		}

		candidate, ok := findConsolidation(model, locations)
		if !ok {
			return finalIntegration(tree, model, clusterType, app, patchID, locations)
		}
		if err := applyConsolidation(tree, clusterType, app, patchID, candidate, locations); err != nil {
			return false, err
		}
	}
}

// findConsolidation returns the deepest non-leaf position not yet covered
// whose leaves are all covered by the patch's locations.
func findConsolidation(model *dimension.Model, locations []dimension.Position) (dimension.Position, bool) {
	var best dimension.Position
	found := false

	for _, pos := range model.Positions() {
		if pos.Level == dimension.LevelRegion {
			continue
		}
		if covered(pos, locations) {
			continue
		}
		leaves := leavesUnder(model, pos)
		if len(leaves) == 0 {
			continue
		}
		allCovered := true
		for _, leaf := range leaves {
			if !covered(leaf, locations) {
				allCovered = false
				break
			}
		}
		if !allCovered {
			continue
		}
		if !found || len(pos.Path) > len(best.Path) {
			best = pos
			found = true
		}
	}

	return best, found
}

func leavesUnder(model *dimension.Model, pos dimension.Position) []dimension.Position {
	var leaves []dimension.Position
	for _, p := range model.Positions() {
		if p.Level == dimension.LevelRegion && pos.Covers(p) {
			leaves = append(leaves, p)
		}
	}
	return leaves
}

// applyConsolidation copies the patch to the candidate position and deletes
// every copy beneath it. The source document is read and the new copy written
// before any deletion.
func applyConsolidation(tree doctree.Tree, clusterType, app, patchID string, candidate dimension.Position, locations []dimension.Position) error {
	var children []dimension.Position
	for _, loc := range locations {
		if candidate.Covers(loc) && !candidate.Equal(loc) {
			children = append(children, loc)
		}
	}
	if len(children) == 0 {
		return fmt.Errorf("%w: no copies of `%s` under `%s`", errUtils.ErrPatchNotFound, patchID, candidate)
	}

	source := children[0]
	doc, ok, err := tree.ReadPatch(clusterType, app, source.Path, patchID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: `%s` at `%s`", errUtils.ErrPatchNotFound, patchID, source)
	}

	if err := tree.WritePatch(clusterType, app, candidate.Path, patchID, doc); err != nil {
		return err
	}
	for _, child := range children {
		if err := tree.DeletePatch(clusterType, app, child.Path, patchID); err != nil {
			return err
		}
	}

	log.Debug("Consolidated patch", "patch", patchID, "to", candidate.String(), "replacing", len(children))
	return nil
}

// finalIntegration merges the patch into base values once every environment
// root holds a copy, then deletes the remaining copies.
func finalIntegration(tree doctree.Tree, model *dimension.Model, clusterType, app, patchID string, locations []dimension.Position) (bool, error) {
	var envRoots []dimension.Position
	for _, loc := range locations {
		if loc.Level == dimension.LevelEnvironment {
			envRoots = append(envRoots, loc)
		}
	}
	if len(envRoots) != len(model.Environments()) {
		return false, nil
	}

	doc, ok, err := tree.ReadPatch(clusterType, app, envRoots[0].Path, patchID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: `%s` at `%s`", errUtils.ErrPatchNotFound, patchID, envRoots[0])
	}
	patch, err := schema.ParsePatch(patchID, doc)
	if err != nil {
		return false, err
	}

	values, ok, err := tree.ReadValues(clusterType, app)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: `%s/%s`", errUtils.ErrMissingBaseValues, clusterType, app)
	}

	merged, err := merge.Deep(values, patch.Content, &merge.Options{Strategies: patch.Metadata.ListMerge})
	if err != nil {
		return false, err
	}

	if err := tree.WriteValues(clusterType, app, merged); err != nil {
		return false, err
	}
	for _, root := range envRoots {
		if err := tree.DeletePatch(clusterType, app, root.Path, patchID); err != nil {
			return false, err
		}
	}

	log.Info("Integrated patch into base values", "patch", patchID, "application", app)
	return true, nil
}
