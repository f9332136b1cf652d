// Package promote implements the patch lifecycle: locating a patch's copies
// across the dimension tree, validating that its frontier is gap-free,
// planning the next promotion step, evaluating declared dependencies, and
// consolidating copies upward until final integration into base values.
package promote

import (
	"fmt"
	"slices"

	errUtils "github.com/fleetops/fleetctl/errors"
	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/doctree"
)

// Locate returns every position currently holding the named patch, in
// promotion order. It fails with ErrPatchNotFound when the patch exists
// nowhere.
func Locate(tree doctree.Tree, model *dimension.Model, clusterType, app, patchID string) ([]dimension.Position, error) {
	var locations []dimension.Position
	for _, pos := range model.Positions() {
		ids, err := tree.ListPatches(clusterType, app, pos.Path)
		if err != nil {
			return nil, err
		}
		if slices.Contains(ids, patchID) {
			locations = append(locations, pos)
		}
	}

	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: `%s` for `%s/%s`", errUtils.ErrPatchNotFound, patchID, clusterType, app)
	}
	return locations, nil
}

// covered reports whether some location equals pos or is one of its ancestors.
func covered(pos dimension.Position, locations []dimension.Position) bool {
	for _, loc := range locations {
		if loc.Covers(pos) {
			return true
		}
	}
	return false
}
