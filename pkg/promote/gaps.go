package promote

import (
	"fmt"

	errUtils "github.com/fleetops/fleetctl/errors"
	"github.com/fleetops/fleetctl/pkg/dimension"
)

// CheckGaps validates that a patch's locations are prefix-closed relative to
// the promotion order: every complete (region-level) position at or before the
// furthest location must be covered by a location at its own level or an
// ancestor level. The first uncovered position is reported. Locations must be
// in promotion order, as returned by Locate.
func CheckGaps(model *dimension.Model, locations []dimension.Position) error {
	if len(locations) == 0 {
		return nil
	}
	furthest := locations[len(locations)-1]

	for _, pos := range model.Positions() {
		if pos.Equal(furthest) {
			break
		}
		if pos.Level != dimension.LevelRegion {
			// Intermediate positions are covered implicitly by their leaves.
			continue
		}
		if !covered(pos, locations) {
			return fmt.Errorf("%w: patch exists at `%s` but is missing from `%s`", errUtils.ErrPromotionGap, furthest, pos)
		}
	}
	return nil
}
