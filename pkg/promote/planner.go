package promote

import (
	"fmt"

	errUtils "github.com/fleetops/fleetctl/errors"
	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/doctree"
)

// Action is the planner's decision for a promotion step.
type Action int

const (
	// ActionCopy copies the patch to Plan.Location.
	ActionCopy Action = iota

	// ActionFinalIntegration signals that no further promotion position
	// exists: the patch is ready to be merged into base values by an explicit
	// consolidation step.
	ActionFinalIntegration
)

// Plan is the single next valid promotion step for a patch.
type Plan struct {
	Action Action

	// Location is the position to copy the patch to (ActionCopy only).
	Location dimension.Position

	// Source is the furthest existing copy, used as the copy source.
	Source dimension.Position
}

// Planner computes promotion plans. The promotion granularity is the least
// specific dimension level a promotion may land on; with the default of
// LevelSector, crossing into a new environment always lands on that
// environment's first sector, never on the bare environment position.
type Planner struct {
	tree        doctree.Tree
	model       *dimension.Model
	granularity dimension.Level
}

func NewPlanner(tree doctree.Tree, model *dimension.Model, granularity dimension.Level) *Planner {
	return &Planner{tree: tree, model: model, granularity: granularity}
}

// Plan locates the patch, validates its frontier, and returns the single next
// promotion step. It performs no mutation.
func (p *Planner) Plan(clusterType, app, patchID string) (*Plan, error) {
	locations, err := Locate(p.tree, p.model, clusterType, app, patchID)
	if err != nil {
		return nil, err
	}
	if err := CheckGaps(p.model, locations); err != nil {
		return nil, err
	}

	furthest := locations[len(locations)-1]

	reached := false
	for _, pos := range p.model.Positions() {
		if pos.Equal(furthest) {
			reached = true
			continue
		}
		if !reached {
			continue
		}
		if covered(pos, locations) {
			continue
		}
		if pos.Level < p.granularity {
			// Never land on a position less specific than the granularity.
			continue
		}

		// The position is not covered by the frontier; a stray copy here is a
		// hard conflict and nothing may be mutated.
		_, exists, err := p.tree.ReadPatch(clusterType, app, pos.Path, patchID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: `%s` already exists at `%s`", errUtils.ErrTargetConflict, patchID, pos)
		}

		return &Plan{Action: ActionCopy, Location: pos, Source: furthest}, nil
	}

	return &Plan{Action: ActionFinalIntegration, Source: furthest}, nil
}
