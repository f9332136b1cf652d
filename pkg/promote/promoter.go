package promote

import (
	"fmt"

	errUtils "github.com/fleetops/fleetctl/errors"
	log "github.com/fleetops/fleetctl/pkg/logger"

	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/doctree"
	"github.com/fleetops/fleetctl/pkg/lock"
	"github.com/fleetops/fleetctl/pkg/resolve"
	"github.com/fleetops/fleetctl/pkg/schema"
)

// Outcome describes what one promote invocation did.
type Outcome struct {
	// Plan is the step that was planned for this invocation.
	Plan *Plan

	// Integrated is true when the patch was merged into base values.
	Integrated bool
}

// Promoter runs the full promotion pipeline for one patch: locate, gap check,
// plan, dependency check, copy, consolidate. All validation happens before the
// first mutation, and the whole pipeline runs under the application's advisory
// lock.
type Promoter struct {
	tree      doctree.Tree
	model     *dimension.Model
	planner   *Planner
	evaluator *DependencyEvaluator
	locker    lock.Locker
}

func NewPromoter(tree doctree.Tree, model *dimension.Model, resolver *resolve.Resolver, granularity dimension.Level, locker lock.Locker) *Promoter {
	return &Promoter{
		tree:      tree,
		model:     model,
		planner:   NewPlanner(tree, model, granularity),
		evaluator: NewDependencyEvaluator(resolver, model),
		locker:    locker,
	}
}

// Promote advances the named patch by one step.
func (p *Promoter) Promote(clusterType, app, patchID string) (*Outcome, error) {
	var outcome *Outcome
	lockName := fmt.Sprintf("fleet-%s-%s", clusterType, app)
	err := p.locker.WithLock(lockName, func() error {
		var err error
		outcome, err = p.promote(clusterType, app, patchID)
		return err
	})
	return outcome, err
}

func (p *Promoter) promote(clusterType, app, patchID string) (*Outcome, error) {
	plan, err := p.planner.Plan(clusterType, app, patchID)
	if err != nil {
		return nil, err
	}
	outcome := &Outcome{Plan: plan}

	if plan.Action == ActionCopy {
		doc, ok, err := p.tree.ReadPatch(clusterType, app, plan.Source.Path, patchID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: `%s` at `%s`", errUtils.ErrPatchNotFound, patchID, plan.Source)
		}

		patch, err := schema.ParsePatch(patchID, doc)
		if err != nil {
			return nil, err
		}
		if err := p.evaluator.Check(clusterType, patch, plan.Location); err != nil {
			return nil, err
		}

		if err := p.tree.WritePatch(clusterType, app, plan.Location.Path, patchID, doc); err != nil {
			return nil, err
		}
		log.Info("Promoted patch", "patch", patchID, "application", app, "to", plan.Location.String())
	}

	integrated, err := Consolidate(p.tree, p.model, clusterType, app, patchID)
	if err != nil {
		return nil, err
	}
	outcome.Integrated = integrated
	return outcome, nil
}
