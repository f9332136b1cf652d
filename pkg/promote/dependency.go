package promote

import (
	"fmt"
	"reflect"

	errUtils "github.com/fleetops/fleetctl/errors"
	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/resolve"
	"github.com/fleetops/fleetctl/pkg/schema"
	"github.com/fleetops/fleetctl/pkg/utils"
)

// DependencyEvaluator checks a patch's declared preconditions against other
// applications' resolved configuration before a promotion is applied.
type DependencyEvaluator struct {
	resolver *resolve.Resolver
	model    *dimension.Model
}

func NewDependencyEvaluator(resolver *resolve.Resolver, model *dimension.Model) *DependencyEvaluator {
	return &DependencyEvaluator{resolver: resolver, model: model}
}

// Check evaluates every dependency assertion of the patch against every leaf
// target under the planned location. The first failing assertion is reported
// with the path and both values.
func (e *DependencyEvaluator) Check(clusterType string, patch *schema.PatchDocument, location dimension.Position) error {
	if len(patch.Metadata.Dependencies) == 0 {
		return nil
	}

	targets := e.model.TargetsUnder(location)
	for _, assertion := range patch.Metadata.Dependencies {
		for _, target := range targets {
			result, err := e.resolver.Resolve(clusterType, assertion.Application, target)
			if err != nil {
				return err
			}
			actual, _ := utils.GetValueByPath(result.Config, assertion.Path)
			if !reflect.DeepEqual(actual, assertion.Equals) {
				return fmt.Errorf("%w: patch `%s` requires `%s.%s` to equal `%v` at `%s`, got `%v`",
					errUtils.ErrDependencyUnmet, patch.ID, assertion.Application, assertion.Path,
					assertion.Equals, target, actual)
			}
		}
	}
	return nil
}
