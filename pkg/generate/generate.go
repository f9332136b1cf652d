// Package generate resolves the merged configuration of every application for
// every target and renders the per-target output. Conflict reports are logged
// as warnings and never fail a run; re-running over unchanged input documents
// produces byte-identical output.
package generate

import (
	"context"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/spf13/afero"

	log "github.com/fleetops/fleetctl/pkg/logger"

	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/doctree"
	"github.com/fleetops/fleetctl/pkg/resolve"
	"github.com/fleetops/fleetctl/pkg/utils"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Generator drives fleet-wide resolution and rendering.
type Generator struct {
	tree        doctree.Tree
	model       *dimension.Model
	resolver    *resolve.Resolver
	renderer    Renderer
	outFs       afero.Fs
	renderedDir string
}

func NewGenerator(tree doctree.Tree, model *dimension.Model, renderer Renderer, outFs afero.Fs, renderedDir string) *Generator {
	return &Generator{
		tree:        tree,
		model:       model,
		resolver:    resolve.NewResolver(tree, model),
		renderer:    renderer,
		outFs:       outFs,
		renderedDir: renderedDir,
	}
}

// Generate resolves and renders every (cluster type, target) combination.
func (g *Generator) Generate(ctx context.Context, clusterTypes []string) error {
	for _, clusterType := range clusterTypes {
		for _, target := range g.model.Targets() {
			if err := g.generateTarget(ctx, clusterType, target); err != nil {
				return err
			}
		}
	}
	return nil
}

// generateTarget resolves every application of the cluster type for one
// target, folds the results into a single values document, writes it, and
// invokes the renderer.
func (g *Generator) generateTarget(ctx context.Context, clusterType string, target dimension.Target) error {
	log.Debug("Generating target", "cluster_type", clusterType, "target", target.String())

	apps, err := g.tree.ListApplications(clusterType)
	if err != nil {
		return err
	}

	targetValues := map[string]any{}
	for _, app := range apps {
		result, err := g.resolver.Resolve(clusterType, app, target)
		if err != nil {
			return err
		}
		for _, conflict := range result.Conflicts {
			log.Warn("Patches write overlapping paths",
				"cluster_type", clusterType,
				"application", app,
				"node", strings.Join(conflict.LevelPath, "/"),
				"patches", conflict.PatchA+", "+conflict.PatchB,
				"paths", strings.Join(conflict.Paths, ", "))
		}
		if err := mergo.Merge(&targetValues, result.Config, mergo.WithOverride); err != nil {
			return err
		}
	}

	outputDir := filepath.Join(append([]string{g.renderedDir, clusterType}, target.Path()...)...)
	valuesYAML, err := utils.ConvertToYAML(targetValues)
	if err != nil {
		return err
	}
	if err := g.outFs.MkdirAll(outputDir, dirPermissions); err != nil {
		return err
	}
	if err := afero.WriteFile(g.outFs, filepath.Join(outputDir, "values.yaml"), []byte(valuesYAML), filePermissions); err != nil {
		return err
	}

	return g.renderer.Render(ctx, clusterType, target, targetValues, outputDir)
}
