package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/fleetops/fleetctl/errors"
	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/doctree"
	"github.com/fleetops/fleetctl/pkg/schema"
	"github.com/fleetops/fleetctl/pkg/utils"
)

const (
	clusterType = "management-cluster"
	app         = "vpn"
)

func testModel(t *testing.T) *dimension.Model {
	t.Helper()
	model, err := dimension.NewModel(schema.Topology{
		Environments: []schema.Environment{
			{
				Name: "integration",
				Sectors: []schema.Sector{
					{
						Name:    "int-sector-1",
						Regions: []schema.Region{{Name: "us-central1"}, {Name: "us-east1"}},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return model
}

func target() dimension.Target {
	return dimension.Target{Environment: "integration", Sector: "int-sector-1", Region: "us-central1"}
}

func TestResolveMissingBaseValues(t *testing.T) {
	tree := doctree.NewMemoryTree()
	resolver := NewResolver(tree, testModel(t))

	result, err := resolver.Resolve(clusterType, app, target())
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, errUtils.ErrMissingBaseValues))
	assert.Contains(t, err.Error(), clusterType+"/"+app)
}

func TestResolveValuesOnly(t *testing.T) {
	tree := doctree.NewMemoryTree()
	require.NoError(t, tree.WriteValues(clusterType, app, map[string]any{"version": 1}))

	resolver := NewResolver(tree, testModel(t))
	result, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"version": 1}, result.Config)
	assert.Empty(t, result.Conflicts)
}

func TestResolvePrecedenceChain(t *testing.T) {
	tree := doctree.NewMemoryTree()
	model := testModel(t)

	env := []string{"integration"}
	sector := []string{"integration", "int-sector-1"}
	region := []string{"integration", "int-sector-1", "us-central1"}

	// Every level writes the same scalar key; the most specific contributor
	// must win: region patch > region override > sector patch > sector
	// override > env patch > env override > base values > defaults.
	require.NoError(t, tree.WriteDefaults(clusterType, map[string]any{"version": "defaults", "from_defaults": true}))
	require.NoError(t, tree.WriteValues(clusterType, app, map[string]any{"version": "values", "from_values": true}))
	require.NoError(t, tree.WriteOverride(clusterType, app, env, map[string]any{"version": "env-override"}))
	require.NoError(t, tree.WritePatch(clusterType, app, env, "patch-001", map[string]any{"version": "env-patch"}))
	require.NoError(t, tree.WriteOverride(clusterType, app, sector, map[string]any{"version": "sector-override"}))
	require.NoError(t, tree.WritePatch(clusterType, app, sector, "patch-001", map[string]any{"version": "sector-patch"}))
	require.NoError(t, tree.WriteOverride(clusterType, app, region, map[string]any{"version": "region-override"}))
	require.NoError(t, tree.WritePatch(clusterType, app, region, "patch-001", map[string]any{"version": "region-patch"}))

	resolver := NewResolver(tree, model)
	result, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)

	assert.Equal(t, "region-patch", result.Config["version"])
	assert.Equal(t, true, result.Config["from_defaults"])
	assert.Equal(t, true, result.Config["from_values"])
}

func TestResolveOverrideAppliesBeforePatchesAtSameLevel(t *testing.T) {
	tree := doctree.NewMemoryTree()
	env := []string{"integration"}

	require.NoError(t, tree.WriteValues(clusterType, app, map[string]any{"version": "base"}))
	require.NoError(t, tree.WriteOverride(clusterType, app, env, map[string]any{"version": "override"}))
	require.NoError(t, tree.WritePatch(clusterType, app, env, "patch-001", map[string]any{"version": "patch"}))

	resolver := NewResolver(tree, testModel(t))
	result, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)
	assert.Equal(t, "patch", result.Config["version"])
}

func TestResolvePatchesApplyInIdentifierOrder(t *testing.T) {
	tree := doctree.NewMemoryTree()
	env := []string{"integration"}

	require.NoError(t, tree.WriteValues(clusterType, app, map[string]any{"version": "base"}))
	require.NoError(t, tree.WritePatch(clusterType, app, env, "patch-002", map[string]any{"version": "second"}))
	require.NoError(t, tree.WritePatch(clusterType, app, env, "patch-001", map[string]any{"version": "first"}))

	resolver := NewResolver(tree, testModel(t))
	result, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)

	// patch-002 sorts after patch-001 and wins.
	assert.Equal(t, "second", result.Config["version"])
}

func TestResolveConflictReporting(t *testing.T) {
	tree := doctree.NewMemoryTree()
	env := []string{"integration"}

	require.NoError(t, tree.WriteValues(clusterType, app, map[string]any{}))
	require.NoError(t, tree.WritePatch(clusterType, app, env, "patch-001", map[string]any{
		"image": map[string]any{"tag": "v1"},
		"only":  "a",
	}))
	require.NoError(t, tree.WritePatch(clusterType, app, env, "patch-002", map[string]any{
		"image": map[string]any{"tag": "v2"},
	}))

	resolver := NewResolver(tree, testModel(t))
	result, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)

	// One report naming both patches and the overlapping path; resolution
	// still succeeds and the later patch wins.
	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.Equal(t, "patch-001", conflict.PatchA)
	assert.Equal(t, "patch-002", conflict.PatchB)
	assert.Equal(t, []string{"image.tag"}, conflict.Paths)
	assert.Equal(t, "v2", result.Config["image"].(map[string]any)["tag"])
}

func TestResolveNoConflictAcrossLevels(t *testing.T) {
	tree := doctree.NewMemoryTree()

	require.NoError(t, tree.WriteValues(clusterType, app, map[string]any{}))
	require.NoError(t, tree.WritePatch(clusterType, app, []string{"integration"}, "patch-001", map[string]any{"version": 2}))
	require.NoError(t, tree.WritePatch(clusterType, app, []string{"integration", "int-sector-1"}, "patch-002", map[string]any{"version": 3}))

	resolver := NewResolver(tree, testModel(t))
	result, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)

	// Conflicts are scoped to one dimension node.
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 3, result.Config["version"])
}

func TestResolveListAppendAccumulatesAcrossLevels(t *testing.T) {
	tree := doctree.NewMemoryTree()

	require.NoError(t, tree.WriteValues(clusterType, app, map[string]any{"args": []any{"--base"}}))
	require.NoError(t, tree.WritePatch(clusterType, app, []string{"integration"}, "patch-001", map[string]any{
		"metadata": map[string]any{"list_merge": map[string]any{"args": "append"}},
		"args":     []any{"--env"},
	}))
	require.NoError(t, tree.WritePatch(clusterType, app, []string{"integration", "int-sector-1"}, "patch-002", map[string]any{
		"metadata": map[string]any{"list_merge": map[string]any{"args": "append"}},
		"args":     []any{"--sector"},
	}))

	resolver := NewResolver(tree, testModel(t))
	result, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)
	assert.Equal(t, []any{"--base", "--env", "--sector"}, result.Config["args"])
}

func TestResolveIdempotence(t *testing.T) {
	tree := doctree.NewMemoryTree()

	require.NoError(t, tree.WriteValues(clusterType, app, map[string]any{
		"image": map[string]any{"tag": "v1", "repository": "registry/vpn"},
		"args":  []any{"--verbose"},
	}))
	require.NoError(t, tree.WritePatch(clusterType, app, []string{"integration"}, "patch-001", map[string]any{
		"image": map[string]any{"tag": "v2"},
	}))

	resolver := NewResolver(tree, testModel(t))

	first, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)
	second, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)

	firstYAML, err := utils.ConvertToYAML(first.Config)
	require.NoError(t, err)
	secondYAML, err := utils.ConvertToYAML(second.Config)
	require.NoError(t, err)
	assert.Equal(t, firstYAML, secondYAML)
}

func TestResolveDoesNotMutateTree(t *testing.T) {
	tree := doctree.NewMemoryTree()
	require.NoError(t, tree.WriteValues(clusterType, app, map[string]any{"version": 1}))

	resolver := NewResolver(tree, testModel(t))
	_, err := resolver.Resolve(clusterType, app, target())
	require.NoError(t, err)

	values, ok, err := tree.ReadValues(clusterType, app)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"version": 1}, values)
}
