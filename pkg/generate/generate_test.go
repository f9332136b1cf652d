package generate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/doctree"
	"github.com/fleetops/fleetctl/pkg/schema"
)

const clusterType = "management-cluster"

func testModel(t *testing.T) *dimension.Model {
	t.Helper()
	model, err := dimension.NewModel(schema.Topology{
		Environments: []schema.Environment{
			{
				Name: "integration",
				Sectors: []schema.Sector{
					{Name: "int-sector-1", Regions: []schema.Region{{Name: "us-central1"}, {Name: "us-east1"}}},
				},
			},
		},
	})
	require.NoError(t, err)
	return model
}

// recordingRenderer captures every Render invocation.
type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) Render(_ context.Context, clusterType string, target dimension.Target, _ map[string]any, _ string) error {
	r.calls = append(r.calls, clusterType+"/"+target.String())
	return nil
}

func readRendered(t *testing.T, fs afero.Fs, target dimension.Target) []byte {
	t.Helper()
	path := filepath.Join(append([]string{"rendered", clusterType}, target.Path()...)...)
	data, err := afero.ReadFile(fs, filepath.Join(path, "values.yaml"))
	require.NoError(t, err)
	return data
}

func TestGenerateWritesValuesPerTarget(t *testing.T) {
	tree := doctree.NewMemoryTree()
	require.NoError(t, tree.WriteValues(clusterType, "vpn", map[string]any{"version": 1}))
	require.NoError(t, tree.WriteValues(clusterType, "dns", map[string]any{"ttl": 300}))
	require.NoError(t, tree.WritePatch(clusterType, "vpn", []string{"integration", "int-sector-1", "us-east1"}, "patch-001", map[string]any{"version": 2}))

	model := testModel(t)
	outFs := afero.NewMemMapFs()
	renderer := &recordingRenderer{}
	gen := NewGenerator(tree, model, renderer, outFs, "rendered")

	require.NoError(t, gen.Generate(context.Background(), []string{clusterType}))

	central := string(readRendered(t, outFs, dimension.Target{Environment: "integration", Sector: "int-sector-1", Region: "us-central1"}))
	east := string(readRendered(t, outFs, dimension.Target{Environment: "integration", Sector: "int-sector-1", Region: "us-east1"}))

	// Both applications fold into one document; only us-east1 sees the patch.
	assert.Contains(t, central, "version: 1")
	assert.Contains(t, central, "ttl: 300")
	assert.Contains(t, east, "version: 2")
	assert.Contains(t, east, "ttl: 300")

	assert.Equal(t, []string{
		clusterType + "/integration/int-sector-1/us-central1",
		clusterType + "/integration/int-sector-1/us-east1",
	}, renderer.calls)
}

func TestGenerateConflictsDoNotFail(t *testing.T) {
	tree := doctree.NewMemoryTree()
	require.NoError(t, tree.WriteValues(clusterType, "vpn", map[string]any{"version": 1}))
	levelPath := []string{"integration"}
	require.NoError(t, tree.WritePatch(clusterType, "vpn", levelPath, "patch-001", map[string]any{"version": 2}))
	require.NoError(t, tree.WritePatch(clusterType, "vpn", levelPath, "patch-002", map[string]any{"version": 3}))

	outFs := afero.NewMemMapFs()
	gen := NewGenerator(tree, testModel(t), NopRenderer{}, outFs, "rendered")
	require.NoError(t, gen.Generate(context.Background(), []string{clusterType}))

	// The later patch wins and output is still produced for every target.
	east := string(readRendered(t, outFs, dimension.Target{Environment: "integration", Sector: "int-sector-1", Region: "us-east1"}))
	assert.Contains(t, east, "version: 3")
}

func TestGenerateIsDeterministic(t *testing.T) {
	tree := doctree.NewMemoryTree()
	require.NoError(t, tree.WriteValues(clusterType, "vpn", map[string]any{
		"b": 2, "a": 1, "nested": map[string]any{"z": true, "y": false},
	}))

	model := testModel(t)
	target := dimension.Target{Environment: "integration", Sector: "int-sector-1", Region: "us-central1"}

	first := afero.NewMemMapFs()
	require.NoError(t, NewGenerator(tree, model, NopRenderer{}, first, "rendered").Generate(context.Background(), []string{clusterType}))
	second := afero.NewMemMapFs()
	require.NoError(t, NewGenerator(tree, model, NopRenderer{}, second, "rendered").Generate(context.Background(), []string{clusterType}))

	assert.Equal(t, readRendered(t, first, target), readRendered(t, second, target))
}
