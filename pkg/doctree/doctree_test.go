package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAbsentDocuments(t *testing.T) {
	tree := NewMemoryTree()

	_, ok, err := tree.ReadDefaults("management-cluster")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = tree.ReadValues("management-cluster", "vpn")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = tree.ReadOverride("management-cluster", "vpn", []string{"integration"})
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = tree.ReadPatch("management-cluster", "vpn", []string{"integration"}, "patch-001")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteAndReadValues(t *testing.T) {
	tree := NewMemoryTree()
	doc := map[string]any{"image": map[string]any{"tag": "v1"}}

	require.NoError(t, tree.WriteValues("management-cluster", "vpn", doc))

	read, ok, err := tree.ReadValues("management-cluster", "vpn")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, doc, read)
}

func TestWriteReadDeletePatch(t *testing.T) {
	tree := NewMemoryTree()
	levelPath := []string{"integration", "int-sector-1", "us-central1"}
	doc := map[string]any{"version": 2}

	require.NoError(t, tree.WritePatch("management-cluster", "vpn", levelPath, "patch-001", doc))

	read, ok, err := tree.ReadPatch("management-cluster", "vpn", levelPath, "patch-001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, doc, read)

	require.NoError(t, tree.DeletePatch("management-cluster", "vpn", levelPath, "patch-001"))

	_, ok, err = tree.ReadPatch("management-cluster", "vpn", levelPath, "patch-001")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestListPatchesSortedAndFiltered(t *testing.T) {
	tree := NewMemoryTree()
	levelPath := []string{"integration"}

	require.NoError(t, tree.WritePatch("management-cluster", "vpn", levelPath, "patch-002", map[string]any{}))
	require.NoError(t, tree.WritePatch("management-cluster", "vpn", levelPath, "patch-001", map[string]any{}))
	// The override document at the same node is not a patch.
	require.NoError(t, tree.WriteValues("management-cluster", "vpn", map[string]any{}))

	ids, err := tree.ListPatches("management-cluster", "vpn", levelPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"patch-001", "patch-002"}, ids)
}

func TestListPatchesAbsentNode(t *testing.T) {
	tree := NewMemoryTree()

	ids, err := tree.ListPatches("management-cluster", "vpn", []string{"nowhere"})
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListApplications(t *testing.T) {
	tree := NewMemoryTree()

	require.NoError(t, tree.WriteValues("management-cluster", "vpn", map[string]any{}))
	require.NoError(t, tree.WriteValues("management-cluster", "dns", map[string]any{}))

	apps, err := tree.ListApplications("management-cluster")
	require.NoError(t, err)
	assert.Equal(t, []string{"dns", "vpn"}, apps)
}

func TestEmptyDocumentReadsAsEmptyMap(t *testing.T) {
	tree := NewMemoryTree()
	require.NoError(t, tree.WriteValues("management-cluster", "vpn", nil))

	doc, ok, err := tree.ReadValues("management-cluster", "vpn")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, doc)
	assert.Empty(t, doc)
}
