// Package doctree abstracts storage of the fleet's configuration documents:
// cluster-type defaults, per-application base values, per-dimension-node
// overrides and numbered patches. All engine state lives in the presence and
// position of these documents; reads, lists, writes and deletes defined here
// are the only storage operations the engine performs.
package doctree

// Tree is the storage contract for configuration documents. Write and delete
// operations exist only for base values and patches: those are the only
// documents the engine ever mutates.
type Tree interface {
	// ReadDefaults returns the cluster-type defaults document, or ok=false if
	// absent.
	ReadDefaults(clusterType string) (map[string]any, bool, error)

	// ReadValues returns an application's base values document, or ok=false if
	// absent.
	ReadValues(clusterType, app string) (map[string]any, bool, error)

	// WriteValues replaces an application's base values document.
	WriteValues(clusterType, app string, doc map[string]any) error

	// ReadOverride returns the override document at a dimension node, or
	// ok=false if absent.
	ReadOverride(clusterType, app string, levelPath []string) (map[string]any, bool, error)

	// ReadPatch returns the named patch document at a dimension node, or
	// ok=false if absent.
	ReadPatch(clusterType, app string, levelPath []string, patchID string) (map[string]any, bool, error)

	// WritePatch writes the named patch document at a dimension node.
	WritePatch(clusterType, app string, levelPath []string, patchID string, doc map[string]any) error

	// DeletePatch removes the named patch document at a dimension node.
	DeletePatch(clusterType, app string, levelPath []string, patchID string) error

	// ListPatches returns the sorted patch identifiers present at a dimension
	// node.
	ListPatches(clusterType, app string, levelPath []string) ([]string, error)

	// ListApplications returns the sorted applications of a cluster type (the
	// directories carrying a base values document).
	ListApplications(clusterType string) ([]string, error)
}
