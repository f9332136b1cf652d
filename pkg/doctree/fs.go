package doctree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/fleetops/fleetctl/pkg/utils"
)

const (
	valuesFileName   = "values.yaml"
	defaultsFileName = "application-defaults.yaml"
	patchFilePrefix  = "patch-"
	yamlExtension    = ".yaml"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

// FsTree is a Tree backed by an afero filesystem. With afero.NewOsFs it is the
// real on-disk store; with afero.NewMemMapFs it is the in-memory test double.
// Both share identical semantics because the implementation is the same.
type FsTree struct {
	fs   afero.Fs
	root string
}

// NewTree creates a Tree over the given filesystem rooted at root.
func NewTree(fs afero.Fs, root string) *FsTree {
	return &FsTree{fs: fs, root: root}
}

// NewOsTree creates a Tree over the local filesystem rooted at root.
func NewOsTree(root string) *FsTree {
	return NewTree(afero.NewOsFs(), root)
}

// NewMemoryTree creates an empty in-memory Tree.
func NewMemoryTree() *FsTree {
	return NewTree(afero.NewMemMapFs(), "config")
}

func (t *FsTree) appDir(clusterType, app string, levelPath []string) string {
	parts := append([]string{t.root, clusterType, app}, levelPath...)
	return filepath.Join(parts...)
}

func (t *FsTree) readDocument(path string) (map[string]any, bool, error) {
	data, err := afero.ReadFile(t.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	doc, err := utils.UnmarshalYAML[map[string]any](data)
	if err != nil {
		return nil, false, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, true, nil
}

func (t *FsTree) writeDocument(path string, doc map[string]any) error {
	content, err := utils.ConvertToYAML(doc)
	if err != nil {
		return err
	}
	if err := t.fs.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return err
	}
	return afero.WriteFile(t.fs, path, []byte(content), filePermissions)
}

func (t *FsTree) ReadDefaults(clusterType string) (map[string]any, bool, error) {
	return t.readDocument(filepath.Join(t.root, clusterType, defaultsFileName))
}

func (t *FsTree) ReadValues(clusterType, app string) (map[string]any, bool, error) {
	return t.readDocument(filepath.Join(t.appDir(clusterType, app, nil), valuesFileName))
}

func (t *FsTree) WriteValues(clusterType, app string, doc map[string]any) error {
	return t.writeDocument(filepath.Join(t.appDir(clusterType, app, nil), valuesFileName), doc)
}

func (t *FsTree) ReadOverride(clusterType, app string, levelPath []string) (map[string]any, bool, error) {
	return t.readDocument(filepath.Join(t.appDir(clusterType, app, levelPath), valuesFileName))
}

// WriteDefaults writes the cluster-type defaults document. Defaults and
// overrides are authored by humans, not by the engine; these writers exist for
// seeding test fixtures and are not part of the Tree contract.
func (t *FsTree) WriteDefaults(clusterType string, doc map[string]any) error {
	return t.writeDocument(filepath.Join(t.root, clusterType, defaultsFileName), doc)
}

// WriteOverride writes the override document at a dimension node.
func (t *FsTree) WriteOverride(clusterType, app string, levelPath []string, doc map[string]any) error {
	return t.writeDocument(filepath.Join(t.appDir(clusterType, app, levelPath), valuesFileName), doc)
}

func (t *FsTree) ReadPatch(clusterType, app string, levelPath []string, patchID string) (map[string]any, bool, error) {
	return t.readDocument(filepath.Join(t.appDir(clusterType, app, levelPath), patchID+yamlExtension))
}

func (t *FsTree) WritePatch(clusterType, app string, levelPath []string, patchID string, doc map[string]any) error {
	return t.writeDocument(filepath.Join(t.appDir(clusterType, app, levelPath), patchID+yamlExtension), doc)
}

func (t *FsTree) DeletePatch(clusterType, app string, levelPath []string, patchID string) error {
	return t.fs.Remove(filepath.Join(t.appDir(clusterType, app, levelPath), patchID+yamlExtension))
}

func (t *FsTree) ListPatches(clusterType, app string, levelPath []string) ([]string, error) {
	dir := t.appDir(clusterType, app, levelPath)
	entries, err := afero.ReadDir(t.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, patchFilePrefix) || !strings.HasSuffix(name, yamlExtension) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, yamlExtension))
	}
	sort.Strings(ids)
	return ids, nil
}

func (t *FsTree) ListApplications(clusterType string) ([]string, error) {
	dir := filepath.Join(t.root, clusterType)
	entries, err := afero.ReadDir(t.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var apps []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		exists, err := afero.Exists(t.fs, filepath.Join(dir, entry.Name(), valuesFileName))
		if err != nil {
			return nil, err
		}
		if exists {
			apps = append(apps, entry.Name())
		}
	}
	sort.Strings(apps)
	return apps, nil
}
