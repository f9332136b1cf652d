package cmd

import (
	"github.com/spf13/afero"

	cfg "github.com/fleetops/fleetctl/pkg/config"
	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/doctree"
	"github.com/fleetops/fleetctl/pkg/schema"
)

// engine bundles the components every command needs: the document tree over
// the local filesystem and the dimension model parsed from the topology.
type engine struct {
	fs       afero.Fs
	tree     *doctree.FsTree
	model    *dimension.Model
	topology schema.Topology
}

func buildEngine() (*engine, error) {
	fs := afero.NewOsFs()

	topology, err := cfg.LoadTopology(fs, fleetConfig.ConfigDir)
	if err != nil {
		return nil, err
	}
	model, err := dimension.NewModel(topology)
	if err != nil {
		return nil, err
	}

	return &engine{
		fs:       fs,
		tree:     doctree.NewTree(fs, fleetConfig.ConfigDir),
		model:    model,
		topology: topology,
	}, nil
}

func (e *engine) clusterTypes() []string {
	names := make([]string, 0, len(e.topology.ClusterTypes))
	for _, ct := range e.topology.ClusterTypes {
		names = append(names, ct.Name)
	}
	return names
}
