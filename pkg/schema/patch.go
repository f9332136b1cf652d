package schema

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	errUtils "github.com/fleetops/fleetctl/errors"
)

// MetadataKey is the reserved top-level key in a patch document that carries
// patch metadata. Everything else in the document is patch content, shaped
// identically to an application's `values.yaml`.
const MetadataKey = "metadata"

// List merge strategies a patch may declare per configuration path.
const (
	ListMergeStrategyReplace = "replace"
	ListMergeStrategyAppend  = "append"
)

// PatchDocument is a parsed patch: its identifier (derived from the filename),
// the optional metadata block, and the configuration content to merge.
type PatchDocument struct {
	ID       string
	Metadata PatchMetadata
	Content  map[string]any
}

// PatchMetadata is the optional `metadata` block of a patch document.
type PatchMetadata struct {
	Description string `yaml:"description" json:"description" mapstructure:"description"`

	// Dependencies are preconditions on other applications' resolved
	// configuration that must hold before this patch may be promoted.
	Dependencies []DependencyAssertion `yaml:"dependencies" json:"dependencies" mapstructure:"dependencies"`

	// ListMerge maps dotted configuration paths to a list merge strategy
	// (`append` or `replace`). Paths not listed default to `replace`.
	ListMerge map[string]string `yaml:"list_merge" json:"list_merge" mapstructure:"list_merge"`
}

// DependencyAssertion asserts that `path` resolves to `equals` in the
// referenced application's merged configuration for the same target.
type DependencyAssertion struct {
	Application string `yaml:"application" json:"application" mapstructure:"application"`
	Path        string `yaml:"path" json:"path" mapstructure:"path"`
	Equals      any    `yaml:"equals" json:"equals" mapstructure:"equals"`
}

// ParsePatch splits a raw patch document into metadata and content.
// The raw document is not modified.
func ParsePatch(id string, doc map[string]any) (*PatchDocument, error) {
	patch := &PatchDocument{
		ID:      id,
		Content: make(map[string]any, len(doc)),
	}

	for k, v := range doc {
		if k != MetadataKey {
			patch.Content[k] = v
		}
	}

	if meta, ok := doc[MetadataKey]; ok {
		if err := mapstructure.Decode(meta, &patch.Metadata); err != nil {
			return nil, fmt.Errorf("%w: patch `%s`: %s", errUtils.ErrInvalidPatchMetadata, id, err)
		}
	}

	for path, strategy := range patch.Metadata.ListMerge {
		if strategy != ListMergeStrategyReplace && strategy != ListMergeStrategyAppend {
			return nil, fmt.Errorf("%w: `%s` for path `%s` in patch `%s`", errUtils.ErrUnknownListMergeStrategy, strategy, path, id)
		}
	}

	return patch, nil
}
