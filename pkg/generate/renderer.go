package generate

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/fleetops/fleetctl/pkg/dimension"
	"github.com/fleetops/fleetctl/pkg/utils"
)

// Renderer turns one target's merged values into final deployable manifests.
// The engine treats every configuration value as an opaque string; whatever
// template syntax the values carry is the renderer's concern.
type Renderer interface {
	Render(ctx context.Context, clusterType string, target dimension.Target, values map[string]any, outputDir string) error
}

// NopRenderer skips rendering. Used in tests and when only resolved values
// are needed.
type NopRenderer struct{}

func (NopRenderer) Render(context.Context, string, dimension.Target, map[string]any, string) error {
	return nil
}

// HelmRenderer renders manifests by driving `helm template` over a throwaway
// chart assembled from the templates directory.
type HelmRenderer struct {
	fs           afero.Fs
	templatesDir string
}

func NewHelmRenderer(fs afero.Fs, templatesDir string) *HelmRenderer {
	return &HelmRenderer{fs: fs, templatesDir: templatesDir}
}

func (r *HelmRenderer) Render(ctx context.Context, clusterType string, target dimension.Target, values map[string]any, outputDir string) error {
	chartDir, err := os.MkdirTemp("", "fleetctl-chart-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(chartDir)

	releaseName := clusterType + "-apps"
	if err := r.assembleChart(chartDir, releaseName, values); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "helm", "template", releaseName, chartDir)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("helm template failed for `%s/%s`: %s", clusterType, target, exitErr.Stderr)
		}
		return err
	}

	if err := r.fs.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	return afero.WriteFile(r.fs, filepath.Join(outputDir, "manifests.yaml"), stripSourceComments(output), 0o644)
}

// assembleChart writes Chart.yaml and values.yaml into chartDir and copies the
// manifest templates in.
func (r *HelmRenderer) assembleChart(chartDir, name string, values map[string]any) error {
	chart := map[string]any{
		"apiVersion": "v2",
		"name":       name,
		"version":    "1.0.0",
	}
	chartYAML, err := utils.ConvertToYAML(chart)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(chartDir, "Chart.yaml"), []byte(chartYAML), 0o644); err != nil {
		return err
	}

	valuesYAML, err := utils.ConvertToYAML(values)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(chartDir, "values.yaml"), []byte(valuesYAML), 0o644); err != nil {
		return err
	}

	templatesDir := filepath.Join(chartDir, "templates")
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		return err
	}
	entries, err := afero.ReadDir(r.fs, r.templatesDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		content, err := afero.ReadFile(r.fs, filepath.Join(r.templatesDir, entry.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(templatesDir, entry.Name()), content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// stripSourceComments drops the `# Source:` lines helm injects so re-renders
// of unchanged input stay byte-identical regardless of temp chart paths.
func stripSourceComments(output []byte) []byte {
	lines := strings.Split(string(output), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "# Source:") {
			continue
		}
		kept = append(kept, line)
	}
	return []byte(strings.Join(kept, "\n"))
}
