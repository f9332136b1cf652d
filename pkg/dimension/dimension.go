// Package dimension models the fleet's deployment hierarchy: ordered
// environments, each with ordered sectors, each with ordered regions. It
// produces the canonical list of deployment targets and the ordered list of
// promotion positions used by patch promotion.
package dimension

import (
	"fmt"
	"strings"

	errUtils "github.com/fleetops/fleetctl/errors"
	"github.com/fleetops/fleetctl/pkg/schema"
)

// Level identifies one axis of the hierarchy, outermost first.
type Level int

const (
	LevelEnvironment Level = iota + 1
	LevelSector
	LevelRegion
)

func (l Level) String() string {
	switch l {
	case LevelEnvironment:
		return "environment"
	case LevelSector:
		return "sector"
	case LevelRegion:
		return "region"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name such as `sector` or `sectors`.
func ParseLevel(name string) (Level, error) {
	switch strings.TrimSuffix(strings.ToLower(name), "s") {
	case "environment":
		return LevelEnvironment, nil
	case "sector":
		return LevelSector, nil
	case "region":
		return LevelRegion, nil
	default:
		return 0, fmt.Errorf("%w: unknown dimension level `%s`", errUtils.ErrInvalidTopology, name)
	}
}

// Target is one complete (environment, sector, region) leaf combination.
type Target struct {
	Environment string
	Sector      string
	Region      string
}

// Path returns the target's dimension path, outermost level first.
func (t Target) Path() []string {
	return []string{t.Environment, t.Sector, t.Region}
}

func (t Target) String() string {
	return strings.Join(t.Path(), "/")
}

// Position is one node of the dimension tree in promotion order. Non-leaf
// positions (environments, sectors) carry their promotion mode.
type Position struct {
	Path      []string
	Level     Level
	Promotion string
}

func (p Position) String() string {
	return strings.Join(p.Path, "/")
}

// Equal reports whether two positions name the same dimension node.
func (p Position) Equal(other Position) bool {
	if len(p.Path) != len(other.Path) {
		return false
	}
	for i := range p.Path {
		if p.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}

// Covers reports whether p equals other or is one of its ancestors.
func (p Position) Covers(other Position) bool {
	if len(p.Path) > len(other.Path) {
		return false
	}
	for i := range p.Path {
		if p.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}

// Model is the parsed dimension hierarchy.
type Model struct {
	topology  schema.Topology
	targets   []Target
	positions []Position
}

// NewModel validates the topology and precomputes the canonical target list
// and the depth-first pre-order promotion positions.
func NewModel(topology schema.Topology) (*Model, error) {
	if len(topology.Environments) == 0 {
		return nil, fmt.Errorf("%w: no environments defined", errUtils.ErrInvalidTopology)
	}

	m := &Model{topology: topology}

	envNames := make(map[string]bool)
	for _, env := range topology.Environments {
		if err := checkName(env.Name, envNames, "environment"); err != nil {
			return nil, err
		}
		if err := checkPromotion(env.Promotion, "environment", env.Name); err != nil {
			return nil, err
		}
		m.positions = append(m.positions, Position{
			Path:      []string{env.Name},
			Level:     LevelEnvironment,
			Promotion: env.Promotion,
		})

		sectorNames := make(map[string]bool)
		for _, sector := range env.Sectors {
			if err := checkName(sector.Name, sectorNames, "sector"); err != nil {
				return nil, err
			}
			if err := checkPromotion(sector.Promotion, "sector", sector.Name); err != nil {
				return nil, err
			}
			m.positions = append(m.positions, Position{
				Path:      []string{env.Name, sector.Name},
				Level:     LevelSector,
				Promotion: sector.Promotion,
			})

			regionNames := make(map[string]bool)
			for _, region := range sector.Regions {
				if err := checkName(region.Name, regionNames, "region"); err != nil {
					return nil, err
				}
				m.positions = append(m.positions, Position{
					Path:  []string{env.Name, sector.Name, region.Name},
					Level: LevelRegion,
				})
				m.targets = append(m.targets, Target{
					Environment: env.Name,
					Sector:      sector.Name,
					Region:      region.Name,
				})
			}
		}
	}

	return m, nil
}

func checkName(name string, seen map[string]bool, level string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s name", errUtils.ErrInvalidTopology, level)
	}
	if seen[name] {
		return fmt.Errorf("%w: duplicate %s name `%s`", errUtils.ErrInvalidTopology, level, name)
	}
	seen[name] = true
	return nil
}

func checkPromotion(mode, level, name string) error {
	if mode != "" && mode != schema.PromotionAutomated && mode != schema.PromotionManual {
		return fmt.Errorf("%w: invalid promotion mode `%s` for %s `%s`", errUtils.ErrInvalidTopology, mode, level, name)
	}
	return nil
}

// Targets returns every (environment, sector, region) leaf in canonical order.
func (m *Model) Targets() []Target {
	return m.targets
}

// Positions returns every node of the dimension tree in depth-first pre-order.
// This is the promotion order.
func (m *Model) Positions() []Position {
	return m.positions
}

// TargetsUnder returns the leaf targets at or below a position, in canonical
// order.
func (m *Model) TargetsUnder(pos Position) []Target {
	var out []Target
	for _, target := range m.targets {
		if pos.Covers(Position{Path: target.Path(), Level: LevelRegion}) {
			out = append(out, target)
		}
	}
	return out
}

// Environments returns the ordered environment names.
func (m *Model) Environments() []string {
	names := make([]string, 0, len(m.topology.Environments))
	for _, env := range m.topology.Environments {
		names = append(names, env.Name)
	}
	return names
}
