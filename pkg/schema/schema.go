package schema

// FleetConfiguration is the final (deep-merged) CLI configuration for fleetctl.
// It is loaded from `fleet.yaml`, ENV vars and command-line flags.
type FleetConfiguration struct {
	BasePath      string        `yaml:"base_path" json:"base_path" mapstructure:"base_path"`
	ConfigDir     string        `yaml:"config_dir" json:"config_dir" mapstructure:"config_dir"`
	RenderedDir   string        `yaml:"rendered_dir" json:"rendered_dir" mapstructure:"rendered_dir"`
	TemplatesDir  string        `yaml:"templates_dir" json:"templates_dir" mapstructure:"templates_dir"`
	Settings      FleetSettings `yaml:"settings" json:"settings" mapstructure:"settings"`
	Logs          Logs          `yaml:"logs" json:"logs" mapstructure:"logs"`
	CliConfigPath string        `yaml:"-" json:"-" mapstructure:"-"`
}

type FleetSettings struct {
	// PromotionLevel is the default promotion granularity: the least specific
	// dimension level a patch promotion is allowed to land on.
	PromotionLevel string `yaml:"promotion_level" json:"promotion_level" mapstructure:"promotion_level"`
}

type Logs struct {
	File  string `yaml:"file" json:"file" mapstructure:"file"`
	Level string `yaml:"level" json:"level" mapstructure:"level"`
}

// Topology is the global topology document (`config.yaml`): ordered
// environments with ordered sectors and regions, plus the cluster types
// managed by the fleet.
type Topology struct {
	Environments []Environment `yaml:"environments" json:"environments" mapstructure:"environments"`
	ClusterTypes []ClusterType `yaml:"cluster_types" json:"cluster_types" mapstructure:"cluster_types"`
}

type Environment struct {
	Name      string   `yaml:"name" json:"name" mapstructure:"name"`
	Promotion string   `yaml:"promotion,omitempty" json:"promotion,omitempty" mapstructure:"promotion"`
	Sectors   []Sector `yaml:"sectors" json:"sectors" mapstructure:"sectors"`
}

type Sector struct {
	Name      string   `yaml:"name" json:"name" mapstructure:"name"`
	Promotion string   `yaml:"promotion,omitempty" json:"promotion,omitempty" mapstructure:"promotion"`
	Regions   []Region `yaml:"regions" json:"regions" mapstructure:"regions"`
}

type Region struct {
	Name string `yaml:"name" json:"name" mapstructure:"name"`
}

type ClusterType struct {
	Name string `yaml:"name" json:"name" mapstructure:"name"`
}

// Promotion modes for environments and sectors.
const (
	PromotionAutomated = "automated"
	PromotionManual    = "manual"
)
