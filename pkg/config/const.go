package config

const (
	// CliConfigFileName is the base name of the CLI configuration file
	// (`fleet.yaml`).
	CliConfigFileName = "fleet"

	// TopologyFileName is the global topology document inside the config
	// directory.
	TopologyFileName = "config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	// (FLEET_CONFIG_DIR, FLEET_LOGS_LEVEL, ...).
	EnvPrefix = "FLEET"
)
