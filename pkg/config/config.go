// Package config loads the fleetctl CLI configuration and the global topology
// document.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	errUtils "github.com/fleetops/fleetctl/errors"
	log "github.com/fleetops/fleetctl/pkg/logger"

	"github.com/fleetops/fleetctl/pkg/schema"
	"github.com/fleetops/fleetctl/pkg/utils"
)

// InitCliConfig loads the CLI configuration from the following locations
// (from lower to higher priority): built-in defaults, `fleet.yaml` in the
// working directory, ENV vars (FLEET_*).
func InitCliConfig() (schema.FleetConfiguration, error) {
	v := viper.New()
	var fleetConfig schema.FleetConfiguration

	v.SetConfigName(CliConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaultConfiguration(v)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fleetConfig, err
		}
		log.Debug("CLI config `fleet.yaml` not found, using defaults")
	}

	if err := v.Unmarshal(&fleetConfig); err != nil {
		return fleetConfig, err
	}

	fleetConfig.CliConfigPath = v.ConfigFileUsed()
	if fleetConfig.BasePath != "" {
		fleetConfig.ConfigDir = filepath.Join(fleetConfig.BasePath, fleetConfig.ConfigDir)
		fleetConfig.RenderedDir = filepath.Join(fleetConfig.BasePath, fleetConfig.RenderedDir)
		fleetConfig.TemplatesDir = filepath.Join(fleetConfig.BasePath, fleetConfig.TemplatesDir)
	}

	return fleetConfig, nil
}

// setDefaultConfiguration sets default configuration for the viper instance.
func setDefaultConfiguration(v *viper.Viper) {
	v.SetDefault("config_dir", "config")
	v.SetDefault("rendered_dir", "rendered")
	v.SetDefault("templates_dir", "templates")
	v.SetDefault("settings.promotion_level", "sector")
	v.SetDefault("logs.file", "/dev/stderr")
	v.SetDefault("logs.level", "info")
}

// LoadTopology reads and parses the global topology document from the config
// directory.
func LoadTopology(fs afero.Fs, configDir string) (schema.Topology, error) {
	var topology schema.Topology

	data, err := afero.ReadFile(fs, filepath.Join(configDir, TopologyFileName))
	if err != nil {
		return topology, fmt.Errorf("%w: %s", errUtils.ErrInvalidTopology, err)
	}

	topology, err = utils.UnmarshalYAML[schema.Topology](data)
	if err != nil {
		return topology, fmt.Errorf("%w: %s", errUtils.ErrInvalidTopology, err)
	}
	return topology, nil
}
