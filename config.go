package ecsquery

import "github.com/BurntSushi/toml"

// FileConfig is the on-disk shape of a Registry's startup configuration:
// how big to preallocate the world's tables, and how verbosely to log
// query and plan-building activity.
type FileConfig struct {
	World struct {
		InitialCapacity int `toml:"initial_capacity"`
	} `toml:"world"`
	Logging struct {
		Development bool `toml:"development"`
	} `toml:"logging"`
}

// LoadFileConfig reads and decodes a TOML config file at path.
func LoadFileConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// WorldOptions maps the decoded config into the options NewWorldWithOptions
// expects.
func (c FileConfig) WorldOptions() WorldOptions {
	return WorldOptions{InitialCapacity: c.World.InitialCapacity}
}

// RegistryOptions maps the decoded config into RegistryOptions, building
// the appropriate zap logger.
func (c FileConfig) RegistryOptions() RegistryOptions {
	if c.Logging.Development {
		return RegistryOptions{Logger: NewDevelopmentLogger()}
	}
	return RegistryOptions{Logger: NewProductionLogger()}
}
