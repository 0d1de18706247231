package config

import (
	"github.com/urfave/cli/v2"
)

// ConfigFlag is registered on the app so every command can find the lab config
var ConfigFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "Path to the lab configuration YAML",
	Value:   DefaultPath,
	EnvVars: []string{"TRANSITLAB_CONFIG"},
}

// FromCLI loads the config named by the --config flag. The file must exist
// only when the flag or its environment variable was given explicitly.
func FromCLI(c *cli.Context) (*Config, error) {
	return Load(c.String(ConfigFlag.Name), c.IsSet(ConfigFlag.Name))
}
