package config

// Manifest represents the structure of a ptask.yaml or ptask.toml file.
type Manifest struct {
	Version        string    `yaml:"version" toml:"version"`
	TickInterval   string    `yaml:"tick_interval" toml:"tick_interval"`
	MaxCommandLine int       `yaml:"max_command_line" toml:"max_command_line"`
	Tasks          []TaskDTO `yaml:"tasks" toml:"tasks"`
}

// TaskDTO represents a task definition in the manifest.
type TaskDTO struct {
	Name       string `yaml:"name" toml:"name"`
	Executable string `yaml:"executable" toml:"executable"`
	Args       string `yaml:"args" toml:"args"`
}
