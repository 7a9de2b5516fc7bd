package domain

// Config represents the workspace configuration loaded from linepatch.yaml.
type Config struct {
	Defaults DefaultsConfig
	Paths    PathsConfig
	History  HistoryConfig
}

type DefaultsConfig struct {
	Format string
}

type PathsConfig struct {
	PlansDir string
	RunsDir  string
}

type HistoryConfig struct {
	Enabled bool
}

// DefaultConfig provides sane defaults if linepatch.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{Format: "pretty"},
		Paths: PathsConfig{
			PlansDir: "plans",
			RunsDir:  "runs",
		},
		History: HistoryConfig{Enabled: true},
	}
}

// WorkspaceSpec describes where a workspace should be created.
type WorkspaceSpec struct {
	Root string
}
