package workspacefinder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/r-leyton/linepatch/internal/domain"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the marker file of a workspace root.
const ConfigFile = "linepatch.yaml"

// LoadConfig loads linepatch.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if f := strings.TrimSpace(y.Linepatch.Defaults.Format); f != "" {
		switch f {
		case "pretty", "json":
			cfg.Defaults.Format = f
		default:
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  domain.ErrInvalidConfig,
			}
		}
	}
	if y.Linepatch.Paths.PlansDir != "" {
		cfg.Paths.PlansDir = y.Linepatch.Paths.PlansDir
	}
	if y.Linepatch.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Linepatch.Paths.RunsDir
	}
	if y.Linepatch.History.Enabled != nil {
		cfg.History.Enabled = *y.Linepatch.History.Enabled
	}

	return cfg, nil
}

type yamlConfig struct {
	Linepatch struct {
		Defaults struct {
			Format string `yaml:"format"`
		} `yaml:"defaults"`

		Paths struct {
			PlansDir string `yaml:"plans_dir"`
			RunsDir  string `yaml:"runs_dir"`
		} `yaml:"paths"`

		History struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"history"`
	} `yaml:"linepatch"`
}
