package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/infra/fsfile"
	"github.com/r-leyton/linepatch/internal/infra/historystore"
	"github.com/r-leyton/linepatch/internal/infra/logger"
	"github.com/r-leyton/linepatch/internal/infra/workspacefinder"
	"github.com/r-leyton/linepatch/internal/infra/yamlplan"
	"github.com/r-leyton/linepatch/internal/ports"
)

// locator finds the workspace when --workspace is not given.
var locator ports.WorkspaceLocator = workspacefinder.NewFinder()

type workspaceCtx struct {
	root string
	cfg  domain.Config

	plans   ports.PlanLoader
	store   ports.LineStore
	history ports.HistoryStore // nil when history is disabled
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	ws := &workspaceCtx{
		root:  root,
		cfg:   cfg,
		plans: yamlplan.NewLoader(yamlplan.WithPlansDir(cfg.Paths.PlansDir)),
		store: fsfile.NewStore(),
	}
	if cfg.History.Enabled {
		ws.history = historystore.NewJSONStore(root, cfg,
			historystore.WithIndex(true),
			historystore.WithLogger(logger.Component("history")),
		)
	}
	return ws, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `linepatch init`): %w", wd, err)
	}
	return root, nil
}

func resolvePlanPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("plan is required (use --plan or -p)")
	}

	// If arg looks like a path (contains separators), resolve relative to workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	plansDir := filepath.Join(ws.root, ws.cfg.Paths.PlansDir)

	// "fix.yaml" is a file under the plans dir.
	if yamlplan.HasYAMLExt(in) {
		p := filepath.Join(plansDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	// "fix" tries fix.yaml / fix.yml in the plans dir.
	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(plansDir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	// As a last resort: match by plan "name" field.
	refs, err := ws.plans.ListPlans(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("plan %q not found in %q", in, plansDir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
