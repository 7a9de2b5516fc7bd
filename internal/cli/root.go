package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/r-leyton/linepatch/internal/infra/logger"
	"github.com/r-leyton/linepatch/internal/ui/tui"
)

var closeLog func() error

func Execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if closeLog != nil {
		_ = closeLog()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var workspace string

	cmd := &cobra.Command{
		Use:          "linepatch",
		Short:        "linepatch overwrites fixed lines of text files",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			setupLogging(debug)
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			return tui.Run(tui.Deps{
				Root:    ws.root,
				Plans:   ws.plans,
				Store:   ws.store,
				History: ws.history,
				Logger:  logger.Component("tui"),
			})
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .linepatch/logs/linepatch.log")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	cmd.AddCommand(
		patchCmd(),
		applyCmd(),
		validateCmd(),
		plansCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

// setupLogging logs into the enclosing workspace, or into the working
// directory when --debug is set outside of one. Otherwise logs are dropped.
func setupLogging(debug bool) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)

	logRoot := ""
	if root, ferr := locator.FindRoot(wd); ferr == nil && root != "" {
		logRoot = root
	} else if debug {
		logRoot = wd
	}
	if logRoot == "" {
		return
	}

	cleanup, err := logger.Setup(logger.Config{Root: logRoot, Debug: debug})
	if err == nil {
		closeLog = cleanup
	}
}
