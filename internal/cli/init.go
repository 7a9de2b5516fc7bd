package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r-leyton/linepatch/internal/buildinfo"
	"github.com/r-leyton/linepatch/internal/infra/fsworkspace"
	"github.com/r-leyton/linepatch/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a linepatch workspace (linepatch.yaml, plans/, runs/)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(path, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized workspace at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", "", "Directory to initialize (defaults to the current directory)")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
