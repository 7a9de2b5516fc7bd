package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r-leyton/linepatch/internal/usecase"
)

func validateCmd() *cobra.Command {
	var workspace string
	var plan string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Check a plan against its target file (no writes)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			planPath, err := resolvePlanPath(ws, plan)
			if err != nil {
				return err
			}

			uc := usecase.NewValidatePlan(ws.plans, ws.store)
			p, err := uc.Execute(cmd.Context(), planPath, ws.root)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%d edit(s) on %s)\n", p.Name, len(p.Edits), p.File)
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&plan, "plan", "p", "", "Plan name or path (required)")

	_ = c.MarkFlagRequired("plan")
	return c
}
