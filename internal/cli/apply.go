package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r-leyton/linepatch/internal/infra/logger"
	"github.com/r-leyton/linepatch/internal/ui/tui"
	"github.com/r-leyton/linepatch/internal/usecase"
)

func applyCmd() *cobra.Command {
	var workspace string
	var plan string
	var noSave bool
	var dryRun bool
	var confirm bool
	var format string

	c := &cobra.Command{
		Use:   "apply",
		Short: "Apply a patch plan from a linepatch workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				format = ws.cfg.Defaults.Format
			}
			if err := validFormat(format); err != nil {
				return err
			}

			planPath, err := resolvePlanPath(ws, plan)
			if err != nil {
				return err
			}

			history := ws.history
			if noSave {
				history = nil
			}
			log := logger.Component("apply")

			if confirm && !dryRun {
				preview := usecase.NewApplyPlan(ws.plans, ws.store, nil,
					usecase.WithPlanDryRun(true), usecase.WithPlanLogger(log))
				res, _, err := preview.Execute(cmd.Context(), planPath, ws.root)
				if err != nil {
					return err
				}
				ok, err := tui.Confirm(tui.PreviewFromResult(plan, res), cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted: no changes written")
					return nil
				}
			}

			uc := usecase.NewApplyPlan(ws.plans, ws.store, history,
				usecase.WithPlanDryRun(dryRun), usecase.WithPlanLogger(log))

			res, recID, err := uc.Execute(cmd.Context(), planPath, ws.root)
			if err != nil {
				// A result alongside an error means only the history write failed.
				if res.Path != "" {
					return fmt.Errorf("%s was patched but recording history failed (use --no-save to skip): %w", res.Path, err)
				}
				return err
			}

			if err := printResult(cmd.OutOrStdout(), res, recID, format); err != nil {
				return err
			}
			if recID != "" && format != "json" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Recorded as %s\n", recID)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&plan, "plan", "p", "", "Plan name or path (required)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not record the patch under runs/")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Show the result without writing the file")
	c.Flags().BoolVar(&confirm, "confirm", false, "Preview the change and ask before writing")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json (defaults to the workspace setting)")

	_ = c.MarkFlagRequired("plan")
	return c
}
