package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/infra/fsfile"
	"github.com/r-leyton/linepatch/internal/infra/logger"
	"github.com/r-leyton/linepatch/internal/ui/tui"
	"github.com/r-leyton/linepatch/internal/usecase"
)

func patchCmd() *cobra.Command {
	var sets []string
	var dryRun bool
	var confirm bool
	var format string

	c := &cobra.Command{
		Use:   "patch <file>",
		Short: "Overwrite lines of a file and write it back",
		Long: "Overwrite lines of a file and write it back.\n\n" +
			"Each --set takes LINE=TEXT with a 1-based line number. TEXT without a\n" +
			"trailing newline keeps the replaced line's terminator.",
		Example: `  linepatch patch app/Http/Controllers/AcademicReportController.php \
    --set "325=            \$studentId = \$request->get('student_id');" \
    --set "326=            \$groupId = \$request->get('group_id');"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			edits, err := parseSets(sets)
			if err != nil {
				return err
			}

			path := args[0]
			store := fsfile.NewStore()
			log := logger.Component("patch")

			if confirm && !dryRun {
				preview, err := usecase.NewPatchFile(store, usecase.WithDryRun(true), usecase.WithLogger(log)).
					Execute(cmd.Context(), path, edits)
				if err != nil {
					return err
				}
				ok, err := tui.Confirm(tui.PreviewFromResult(path, preview), cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted: no changes written")
					return nil
				}
			}

			uc := usecase.NewPatchFile(store, usecase.WithDryRun(dryRun), usecase.WithLogger(log))
			res, err := uc.Execute(cmd.Context(), path, edits)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res, "", format)
		},
	}

	c.Flags().StringArrayVarP(&sets, "set", "s", nil, "Replacement as LINE=TEXT (1-based line; repeatable)")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Show the result without writing the file")
	c.Flags().BoolVar(&confirm, "confirm", false, "Preview the change and ask before writing")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	_ = c.MarkFlagRequired("set")
	return c
}

// parseSets turns LINE=TEXT flags into edits. Only the first '=' splits, so
// TEXT may contain '='.
func parseSets(sets []string) ([]domain.LineEdit, error) {
	edits := make([]domain.LineEdit, 0, len(sets))
	for _, s := range sets {
		num, text, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q (expected LINE=TEXT)", s)
		}
		line, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: line %q is not a number", s, num)
		}
		if line < 1 {
			return nil, fmt.Errorf("invalid --set %q: line numbers start at 1", s)
		}
		edits = append(edits, domain.EditAtLine(line, text))
	}
	return edits, domain.ValidateEdits(edits)
}
