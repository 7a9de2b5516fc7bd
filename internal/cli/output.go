package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/r-leyton/linepatch/internal/domain"
)

func printResult(w io.Writer, res domain.PatchResult, recordID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"record_id": recordID,
			"result":    res,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyResult(w, res)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

// printPrettyResult writes the status line and one "Line N: text" per edit.
func printPrettyResult(w io.Writer, res domain.PatchResult) {
	if res.DryRun {
		fmt.Fprintln(w, "Dry run: no changes written")
	} else {
		fmt.Fprintln(w, "File updated successfully!")
	}
	for _, a := range res.Applied {
		fmt.Fprintf(w, "Line %d: %s\n", a.LineNumber(), a.Trimmed())
	}
}

func validFormat(format string) error {
	switch format {
	case "pretty", "json", "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
