package domain

import (
	"strings"
	"time"
)

// AppliedLine is one line as it stands after a patch.
type AppliedLine struct {
	Index    int    `json:"index"`
	Previous string `json:"-"`
	Text     string `json:"text"`
}

func (a AppliedLine) LineNumber() int { return a.Index + 1 }

// Trimmed is the confirmation form of the new text (surrounding whitespace
// removed).
func (a AppliedLine) Trimmed() string { return strings.TrimSpace(a.Text) }

// Changed reports whether the line differs from what it replaced.
func (a AppliedLine) Changed() bool { return a.Previous != a.Text }

// PatchResult describes one patch of one file.
type PatchResult struct {
	Path      string        `json:"path"`
	LineCount int           `json:"line_count"`
	Applied   []AppliedLine `json:"applied"`
	DryRun    bool          `json:"dry_run"`
	Changed   bool          `json:"changed"`
}

// PatchRecord is the history artifact written after a plan is applied.
type PatchRecord struct {
	PlanName  string     `json:"plan_name"`
	PlanPath  string     `json:"plan_path"`
	Path      string     `json:"path"`
	LineCount int        `json:"line_count"`
	Edits     []LineEdit `json:"edits"`
	Changed   bool       `json:"changed"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   time.Time  `json:"ended_at"`
}

// AnyChanged reports whether at least one applied line differs from before.
func AnyChanged(applied []AppliedLine) bool {
	for _, a := range applied {
		if a.Changed() {
			return true
		}
	}
	return false
}
