package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/r-leyton/linepatch/internal/domain"
)

// Preview is what a patch will do, line by line.
type Preview struct {
	Title     string
	Path      string
	LineCount int
	Lines     []PreviewLine
}

type PreviewLine struct {
	Number int
	Old    string
	New    string
}

func (l PreviewLine) Unchanged() bool { return l.Old == l.New }

// PreviewFromResult builds a preview from a dry-run result.
func PreviewFromResult(title string, res domain.PatchResult) Preview {
	p := Preview{
		Title:     title,
		Path:      res.Path,
		LineCount: res.LineCount,
		Lines:     make([]PreviewLine, 0, len(res.Applied)),
	}
	for _, a := range res.Applied {
		p.Lines = append(p.Lines, PreviewLine{
			Number: a.LineNumber(),
			Old:    domain.TrimTerminator(a.Previous),
			New:    domain.TrimTerminator(a.Text),
		})
	}
	return p
}

func (p Preview) Render(t Theme, width int) string {
	var b strings.Builder
	b.WriteString(t.Title.Render(p.Title))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render(fmt.Sprintf("%s (%d lines)", p.Path, p.LineCount)))
	b.WriteString("\n\n")

	limit := width - 12
	if limit < 20 {
		limit = 20
	}
	for _, l := range p.Lines {
		fmt.Fprintf(&b, "line %d", l.Number)
		if l.Unchanged() {
			b.WriteString(t.Help.Render("  (already applied)"))
		}
		b.WriteString("\n")
		b.WriteString(t.Removed.Render("  - " + clampString(l.Old, limit)))
		b.WriteString("\n")
		b.WriteString(t.Added.Render("  + " + clampString(l.New, limit)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}
