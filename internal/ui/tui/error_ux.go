package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/r-leyton/linepatch/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return "Unexpected error (see logs)"
	}

	switch oe.Kind {
	case domain.KindNotFound:
		if strings.HasPrefix(oe.Op, "yamlplan") {
			return "Plan not found"
		}
		if strings.HasPrefix(oe.Op, "fsfile") {
			return "Target file not found: " + oe.Path
		}
		return "Not found"

	case domain.KindIndexOutOfRange:
		return "Target file is too short for this plan"

	case domain.KindPermissionDenied:
		return "Permission denied: " + oe.Path

	case domain.KindIOFailure:
		return "Could not read or write " + filepath.Base(oe.Path)

	case domain.KindInvalidEncoding:
		return "Target file is not valid UTF-8"

	case domain.KindInvalidEdit:
		return "Invalid edit"

	case domain.KindInvalidConfig:
		base := "plan"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		if line := extractLine(err.Error()); line != "" && looksLikeYAMLProblem(err.Error()) {
			return "Invalid YAML at " + base + " line " + line
		}
		if looksLikeYAMLProblem(err.Error()) {
			return "Invalid YAML at " + base
		}
		return "Invalid plan " + base

	default:
		return "Unexpected error (see logs)"
	}
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
