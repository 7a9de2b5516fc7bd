package usecase

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute creates a workspace at root (current directory when empty) and
// returns its absolute path.
func (uc *InitWorkspace) Execute(root string, force bool) (string, error) {
	r := strings.TrimSpace(root)
	if r == "" {
		r = "."
	}
	abs, err := filepath.Abs(r)
	if err != nil {
		return "", fmt.Errorf("invalid workspace path: %w", err)
	}

	if err := uc.initializer.Init(domain.WorkspaceSpec{Root: abs}, force); err != nil {
		return "", err
	}
	return abs, nil
}
