package tui

import (
	"log/slog"

	"github.com/r-leyton/linepatch/internal/ports"
)

type Deps struct {
	Root    string
	Plans   ports.PlanLoader
	Store   ports.LineStore
	History ports.HistoryStore

	Logger *slog.Logger
}
