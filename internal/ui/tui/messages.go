package tui

import "github.com/r-leyton/linepatch/internal/domain"

type plansLoadedMsg struct {
	refs []domain.PlanRef
	err  error
}

type previewReadyMsg struct {
	ref     domain.PlanRef
	preview Preview
	err     error
}

type applyDoneMsg struct {
	ref domain.PlanRef
	res domain.PatchResult
	id  string
	err error
}
