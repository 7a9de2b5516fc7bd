package domain

// PatchPlan is a named, reusable set of edits against one file. File is
// relative to the workspace root unless absolute.
type PatchPlan struct {
	Name  string
	File  string
	Edits []LineEdit
}

// PlanRef points at a plan file on disk.
type PlanRef struct {
	Name string
	Path string
}
