package yamlplan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/r-leyton/linepatch/internal/app/template"
	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/ports"
	"gopkg.in/yaml.v3"
)

// Loader reads patch plans from YAML files under a workspace plans dir.
type Loader struct {
	plansDir string
}

// NewLoader returns a Loader rooted at "plans" unless WithPlansDir says otherwise.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{plansDir: "plans"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

// WithPlansDir sets the plans dir, relative to the workspace root.
func WithPlansDir(dir string) Option {
	return func(l *Loader) { l.plansDir = dir }
}

var _ ports.PlanLoader = (*Loader)(nil)

// LoadPlan parses and validates the plan at path. Line numbers in the file
// are 1-based; the returned edits carry 0-based indices.
func (l *Loader) LoadPlan(path string) (domain.PatchPlan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.PatchPlan{}, readError("yamlplan.load", path, err)
	}

	var yp yamlPlan
	if err := yaml.Unmarshal(b, &yp); err != nil {
		return domain.PatchPlan{}, &domain.OpError{
			Op:   "yamlplan.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, yp)
}

// ListPlans returns the plans under root's plans dir, sorted by name.
func (l *Loader) ListPlans(root string) ([]domain.PlanRef, error) {
	dir := filepath.Join(root, l.plansDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, readError("yamlplan.list", dir, err)
	}

	var refs []domain.PlanRef
	for _, e := range entries {
		if e.IsDir() || !HasYAMLExt(e.Name()) {
			continue
		}

		p := filepath.Join(dir, e.Name())
		n, _ := readPlanName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}

		refs = append(refs, domain.PlanRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// HasYAMLExt reports whether name ends in .yaml or .yml (any case).
func HasYAMLExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func readPlanName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

// yamlPlan is the on-disk plan. Vars, when present, are substituted into
// edit texts as {{name}}; without vars texts stay literal so "{{" in the
// target language survives.
type yamlPlan struct {
	Name  string            `yaml:"name"`
	File  string            `yaml:"file"`
	Vars  map[string]string `yaml:"vars"`
	Edits []yamlEdit        `yaml:"edits"`
}

// yamlEdit uses 1-based line numbers. Line is a pointer so a missing field
// is told apart from line 0.
type yamlEdit struct {
	Line *int   `yaml:"line"`
	Text string `yaml:"text"`
}

func mapAndValidate(path string, yp yamlPlan) (domain.PatchPlan, error) {
	name := strings.TrimSpace(yp.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if strings.TrimSpace(yp.File) == "" {
		return domain.PatchPlan{}, invalidField(path, "file", "target file is required")
	}
	if len(yp.Edits) == 0 {
		return domain.PatchPlan{}, invalidField(path, "edits", "at least one edit is required")
	}

	plan := domain.PatchPlan{
		Name:  name,
		File:  strings.TrimSpace(yp.File),
		Edits: make([]domain.LineEdit, 0, len(yp.Edits)),
	}

	seen := map[int]bool{}
	for i, e := range yp.Edits {
		fieldPrefix := fmt.Sprintf("edits[%d]", i)
		if e.Line == nil {
			return domain.PatchPlan{}, invalidField(path, fieldPrefix+".line", "line is required")
		}
		if *e.Line < 1 {
			return domain.PatchPlan{}, invalidField(path, fieldPrefix+".line", "line numbers start at 1")
		}
		if seen[*e.Line] {
			return domain.PatchPlan{}, invalidField(path, fieldPrefix+".line", fmt.Sprintf("line %d listed twice", *e.Line))
		}
		seen[*e.Line] = true

		text := e.Text
		if len(yp.Vars) > 0 {
			rendered, err := template.RenderString(text, yp.Vars)
			if err != nil {
				return domain.PatchPlan{}, invalidField(path, fieldPrefix+".text", err.Error())
			}
			text = rendered
		}

		edit := domain.EditAtLine(*e.Line, text)
		if err := edit.Validate(); err != nil {
			return domain.PatchPlan{}, invalidField(path, fieldPrefix+".text", err.Error())
		}
		plan.Edits = append(plan.Edits, edit)
	}

	return plan, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlplan.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}

func readError(op, path string, err error) error {
	kind := domain.KindIOFailure
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = domain.KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = domain.KindPermissionDenied
	}
	return &domain.OpError{Op: op, Kind: kind, Path: path, Err: err}
}
