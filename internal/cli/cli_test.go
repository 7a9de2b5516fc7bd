package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/infra/yamlplan"
)

const (
	studentLine = "            $studentId = $request->get('student_id');"
	groupLine   = "            $groupId = $request->get('group_id');"
)

func writeNumbered(t *testing.T, path string, n int) {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// --- looksLikePath ---

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"fix", false},
		{"fix.yaml", false},
		{"./fix.yaml", true},
		{"plans/fix.yaml", true},
		{"/abs/path/fix.yaml", true},
	}
	for _, c := range cases {
		if got := looksLikePath(c.input); got != c.want {
			t.Errorf("looksLikePath(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// --- fileExists ---

func TestFileExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exists.txt")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileExists(p) {
		t.Fatalf("expected %s to exist", p)
	}
	if fileExists(filepath.Join(tmp, "missing.txt")) {
		t.Fatalf("expected missing file to be reported absent")
	}
}

// --- parseSets ---

func TestParseSets(t *testing.T) {
	edits, err := parseSets([]string{"325=a = b", " 326 =x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edits) != 2 {
		t.Fatalf("expected 2 edits, got %d", len(edits))
	}
	if edits[0].Index != 324 || edits[0].Text != "a = b" {
		t.Fatalf("unexpected first edit: %+v", edits[0])
	}
	if edits[1].Index != 325 || edits[1].Text != "x" {
		t.Fatalf("unexpected second edit: %+v", edits[1])
	}
}

func TestParseSets_Invalid(t *testing.T) {
	cases := [][]string{
		{"325"},
		{"abc=x"},
		{"0=x"},
		{"-3=x"},
		{"5=a", "5=b"},
		{"5=a\nb"},
	}
	for _, c := range cases {
		if _, err := parseSets(c); err == nil {
			t.Errorf("parseSets(%q) expected error", c)
		}
	}
}

// --- printResult ---

func sampleResult(dryRun bool) domain.PatchResult {
	return domain.PatchResult{
		Path:      "AcademicReportController.php",
		LineCount: 400,
		DryRun:    dryRun,
		Changed:   true,
		Applied: []domain.AppliedLine{
			{Index: 324, Text: studentLine + "\n"},
			{Index: 325, Text: groupLine + "\n"},
		},
	}
}

func TestPrintResult_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printResult(&buf, sampleResult(false), "", "pretty"); err != nil {
		t.Fatalf("printResult: %v", err)
	}
	want := "File updated successfully!\n" +
		"Line 325: $studentId = $request->get('student_id');\n" +
		"Line 326: $groupId = $request->get('group_id');\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrintResult_PrettyDryRun(t *testing.T) {
	var buf bytes.Buffer
	if err := printResult(&buf, sampleResult(true), "", ""); err != nil {
		t.Fatalf("printResult: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Dry run: no changes written\n") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if strings.Contains(buf.String(), "File updated successfully!") {
		t.Fatalf("dry run must not claim success: %q", buf.String())
	}
}

func TestPrintResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printResult(&buf, sampleResult(false), "20260101T000000Z_fix", "json"); err != nil {
		t.Fatalf("printResult: %v", err)
	}

	var got struct {
		RecordID string              `json:"record_id"`
		Result   domain.PatchResult `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.RecordID != "20260101T000000Z_fix" {
		t.Fatalf("unexpected record id: %q", got.RecordID)
	}
	if got.Result.LineCount != 400 || len(got.Result.Applied) != 2 {
		t.Fatalf("unexpected result: %+v", got.Result)
	}
}

func TestPrintResult_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := printResult(&buf, sampleResult(false), "", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

// --- command tree ---

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	want := map[string]bool{
		"patch": false, "apply": false, "validate": false,
		"plans": false, "init": false, "version": false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPatchCmd_Flags(t *testing.T) {
	c := patchCmd()
	for _, name := range []string{"set", "dry-run", "confirm", "format"} {
		if c.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s missing", name)
		}
	}
	if f := c.Flags().ShorthandLookup("s"); f == nil || f.Name != "set" {
		t.Errorf("expected -s shorthand for --set")
	}
}

func TestApplyCmd_Flags(t *testing.T) {
	c := applyCmd()
	for _, name := range []string{"workspace", "plan", "no-save", "dry-run", "confirm", "format"} {
		if c.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s missing", name)
		}
	}
}

// --- resolveWorkspaceRoot ---

func TestResolveWorkspaceRoot_ExplicitFlag(t *testing.T) {
	tmp := t.TempDir()
	got, err := resolveWorkspaceRoot("  " + tmp + "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp {
		t.Fatalf("expected %q, got %q", tmp, got)
	}
}

type stubLocator struct {
	root string
	err  error
}

func (s stubLocator) FindRoot(string) (string, error) { return s.root, s.err }

func TestResolveWorkspaceRoot_UsesLocator(t *testing.T) {
	prev := locator
	t.Cleanup(func() { locator = prev })

	locator = stubLocator{root: "/srv/ws"}
	got, err := resolveWorkspaceRoot("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/srv/ws" {
		t.Fatalf("expected locator root, got %q", got)
	}

	locator = stubLocator{err: domain.ErrNotFound}
	_, err = resolveWorkspaceRoot("")
	if err == nil || !strings.Contains(err.Error(), "linepatch init") {
		t.Fatalf("expected init hint, got %v", err)
	}
}

// --- patch end to end ---

func TestPatchCmd_EndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AcademicReportController.php")
	writeNumbered(t, path, 400)

	out, _, err := runRoot(t, "patch", path,
		"--set", "325="+studentLine,
		"--set", "326="+groupLine,
	)
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	want := "File updated successfully!\n" +
		"Line 325: $studentId = $request->get('student_id');\n" +
		"Line 326: $groupId = $request->get('group_id');\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.SplitAfter(string(b), "\n")
	if lines[324] != studentLine+"\n" || lines[325] != groupLine+"\n" {
		t.Fatalf("unexpected patched lines: %q / %q", lines[324], lines[325])
	}
	if lines[323] != "line 324\n" || lines[326] != "line 327\n" {
		t.Fatalf("neighbouring lines changed: %q / %q", lines[323], lines[326])
	}
}

func TestPatchCmd_DryRunLeavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	writeNumbered(t, path, 3)
	before, _ := os.ReadFile(path)

	out, _, err := runRoot(t, "patch", path, "--set", "2=two", "--dry-run")
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !strings.HasPrefix(out, "Dry run: no changes written\n") {
		t.Fatalf("unexpected output: %q", out)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Fatalf("dry run modified the file")
	}
}

func TestPatchCmd_ShortFileIsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.txt")
	writeNumbered(t, path, 10)
	before, _ := os.ReadFile(path)

	out, _, err := runRoot(t, "patch", path, "--set", "325=x")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindIndexOutOfRange) {
		t.Fatalf("expected index_out_of_range, got %v", err)
	}
	if strings.Contains(out, "File updated successfully!") {
		t.Fatalf("success message printed on failure: %q", out)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Fatalf("file modified on range failure")
	}
}

func TestPatchCmd_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.php")

	_, _, err := runRoot(t, "patch", path, "--set", "1=x")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("missing file must not be created")
	}
}

func TestPatchCmd_RequiresSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	writeNumbered(t, path, 3)

	if _, _, err := runRoot(t, "patch", path); err == nil {
		t.Fatalf("expected error when --set is missing")
	}
}

// --- workspace commands ---

func TestInitApplyValidate_EndToEnd(t *testing.T) {
	root := t.TempDir()

	out, _, err := runRoot(t, "init", "--path", root)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Initialized workspace at") {
		t.Fatalf("unexpected init output: %q", out)
	}

	target := filepath.Join(root, "app", "Http", "Controllers", "AcademicReportController.php")
	writeNumbered(t, target, 400)

	out, _, err = runRoot(t, "validate", "-w", root, "-p", "academic-report-fix")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.HasPrefix(out, "OK: academic-report-fix") {
		t.Fatalf("unexpected validate output: %q", out)
	}

	out, errOut, err := runRoot(t, "apply", "-w", root, "-p", "academic-report-fix")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !strings.HasPrefix(out, "File updated successfully!\nLine 325: $studentId") {
		t.Fatalf("unexpected apply output: %q", out)
	}
	if !strings.Contains(errOut, "Recorded as ") {
		t.Fatalf("expected record id on stderr, got %q", errOut)
	}

	entries, err := os.ReadDir(filepath.Join(root, "runs"))
	if err != nil {
		t.Fatalf("read runs: %v", err)
	}
	var records int
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			records++
		}
	}
	if records != 1 {
		t.Fatalf("expected 1 history record, got %d", records)
	}
}

func TestApplyCmd_NoSaveSkipsHistory(t *testing.T) {
	root := t.TempDir()
	if _, _, err := runRoot(t, "init", "--path", root); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	writeNumbered(t, filepath.Join(root, "app", "Http", "Controllers", "AcademicReportController.php"), 400)

	_, errOut, err := runRoot(t, "apply", "-w", root, "-p", "academic-report-fix", "--no-save", "--format", "json")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr: %q", errOut)
	}

	entries, _ := os.ReadDir(filepath.Join(root, "runs"))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			t.Fatalf("unexpected history record %s", e.Name())
		}
	}
}

func TestApplyCmd_HistoryFailureIsNotReportedAsSuccess(t *testing.T) {
	root := t.TempDir()
	if _, _, err := runRoot(t, "init", "--path", root); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	target := filepath.Join(root, "app", "Http", "Controllers", "AcademicReportController.php")
	writeNumbered(t, target, 400)

	// A plain file in place of runs/ makes the history write fail.
	runs := filepath.Join(root, "runs")
	if err := os.RemoveAll(runs); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(runs, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runRoot(t, "apply", "-w", root, "-p", "academic-report-fix")
	if err == nil {
		t.Fatalf("expected history failure")
	}
	if !strings.Contains(err.Error(), "recording history failed") {
		t.Fatalf("expected history failure in message, got %v", err)
	}
	if strings.Contains(out, "File updated successfully!") {
		t.Fatalf("success line printed on failing exit: %q", out)
	}

	b, _ := os.ReadFile(target)
	if !strings.Contains(string(b), "$studentId = $request->get('student_id');") {
		t.Fatalf("expected target patched before the history failure")
	}
}

func TestPlansList(t *testing.T) {
	root := t.TempDir()
	if _, _, err := runRoot(t, "init", "--path", root); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	out, _, err := runRoot(t, "plans", "list", "-w", root)
	if err != nil {
		t.Fatalf("plans list failed: %v", err)
	}
	if !strings.Contains(out, "- academic-report-fix  (plans/academic-report-fix.yaml)") &&
		!strings.Contains(out, "- academic-report-fix  ("+filepath.Join("plans", "academic-report-fix.yaml")+")") {
		t.Fatalf("unexpected plans output: %q", out)
	}
}

// --- resolvePlanPath ---

func TestResolvePlanPath(t *testing.T) {
	root := t.TempDir()
	plansDir := filepath.Join(root, "plans")
	if err := os.MkdirAll(plansDir, 0o755); err != nil {
		t.Fatal(err)
	}
	plan := "name: Fix Header\nfile: a.txt\nedits:\n  - line: 1\n    text: x\n"
	if err := os.WriteFile(filepath.Join(plansDir, "header.yml"), []byte(plan), 0o644); err != nil {
		t.Fatal(err)
	}

	ws := &workspaceCtx{
		root:  root,
		cfg:   domain.DefaultConfig(),
		plans: yamlplan.NewLoader(),
	}
	want := filepath.Join(plansDir, "header.yml")

	for _, in := range []string{"header", "header.yml", "fix header"} {
		got, err := resolvePlanPath(ws, in)
		if err != nil {
			t.Fatalf("resolvePlanPath(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("resolvePlanPath(%q) = %q, want %q", in, got, want)
		}
	}

	got, err := resolvePlanPath(ws, "other/p.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(root, "other", "p.yaml") {
		t.Fatalf("unexpected relative path resolution: %q", got)
	}

	if _, err := resolvePlanPath(ws, "missing"); err == nil {
		t.Fatalf("expected error for unknown plan")
	}
	if _, err := resolvePlanPath(ws, "  "); err == nil {
		t.Fatalf("expected error for empty plan")
	}
}

func TestVersionCmd(t *testing.T) {
	out, _, err := runRoot(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "linepatch ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}
