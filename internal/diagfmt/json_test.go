package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"availc/internal/diag"
	"availc/internal/source"
)

func decodeJSON(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	return out
}

func TestJSONWithNotesAndFixes(t *testing.T) {
	bag, fs := sampleBag(t)
	out := decodeJSON(t, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SEM3001" {
		t.Errorf("unexpected header %s %s", d.Severity, d.Code)
	}
	if d.Location.File != "test.avl" || d.Location.StartLine != 3 || d.Location.StartCol != 3 {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartCol != 4 {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
	if len(d.Fixes) != 1 {
		t.Fatalf("expected one fix, got %d", len(d.Fixes))
	}
	f := d.Fixes[0]
	if f.ID != "rename-1" || f.Kind != "rewrite" || f.Applicability != "always-safe" || !f.IsPreferred {
		t.Errorf("unexpected fix metadata %+v", f)
	}
	if len(f.Edits) != 2 || f.Edits[0].OldText != "foo" || f.Edits[1].NewText != "x: " {
		t.Fatalf("unexpected edits %+v", f.Edits)
	}
	if got := strings.Join(f.Edits[0].AfterLines, "\n"); got != "  bar()" {
		t.Errorf("per-edit preview = %q", got)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	bag, fs := sampleBag(t)
	out := decodeJSON(t, bag, fs, JSONOpts{})
	d := out.Diagnostics[0]
	if d.Location.StartLine != 0 || d.Location.StartByte != 26 || d.Location.EndByte != 29 {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if d.Notes != nil || d.Fixes != nil {
		t.Error("notes and fixes must be omitted by default")
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("many.avl", []byte(sample))
	bag := diag.NewBag(10)
	for range 5 {
		bag.Add(diag.New(diag.SevWarning, diag.SemaDeprecatedUse, fooUse(fileID), "'foo' is deprecated"))
	}
	out := decodeJSON(t, bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Errorf("Count = %d, want 2", out.Count)
	}
}

func TestSarif(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "availc", ToolVersion: "test", InvocationArgs: []string{"check"}}); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "availc" || len(run.Tool.Driver.Rules) != 1 {
		t.Errorf("unexpected tool %+v", run.Tool)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Error("run with errors must not be successful")
	}
	res := run.Results[0]
	if res.RuleID != "SEM3001" || res.Level != "error" {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.RelatedLocations) != 1 || len(res.Fixes) != 1 {
		t.Fatalf("expected related location and fix, got %+v", res)
	}
	reps := res.Fixes[0].Changes[0].Replacements
	if len(reps) != 2 || reps[1].Inserted.Text != "x: " || reps[1].Deleted.StartColumn != 7 {
		t.Errorf("unexpected replacements %+v", reps)
	}
}

func TestBuildPreviewRejectsOverlap(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("o.avl", []byte(sample))
	_, err := buildPreview(fs, []diag.TextEdit{
		{Span: source.Span{File: fileID, Start: 26, End: 29}, NewText: "a"},
		{Span: source.Span{File: fileID, Start: 27, End: 28}, NewText: "b"},
	})
	if err == nil {
		t.Fatal("expected overlap error")
	}
}
