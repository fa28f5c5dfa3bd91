package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "detail": LevelDetail, " debug ": LevelDebug, "": LevelOff}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase level must not emit file events")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeDecl) {
		t.Error("detail level emits up to file scope")
	}
	if LevelError.ShouldEmit(ScopeCommand) {
		t.Error("error level streams nothing")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeCommand, "check", 0)
	file := Begin(tr, ScopeFile, "file:a.avl", root.ID())
	Begin(tr, ScopeDecl, "decl:foo", file.ID()).End("")
	file.WithExtra("diagnostics", "2").End("")
	root.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ check") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[2], "← file:a.avl {diagnostics=2}") {
		t.Errorf("unexpected file end line %q", lines[2])
	}
	if !strings.Contains(lines[3], "← check (ok)") {
		t.Errorf("unexpected last line %q", lines[3])
	}
	if strings.Contains(out, "decl:foo") {
		t.Error("decl events must be filtered at detail level")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	span := Begin(tr, ScopePhase, "parse", 0)
	span.End("")

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev map[string]any
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev["name"] != "parse" || ev["scope"] != "phase" {
			t.Errorf("unexpected event %v", ev)
		}
		kinds = append(kinds, ev["kind"].(string))
	}
	if strings.Join(kinds, ",") != "begin,end" {
		t.Errorf("kinds = %v", kinds)
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeDecl, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Errorf("snapshot order = %v", names)
	}
}

func TestErrorLevelRingCapturesFiles(t *testing.T) {
	tr, err := New(Config{Level: LevelError})
	if err != nil {
		t.Fatal(err)
	}
	ring, ok := tr.(*RingTracer)
	if !ok {
		t.Fatalf("error level should produce a ring, got %T", tr)
	}
	Begin(ring, ScopeFile, "file:x.avl", 0)
	var buf bytes.Buffer
	if err := DumpTo(tr, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "file:x.avl") {
		t.Errorf("dump misses file event:\n%s", buf.String())
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context must yield Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := BeginCtx(ctx, ScopeCommand, "check")
	_, inner := BeginCtx(ctx, ScopeFile, "file:a.avl")
	inner.End("")
	outer.End("")

	dec := json.NewDecoder(&buf)
	for dec.More() {
		var ev jsonEvent
		if err := dec.Decode(&ev); err != nil {
			t.Fatal(err)
		}
		if ev.Name == "file:a.avl" && ev.ParentID != outer.ID() {
			t.Errorf("file span parent = %d, want %d", ev.ParentID, outer.ID())
		}
	}
}

func TestInertSpanKeepsParent(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	root := Begin(tr, ScopeCommand, "check", 0)
	file := Begin(tr, ScopeFile, "file:a.avl", root.ID())
	if file.ID() != root.ID() {
		t.Errorf("filtered span should report parent id %d, got %d", root.ID(), file.ID())
	}
	if d := file.End(""); d != 0 {
		t.Errorf("inert span duration = %v", d)
	}
}

func TestParseFormatAndDetect(t *testing.T) {
	f, err := ParseFormat("ndjson")
	if err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if detectFormat(FormatAuto, "out.ndjson") != FormatNDJSON {
		t.Error("ndjson extension not detected")
	}
	if detectFormat(FormatAuto, "-") != FormatText {
		t.Error("stderr defaults to text")
	}
}
