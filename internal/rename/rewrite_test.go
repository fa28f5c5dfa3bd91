package rename

import (
	"fmt"
	"strings"
	"testing"

	"availc/internal/source"
)

// shapeOf строит CallSiteShape из строки вида "  f(a: 0 + 0, &x)".
// Поддерживает только то, что нужно тестам: один уровень скобок.
func shapeOf(t *testing.T, line string) CallSiteShape {
	t.Helper()
	sp := func(s, e int) source.Span { return source.Span{Start: uint32(s), End: uint32(e)} } //nolint:gosec
	start := len(line) - len(strings.TrimLeft(line, " "))
	lp := strings.IndexByte(line, '(')
	rp := strings.LastIndexByte(line, ')')
	if lp < 0 || rp < lp {
		t.Fatalf("not a call: %q", line)
	}
	shape := CallSiteShape{Ref: sp(start, lp), IsCall: true, LParen: sp(lp, lp+1), RParen: sp(rp, rp+1)}
	inner := line[lp+1 : rp]
	if strings.TrimSpace(inner) == "" {
		return shape
	}
	off := lp + 1
	for _, seg := range strings.Split(inner, ",") {
		segStart := off
		off += len(seg) + 1
		lead := len(seg) - len(strings.TrimLeft(seg, " "))
		seg = strings.TrimSpace(seg)
		pos := segStart + lead
		var a Arg
		if i := strings.Index(seg, ": "); i > 0 && !strings.ContainsAny(seg[:i], " &") {
			a.Label = seg[:i]
			a.LabelSpan = sp(pos, pos+i)
			pos += i + 2
			seg = seg[i+2:]
		}
		a.ValueSpan = sp(pos, pos+len(seg))
		a.ValueText = seg
		a.Compound = strings.Contains(seg, " ")
		a.Inout = strings.HasPrefix(seg, "&")
		shape.Args = append(shape.Args, a)
	}
	return shape
}

// fixits печатает правки в виде {{col-col=text}} с колонками от 1.
func fixits(edits []Edit) string {
	parts := make([]string, 0, len(edits))
	for _, e := range edits {
		parts = append(parts, fmt.Sprintf("{{%d-%d=%s}}", e.Span.Start+1, e.Span.End+1, e.Text))
	}
	if len(parts) == 0 {
		return "{{none}}"
	}
	return strings.Join(parts, " ")
}

func TestRewriteCallSites(t *testing.T) {
	tests := []struct {
		name    string
		renamed string
		line    string
		want    string
		result  string
	}{
		{"arg names", "shinyLabeledArguments(example:)", "  unavailableArgNames(a: 0)",
			"{{3-22=shinyLabeledArguments}} {{23-24=example}}", "  shinyLabeledArguments(example: 0)"},
		{"member arg names", "DummyType.shinyLabeledArguments(example:)", "  unavailableMemberArgNames(a: 0)",
			"{{3-28=DummyType.shinyLabeledArguments}} {{29-30=example}}", ""},
		{"no args", "shinyLabeledArguments()", "  unavailableNoArgs()", "{{3-20=shinyLabeledArguments}}", ""},
		{"same label", "shinyLabeledArguments(a:)", "  unavailableSame(a: 0)", "{{3-18=shinyLabeledArguments}}", ""},
		{"unnamed", "shinyLabeledArguments(example:)", "  unavailableUnnamed(0)",
			"{{3-21=shinyLabeledArguments}} {{22-22=example: }}", ""},
		{"unnamed same", "shinyLabeledArguments(_:)", "  unavailableUnnamedSame(0)", "{{3-25=shinyLabeledArguments}}", ""},
		{"newly unnamed", "shinyLabeledArguments(_:)", "  unavailableNewlyUnnamed(a: 0)",
			"{{3-26=shinyLabeledArguments}} {{27-30=}}", "  shinyLabeledArguments(0)"},
		{"multi unnamed", "shinyLabeledArguments(example:another:)", "  unavailableMultiUnnamed(0, 1)",
			"{{3-26=shinyLabeledArguments}} {{27-27=example: }} {{30-30=another: }}", ""},
		{"multi newly unnamed", "shinyLabeledArguments(_:_:)", "  unavailableMultiNewlyUnnamed(a: 0, b: 1)",
			"{{3-31=shinyLabeledArguments}} {{32-35=}} {{38-41=}}", ""},
		{"too few", "shinyLabeledArguments()", "  unavailableTooFew(a: 0)", "{{3-20=shinyLabeledArguments}}", ""},
		{"too many", "shinyLabeledArguments(a:b:)", "  unavailableTooManyUnnamed(0)", "{{3-28=shinyLabeledArguments}}", ""},
		{"instance", "Int.foo(self:)", "  unavailableInstance(a: 0)", "{{3-22=0.foo}} {{23-27=}}", "  0.foo()"},
		{"instance compound", "Int.foo(self:)", "  unavailableInstance(a: 0 + 0)", "{{3-22=(0 + 0).foo}} {{23-31=}}", "  (0 + 0).foo()"},
		{"instance unlabeled", "Int.foo(self:)", "  unavailableInstanceUnlabeled(0)", "{{3-31=0.foo}} {{32-33=}}", ""},
		{"instance first", "Int.foo(self:other:)", "  unavailableInstanceFirst(a: 0, b: 1)",
			"{{3-27=0.foo}} {{28-34=}} {{34-35=other}}", "  0.foo(other: 1)"},
		{"instance second", "Int.foo(other:self:)", "  unavailableInstanceSecond(a: 0, b: 1)",
			"{{3-28=1.foo}} {{29-30=other}} {{33-39=}}", "  1.foo(other: 0)"},
		{"instance second of three", "Int.foo(_:self:c:)", "  unavailableInstanceSecondOfThree(a: 0, b: 1, c: 2)",
			"{{3-35=1.foo}} {{36-39=}} {{42-48=}}", "  1.foo(0, c: 2)"},
		{"instance too few", "Int.shinyLabeledArguments(self:)", "  unavailableInstanceTooFew(a: 0, b: 1)", "{{none}}", ""},
		{"instance too many", "Int.shinyLabeledArguments(self:b:)", "  unavailableInstanceTooMany(a: 0)", "{{none}}", ""},
		{"instance no args", "Int.shinyLabeledArguments(self:)", "  unavailableInstanceNoArgsTooMany()", "{{none}}", ""},
		{"getter", "getter:Int.prop(self:)", "  unavailableInstanceProperty(a: 1)", "{{3-30=1.prop}} {{30-36=}}", "  1.prop"},
		{"getter compound", "getter:Int.prop(self:)", "  unavailableInstancePropertyUnlabeled(1 + 1)",
			"{{3-39=(1 + 1).prop}} {{39-46=}}", ""},
		{"class getter", "getter:Int.prop()", "  unavailableClassProperty()", "{{3-27=Int.prop}} {{27-29=}}", ""},
		{"global getter", "getter:global()", "  unavailableGlobalProperty()", "{{3-28=global}} {{28-30=}}", "  global"},
		{"setter", "setter:Int.prop(self:_:)", "  unavailableSetInstanceProperty(a: 1, b: 2)",
			"{{3-33=1.prop}} {{33-43= = }} {{44-45=}}", "  1.prop = 2"},
		{"setter unlabeled", "setter:Int.prop(self:newValue:)", "  unavailableSetInstancePropertyUnlabeled(1, 2)",
			"{{3-42=1.prop}} {{42-46= = }} {{47-48=}}", ""},
		{"setter reverse", "setter:Int.prop(_:self:)", "  unavailableSetInstancePropertyReverse(a: 1, b: 2)",
			"{{3-40=2.prop}} {{40-44= = }} {{45-52=}}", "  2.prop = 1"},
		{"setter reverse compound", "setter:Int.prop(_:self:)", "  unavailableSetInstancePropertyReverse(a: 1 + 1, b: 2 + 2)",
			"{{3-40=(2 + 2).prop}} {{40-44= = }} {{49-60=}}", ""},
		{"setter unlabeled reverse compound", "setter:Int.prop(newValue:self:)", "  unavailableSetInstancePropertyUnlabeledReverse(1 + 1, 2 + 2)",
			"{{3-49=(2 + 2).prop}} {{49-50= = }} {{55-63=}}", ""},
		{"class setter", "setter:Int.prop(x:)", "  unavailableSetClassProperty(a: 1)",
			"{{3-30=Int.prop}} {{30-34= = }} {{35-36=}}", "  Int.prop = 1"},
		{"global setter", "setter:global(_:)", "  unavailableSetGlobalProperty(1)",
			"{{3-31=global}} {{31-32= = }} {{33-34=}}", ""},
		{"inout setter", "setter:Int.prop(self:_:)", "  unavailableSetInstancePropertyInout(a: &x, b: 2)",
			"{{3-38=x.prop}} {{38-49= = }} {{50-51=}}", "  x.prop = 2"},
		{"reorder falls back", "foo(b:a:)", "  f(a: 1, b: 2)", "{{none}}", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Parse(tt.renamed)
			if err != nil {
				t.Fatal(err)
			}
			res := Rewrite(spec, shapeOf(t, tt.line))
			if got := fixits(res.Edits); got != tt.want {
				t.Fatalf("edits:\n got: %s\nwant: %s", got, tt.want)
			}
			if tt.result != "" {
				if got := Apply(tt.line, 0, res.Edits); got != tt.result {
					t.Fatalf("applied: got %q, want %q", got, tt.result)
				}
			}
		})
	}
}

func TestRewriteOperatorAndNonCall(t *testing.T) {
	op, _ := Parse("&+")
	shape := CallSiteShape{Ref: source.Span{Start: 4, End: 5}, IsOperatorRef: true}
	if got := fixits(Rewrite(op, shape).Edits); got != "{{5-6=&+}}" {
		t.Fatalf("operator edits = %s", got)
	}

	// an operator rename never applies to an identifier reference and vice versa
	if res := Rewrite(op, CallSiteShape{Ref: source.Span{Start: 2, End: 5}}); len(res.Edits) != 0 || res.Fallback != FallbackKindMismatch {
		t.Fatalf("expected kind mismatch, got %+v", res)
	}
	id, _ := Parse("foo")
	if res := Rewrite(id, shape); len(res.Edits) != 0 {
		t.Fatalf("expected no edits for identifier rename of an operator")
	}

	ty, _ := Parse("DummyType.Foo")
	res := Rewrite(ty, CallSiteShape{Ref: source.Span{Start: 9, End: 24}})
	if got := fixits(res.Edits); got != "{{10-25=DummyType.Foo}}" {
		t.Fatalf("type edits = %s", got)
	}
}

func TestRewriteFallbackReasons(t *testing.T) {
	inst, _ := Parse("Int.shinyLabeledArguments(self:)")
	if res := Rewrite(inst, shapeOf(t, "f(a: 0, b: 1)")); res.Fallback != FallbackArity {
		t.Fatalf("expected arity fallback, got %v", res.Fallback)
	}
	global, _ := Parse("g(a:b:)")
	if res := Rewrite(global, shapeOf(t, "f(a: 0)")); res.Fallback != FallbackArity || len(res.Edits) != 1 {
		t.Fatalf("expected callee-only arity fallback, got %+v", res)
	}
	reorder, _ := Parse("Int.foo(self:b:a:)")
	if res := Rewrite(reorder, shapeOf(t, "f(x: 0, a: 1, b: 2)")); res.Fallback != FallbackReorder || len(res.Edits) != 0 {
		t.Fatalf("expected reorder fallback, got %+v", res)
	}
	if FallbackReorder.String() != "argument reordering" {
		t.Fatalf("unexpected fallback name")
	}
}
