package rename

import (
	"fmt"
	"sort"

	"availc/internal/source"
)

// Edit replaces Span with Text.
type Edit struct {
	Span source.Span
	Text string
}

// Fallback explains why a rewrite produced fewer edits than a full migration.
type Fallback uint8

const (
	FallbackNone Fallback = iota
	FallbackKindMismatch
	FallbackArity
	FallbackReorder
)

func (f Fallback) String() string {
	switch f {
	case FallbackKindMismatch:
		return "operator/identifier mismatch"
	case FallbackArity:
		return "argument count mismatch"
	case FallbackReorder:
		return "argument reordering"
	default:
		return "none"
	}
}

// Result holds the edits, sorted by offset and non-overlapping.
type Result struct {
	Edits    []Edit
	Fallback Fallback
}

// Rewrite computes the edits migrating shape to spec.
func Rewrite(spec *Spec, shape CallSiteShape) Result {
	if spec == nil {
		return Result{}
	}
	if spec.IsOperator != shape.IsOperatorRef {
		return Result{Fallback: FallbackKindMismatch}
	}
	if spec.IsOperator {
		return done(Result{Edits: []Edit{replace(shape.Ref, spec.BaseName)}})
	}
	if spec.IsInstanceMember() {
		return rewriteInstance(spec, shape)
	}

	callee := replace(shape.Ref, spec.QualifiedName())
	res := Result{Edits: []Edit{callee}}
	if !shape.IsCall {
		return done(res)
	}
	args := shape.Args

	switch spec.Accessor {
	case AccessorGetter:
		if len(args) != 0 {
			res.Fallback = FallbackArity
			return done(res)
		}
		res.Edits = append(res.Edits, remove(shape.LParen.Start, shape.RParen.End, shape.Ref.File))
	case AccessorSetter:
		if len(args) != 1 {
			res.Fallback = FallbackArity
			return done(res)
		}
		res.Edits = append(res.Edits, setterEdits(shape, args[0])...)
	default:
		if !spec.HasParens {
			return done(res)
		}
		if len(spec.Labels) != len(args) {
			res.Fallback = FallbackArity
			return done(res)
		}
		labelEdits, ok := relabel(args, spec.Labels, -1)
		if !ok {
			return Result{Fallback: FallbackReorder}
		}
		res.Edits = append(res.Edits, labelEdits...)
	}
	return done(res)
}

// rewriteInstance превращает f(a: x, b: y) в x.foo(b: y) и т.п.
// При несовпадении арности правок нет вовсе.
func rewriteInstance(spec *Spec, shape CallSiteShape) Result {
	args := shape.Args
	selfIdx := spec.SelfIndex()
	if !shape.IsCall || len(spec.Labels) != len(args) || selfIdx >= len(args) {
		return Result{Fallback: FallbackArity}
	}
	switch spec.Accessor {
	case AccessorGetter:
		if len(args) != 1 {
			return Result{Fallback: FallbackArity}
		}
	case AccessorSetter:
		if len(args) != 2 {
			return Result{Fallback: FallbackArity}
		}
	}

	file := shape.Ref.File
	self := args[selfIdx]
	edits := []Edit{replace(shape.Ref, self.ReceiverText()+"."+spec.BaseName)}

	switch spec.Accessor {
	case AccessorGetter:
		edits = append(edits, remove(shape.LParen.Start, shape.RParen.End, file))
		return done(Result{Edits: edits})
	case AccessorSetter:
		value := args[1]
		if selfIdx != 0 {
			value = args[0]
		}
		edits = append(edits, setterEdits(shape, value)...)
		return done(Result{Edits: edits})
	}

	labelEdits, ok := relabel(args, spec.Labels, selfIdx)
	if !ok {
		return Result{Fallback: FallbackReorder}
	}

	switch {
	case selfIdx == len(args)-1 && selfIdx > 0:
		edits = append(edits, remove(args[selfIdx-1].ValueSpan.End, shape.RParen.Start, file))
	case selfIdx == len(args)-1:
		edits = append(edits, remove(shape.LParen.End, shape.RParen.Start, file))
	default:
		edits = append(edits, remove(self.Start(), args[selfIdx+1].Start(), file))
	}
	edits = append(edits, labelEdits...)
	return done(Result{Edits: edits})
}

// setterEdits: "(…value" → " = value", "value…)" → "".
func setterEdits(shape CallSiteShape, value Arg) []Edit {
	file := shape.Ref.File
	return []Edit{
		{Span: source.Span{File: file, Start: shape.LParen.Start, End: value.ValueSpan.Start}, Text: " = "},
		remove(value.ValueSpan.End, shape.RParen.End, file),
	}
}

// relabel сопоставляет метки аргументов с новыми; skip - индекс self.
// ok=false когда новая метка совпадает со старой меткой другого аргумента:
// это перестановка, которую мы не переписываем.
func relabel(args []Arg, labels []string, skip int) ([]Edit, bool) {
	var edits []Edit
	for i, a := range args {
		if i == skip {
			continue
		}
		want := labels[i]
		if want == "_" {
			want = ""
		}
		if want == a.Label {
			continue
		}
		if want != "" {
			for j, other := range args {
				if j != i && j != skip && other.Label == want {
					return nil, false
				}
			}
		}
		file := a.ValueSpan.File
		switch {
		case a.Label == "":
			edits = append(edits, Edit{Span: source.Span{File: file, Start: a.ValueSpan.Start, End: a.ValueSpan.Start}, Text: want + ": "})
		case want == "":
			edits = append(edits, remove(a.LabelSpan.Start, a.ValueSpan.Start, file))
		default:
			edits = append(edits, replace(a.LabelSpan, want))
		}
	}
	return edits, true
}

func replace(sp source.Span, text string) Edit { return Edit{Span: sp, Text: text} }

func remove(start, end uint32, file source.FileID) Edit {
	return Edit{Span: source.Span{File: file, Start: start, End: end}}
}

// done сортирует правки и проверяет, что они не пересекаются; пересечение - ошибка в этом пакете.
func done(r Result) Result {
	sort.SliceStable(r.Edits, func(i, j int) bool {
		a, b := r.Edits[i].Span, r.Edits[j].Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
	for i := 1; i < len(r.Edits); i++ {
		if r.Edits[i].Span.Start < r.Edits[i-1].Span.End {
			panic(fmt.Sprintf("rename: overlapping edits %v and %v", r.Edits[i-1].Span, r.Edits[i].Span))
		}
	}
	return r
}

// Apply applies edits to text whose offsets start at base; used by tests and previews.
func Apply(text string, base uint32, edits []Edit) string {
	out := make([]byte, 0, len(text))
	pos := base
	for _, e := range edits {
		out = append(out, text[pos-base:e.Span.Start-base]...)
		out = append(out, e.Text...)
		pos = e.Span.End
	}
	out = append(out, text[pos-base:]...)
	return string(out)
}
