package rename

import "availc/internal/source"

// Arg is one argument of a call site as seen by the rewriter.
type Arg struct {
	Label     string      // "" when unlabeled
	LabelSpan source.Span // empty when unlabeled
	ValueSpan source.Span // includes a leading '&' for inout arguments
	ValueText string
	// Compound is set for values with a top-level operator (0 + 0).
	Compound bool
	Inout    bool
}

// Start is where the argument begins: its label, or its value.
func (a Arg) Start() uint32 {
	if a.Label != "" {
		return a.LabelSpan.Start
	}
	return a.ValueSpan.Start
}

// ReceiverText is the argument as it should appear before '.member'.
func (a Arg) ReceiverText() string {
	text := a.ValueText
	if a.Inout && len(text) > 0 && text[0] == '&' {
		text = text[1:]
	}
	if a.Compound {
		return "(" + text + ")"
	}
	return text
}

// CallSiteShape is the textual shape of a reference; built per diagnostic.
type CallSiteShape struct {
	// Ref covers the referenced name: callee identifier, operator token or type name.
	Ref           source.Span
	IsOperatorRef bool
	IsCall        bool
	LParen        source.Span
	RParen        source.Span
	Args          []Arg
}

// AnyLabeled reports whether at least one argument carries a label.
func (s CallSiteShape) AnyLabeled() bool {
	for _, a := range s.Args {
		if a.Label != "" {
			return true
		}
	}
	return false
}
