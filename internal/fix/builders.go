package fix

import (
	"availc/internal/diag"
	"availc/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func build(title string, kind diag.FixKind, edits []diag.TextEdit, opts []Option) *diag.Fix {
	f := &diag.Fix{
		Title:         title,
		Kind:          kind,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         edits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// InsertText creates fix that inserts text at span (Span.Start == Span.End).
func InsertText(title string, at source.Span, text, guard string, opts ...Option) *diag.Fix {
	at.End = at.Start
	return build(title, diag.FixKindQuickFix, []diag.TextEdit{{Span: at, NewText: text, OldText: guard}}, opts)
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span, expect string, opts ...Option) *diag.Fix {
	return build(title, diag.FixKindQuickFix, []diag.TextEdit{{Span: span, OldText: expect}}, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) *diag.Fix {
	return build(title, diag.FixKindQuickFix, []diag.TextEdit{{Span: span, NewText: newText, OldText: expect}}, opts)
}

// Edits bundles several edits that only make sense together (a call-site rewrite).
func Edits(title string, edits []diag.TextEdit, opts ...Option) *diag.Fix {
	cp := append([]diag.TextEdit(nil), edits...)
	return build(title, diag.FixKindRefactorRewrite, cp, opts)
}
