package parser

import (
	"strings"
	"testing"

	"availc/internal/avail"
)

func TestAvailableGrammarErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"no parens", "@available\nfunc noArgs() {}", []string{
			"error 1:2 expected '(' in 'available' attribute",
		}},
		{"wildcard only", "@available(*)\nfunc noKind() {}", []string{
			"error 1:13 expected ',' in 'available' attribute",
		}},
		{"platform only", "@available(OSX)\nlet _: Int", []string{
			"error 1:15 expected ',' in 'available' attribute",
		}},
		{"unknown platform", "@available(badPlatform, unavailable)\nfunc f() {}", []string{
			"warning 1:12 unknown platform 'badPlatform' for attribute 'available'",
		}},
		{"empty", "@available()\nlet _: Int", []string{
			"error 1:12 expected platform name or '*' for 'available' attribute",
		}},
		{"missing option", "@available(OSX,)\nlet _: Int", []string{
			"error 1:16 expected 'available' option such as 'unavailable', 'introduced', 'deprecated', 'obsoleted', 'message', or 'renamed'",
		}},
		{"unknown option", "@available(OSX, unused)\nlet _: Int", []string{
			"error 1:17 expected 'available' option such as 'unavailable', 'introduced', 'deprecated', 'obsoleted', 'message', or 'renamed'",
		}},
		{"message without colon", "@available(OSX, message)\nlet _: Int", []string{
			"error 1:24 expected ':' after 'message' in 'available' attribute",
		}},
		{"message without value", "@available(OSX, message: )\nlet _: Int", []string{
			"error 1:26 expected string literal in 'available' attribute",
		}},
		{"message not a string", "@available(OSX, message: x)\nlet _: Int", []string{
			"error 1:26 expected string literal in 'available' attribute",
		}},
		{"unavailable with colon", "@available(OSX, unavailable:)\nlet _: Int", []string{
			"error 1:28 expected ')' in 'available' attribute",
			"error 1:28 expected declaration",
		}},
		{"introduced without colon", "@available(OSX, introduced)\nlet _: Int", []string{
			"error 1:27 expected ':' after 'introduced' in 'available' attribute",
		}},
		{"introduced without value", "@available(OSX, introduced: )\nlet _: Int", []string{
			"error 1:29 expected version number in 'available' attribute",
		}},
		{"introduced ident", "@available(OSX, introduced: x)\nlet _: Int", []string{
			"error 1:29 expected version number in 'available' attribute",
		}},
		{"version 1.x", "@available(OSX, introduced: 1.x)\nlet _: Int", []string{
			"error 1:30 expected ')' in 'available' attribute",
			"error 1:30 expected declaration",
		}},
		{"version 1.0.x", "@available(OSX, introduced: 1.0.x)\nlet _: Int", []string{
			"error 1:33 expected version number in 'available' attribute",
		}},
		{"hex version", "@available(OSX, introduced: 0x1)\nlet _: Int", []string{
			"error 1:29 expected version number in 'available' attribute",
		}},
		{"exponent version", "@available(OSX, introduced: 1.0e4)\nlet _: Int", []string{
			"error 1:29 expected version number in 'available' attribute",
		}},
		{"negative version", "@available(OSX, introduced: -1)\nlet _: Int", []string{
			"error 1:29 expected version number in 'available' attribute",
		}},
		{"exponent component", "@available(OSX, introduced: 1.0.1e4)\nlet _: Int", []string{
			"error 1:33 expected version number in 'available' attribute",
		}},
		{"hex component", "@available(OSX, introduced: 1.0.0x4)\nlet _: Int", []string{
			"error 1:29 expected version number in 'available' attribute",
		}},
		{"conflict", "@available(*, deprecated, unavailable, message: \"message\")\nstruct BadUnconditionalAvailability { };", []string{
			"error 1:1 'available' attribute cannot be both unconditionally 'unavailable' and 'deprecated'",
		}},
		{"short form missing paren", "@available(iOS 8.0\nfunc shortFormMissingParen() {\n}", []string{
			"error 1:12 must handle potential future platforms with '*'",
			"error 2:1 expected ')' in 'available' attribute",
		}},
		{"short form missing platform", "@available(iOS 8.0,\nfunc shortFormMissingPlatform() {\n}", []string{
			"error 1:19 expected platform name",
		}},
		{"short form missing paren after wildcard", "@available(iOS 8.0, *\nfunc f() {\n}", []string{
			"error 2:1 expected ')' in 'available' attribute",
		}},
		{"short form missing wildcard", "@available(iOS 8.0, OSX 10.10.3)\nfunc f() {}", []string{
			"error 1:12 must handle potential future platforms with '*'",
		}},
		{"old spelling", "@availability(OSX, introduced: 10.10)\nfunc f() { }", []string{
			"error 1:2 @availability has been renamed to @available",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSource(t, tt.src)
			got := p.diagLines()
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Fatalf("diagnostics:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestAvailableInvalidRename(t *testing.T) {
	payloads := []string{"bad name", "Overly.Nested.Name", "_", "a+b", "a(", "a(:)", "a(:b:)"}
	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			p := parseSource(t, "@available(*, renamed: \""+payload+"\")\nlet _: Int")
			want := "error 1:24 'renamed' argument of 'available' attribute must be an operator, identifier, or full function name, optionally prefixed by a type name"
			got := p.diagLines()
			if len(got) != 1 || got[0] != want {
				t.Fatalf("diagnostics: %v", got)
			}
			recs := onlyRecords(t, p, 0)
			if len(recs) != 1 || !recs[0].RenameInvalid || recs[0].Rename != nil || recs[0].Renamed != payload {
				t.Fatalf("record should be kept with the raw payload: %+v", recs)
			}
		})
	}
}

// onlyRecords returns the records of the single attribute on item i.
func onlyRecords(t *testing.T, p parsed, i int) []avail.Record {
	t.Helper()
	item := p.item(t, i)
	if len(item.Attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d (%s)", len(item.Attrs), diagnosticsSummary(p.bag))
	}
	return p.builder.Items.Attr(item.Attrs[0]).Records
}

func TestAvailableLongForm(t *testing.T) {
	p := parseSource(t, "@available(OSX, introduced: 1, deprecated: 2.0, obsoleted: 3.0.0)\nlet _: Int")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	recs := onlyRecords(t, p, 0)
	r := recs[0]
	if r.Platform.ID != avail.MacOS || r.Platform.Name != "OSX" {
		t.Fatalf("platform %+v", r.Platform)
	}
	if r.Introduced.String() != "1" || r.Deprecated.String() != "2.0" || r.Obsoleted.String() != "3.0.0" {
		t.Fatalf("versions %s %s %s", r.Introduced, r.Deprecated, r.Obsoleted)
	}
	if r.DeprecatedUnconditional || r.Unavailable {
		t.Fatalf("unexpected flags %+v", r)
	}

	p = parseSource(t, "@available(OSX, introduced: 1.0.0, deprecated: 2.0, obsoleted: 3, unavailable, renamed: \"x\")\nlet _: Int")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	r = onlyRecords(t, p, 0)[0]
	if !r.Unavailable || r.Rename == nil || r.Rename.BaseName != "x" {
		t.Fatalf("unexpected record %+v", r)
	}

	p = parseSource(t, "@available(OSX, message: \"x\", unavailable)\nlet _: Int")
	if r = onlyRecords(t, p, 0)[0]; !r.Unavailable || r.Message != "x" {
		t.Fatalf("options in any order: %+v", r)
	}
}

func TestAvailableMessageUnescaped(t *testing.T) {
	p := parseSource(t, "@available(*, unavailable, message: \"This message has a double quote \\\"\")\nfunc f() {}\n"+
		"@available(*, deprecated, message: \"Pandas \\u{1F43C} are cute\")\nstruct S { }")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	if got := onlyRecords(t, p, 0)[0].Message; got != `This message has a double quote "` {
		t.Errorf("message = %q", got)
	}
	r := onlyRecords(t, p, 1)[0]
	if r.Message != "Pandas \U0001F43C are cute" || !r.DeprecatedUnconditional {
		t.Errorf("record = %+v", r)
	}
}

func TestAvailableConflictKeepsInvalidRecord(t *testing.T) {
	for _, src := range []string{
		"@available(*, deprecated, unavailable)\nlet _: Int",
		"@available(*, unavailable, deprecated)\nlet _: Int",
	} {
		p := parseSource(t, src)
		if p.bag.Len() != 1 {
			t.Fatalf("%q: expected exactly one diagnostic, got %s", src, diagnosticsSummary(p.bag))
		}
		if r := onlyRecords(t, p, 0)[0]; !r.Invalid {
			t.Fatalf("%q: record must be flagged invalid", src)
		}
	}
}

func TestAvailableShortForm(t *testing.T) {
	p := parseSource(t, "@available(iOS 8.0, *, OSX 10.10.3)\nfunc f() {}")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	recs := onlyRecords(t, p, 0)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Platform.ID != avail.IOS || recs[0].Introduced.String() != "8.0" || !recs[0].ShortForm {
		t.Errorf("first record %+v", recs[0])
	}
	if recs[1].Platform.ID != avail.MacOS || recs[1].Introduced.String() != "10.10.3" {
		t.Errorf("second record %+v", recs[1])
	}

	p = parseSource(t, "@available(iOS 8, *)\nfunc g() {}")
	if recs = onlyRecords(t, p, 0); len(recs) != 1 || recs[0].Introduced.String() != "8" {
		t.Fatalf("integer short form: %+v", recs)
	}
}

func TestAvailableMissingWildcardFix(t *testing.T) {
	src := "@available(iOS 8.0, OSX 10.10.3)\nfunc f() {}"
	p := parseSource(t, src)
	items := p.bag.Items()
	if len(items) != 1 || len(items[0].Fixes) != 1 {
		t.Fatalf("expected one diagnostic with a fix, got %s", diagnosticsSummary(p.bag))
	}
	edit := items[0].Fixes[0].Edits[0]
	if edit.Span.Start != 31 || edit.Span.End != 31 || edit.NewText != ", *" {
		t.Fatalf("unexpected fix edit %+v", edit)
	}
	// записи сохраняются, объявление аннотировано
	if recs := onlyRecords(t, p, 0); len(recs) != 2 {
		t.Fatalf("records must be kept, got %d", len(recs))
	}
}

func TestAvailabilityOldSpellingFix(t *testing.T) {
	p := parseSource(t, "@availability(OSX, introduced: 10.10)\nfunc f() { }")
	d := p.bag.Items()[0]
	if len(d.Fixes) != 1 {
		t.Fatalf("expected a fix")
	}
	e := d.Fixes[0].Edits[0]
	if e.Span.Start != 1 || e.Span.End != 13 || e.NewText != "available" {
		t.Fatalf("unexpected edit %+v", e)
	}
	if recs := onlyRecords(t, p, 0); len(recs) != 1 || recs[0].Introduced.String() != "10.10" {
		t.Fatalf("attribute should still be parsed: %+v", recs)
	}
}

func TestAvailableDroppedOnParseError(t *testing.T) {
	p := parseSource(t, "@available(OSX, introduced: x)\n@available(*, unavailable)\nfunc f() {}")
	item := p.item(t, 0)
	if len(item.Attrs) != 1 {
		t.Fatalf("broken attribute must be dropped, got %d attrs", len(item.Attrs))
	}
	if !p.builder.Items.Attr(item.Attrs[0]).Records[0].Unavailable {
		t.Fatalf("second attribute should survive")
	}
}

func TestAvailableOnGenericParam(t *testing.T) {
	p := parseSource(t, "struct UnavailableGenericParam<@available(*, unavailable, message: \"nope\") T> {\n  func f(t: T) { }\n}")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	st, _ := p.builder.Items.Struct(p.items()[0])
	gp := st.Generics[0]
	if gp.Name != "T" || len(gp.Attrs) != 1 {
		t.Fatalf("generic param %+v", gp)
	}
	attr := p.builder.Items.Attr(gp.Attrs[0])
	if attr.Records[0].Message != "nope" {
		t.Fatalf("record %+v", attr.Records[0])
	}
}
