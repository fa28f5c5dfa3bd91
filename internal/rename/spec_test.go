package rename

import (
	"errors"
	"slices"
	"testing"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		raw      string
		accessor Accessor
		baseType string
		op       bool
		base     string
		labels   []string
		parens   bool
	}{
		{"Float", AccessorNone, "", false, "Float", nil, false},
		{"&+", AccessorNone, "", true, "&+", nil, false},
		{"DummyType.foo", AccessorNone, "DummyType", false, "foo", nil, false},
		{"shinyLabeledArguments()", AccessorNone, "", false, "shinyLabeledArguments", []string{}, true},
		{"shinyLabeledArguments(example:)", AccessorNone, "", false, "shinyLabeledArguments", []string{"example"}, true},
		{"shinyLabeledArguments(_:_:)", AccessorNone, "", false, "shinyLabeledArguments", []string{"_", "_"}, true},
		{"Int.foo(other:self:)", AccessorNone, "Int", false, "foo", []string{"other", "self"}, true},
		{"getter:Int.prop(self:)", AccessorGetter, "Int", false, "prop", []string{"self"}, true},
		{"getter:global()", AccessorGetter, "", false, "global", []string{}, true},
		{"setter:Int.prop(self:_:)", AccessorSetter, "Int", false, "prop", []string{"self", "_"}, true},
		{"..<", AccessorNone, "", true, "..<", nil, false},
	}
	for _, tt := range tests {
		s, err := Parse(tt.raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.raw, err)
		}
		if s.Accessor != tt.accessor || s.BaseType != tt.baseType || s.IsOperator != tt.op ||
			s.BaseName != tt.base || s.HasParens != tt.parens || !slices.Equal(s.Labels, tt.labels) {
			t.Errorf("Parse(%q) = %+v", tt.raw, s)
		}
		if s.String() != tt.raw {
			t.Errorf("raw not preserved for %q", tt.raw)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, raw := range []string{
		"", "bad name", "Overly.Nested.Name", "_", "a+b", "a(", "a(:)", "a(:b:)",
		"getter:+", "a(b)", "a(b:)c", "1abc", "Type.", "getter:",
	} {
		if _, err := Parse(raw); !errors.Is(err, ErrInvalidRenameTarget) {
			t.Errorf("Parse(%q): expected ErrInvalidRenameTarget, got %v", raw, err)
		}
	}
}

func TestSpecHelpers(t *testing.T) {
	s, err := Parse("Int.foo(_:self:c:)")
	if err != nil {
		t.Fatal(err)
	}
	if s.SelfIndex() != 1 || !s.IsInstanceMember() {
		t.Fatalf("self slot not found")
	}
	if got := s.LabelsWithoutSelf(); !slices.Equal(got, []string{"_", "c"}) {
		t.Fatalf("LabelsWithoutSelf = %v", got)
	}
	if s.FullName() != "Int.foo(_:self:c:)" {
		t.Fatalf("FullName = %q", s.FullName())
	}
	g, _ := Parse("foo(self:)")
	if g.IsInstanceMember() {
		t.Fatalf("self label without a type is not an instance member")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		raw    string
		phrase string
		name   string
	}{
		{"Float", "renamed to 'Float'", "Float"},
		{"&+", "renamed to '&+'", "&+"},
		{"DummyType.foo", "renamed to 'DummyType.foo'", "DummyType.foo"},
		{"shinyLabeledArguments(example:)", "renamed to 'shinyLabeledArguments(example:)'", "shinyLabeledArguments(example:)"},
		{"DummyType.shinyLabeledArguments(example:)", "replaced by 'DummyType.shinyLabeledArguments(example:)'", "DummyType.shinyLabeledArguments(example:)"},
		{"Int.foo(self:)", "replaced by instance method 'Int.foo()'", "Int.foo()"},
		{"Int.foo(_:self:c:)", "replaced by instance method 'Int.foo(_:c:)'", "Int.foo(_:c:)"},
		{"getter:Int.prop(self:)", "replaced by property 'Int.prop'", "Int.prop"},
		{"getter:Int.prop()", "replaced by property 'Int.prop'", "Int.prop"},
		{"getter:global()", "replaced by 'global'", "global"},
		{"setter:Int.prop(x:)", "replaced by property 'Int.prop'", "Int.prop"},
	}
	for _, tt := range tests {
		s, err := Parse(tt.raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.raw, err)
		}
		d := Describe(s)
		if d.Phrase() != tt.phrase || d.Name != tt.name {
			t.Errorf("Describe(%q) = %q / %q, want %q / %q", tt.raw, d.Phrase(), d.Name, tt.phrase, tt.name)
		}
	}
}
