package rename

// Description is the user-facing form of a rename target.
type Description struct {
	// Name is what the user should write instead ('Int.foo()', 'Int.prop', 'blarg').
	Name string
	// Kind is "instance method", "property" or empty.
	Kind string
	// Replaced selects "replaced by" wording over "renamed to".
	Replaced bool
}

// Describe picks the wording for a rename target.
func Describe(s *Spec) Description {
	switch {
	case s.Accessor != AccessorNone:
		d := Description{Name: s.QualifiedName(), Replaced: true}
		if s.BaseType != "" {
			d.Kind = "property"
		}
		return d
	case s.IsInstanceMember() && s.HasParens:
		return Description{
			Name:     s.QualifiedName() + FormatLabels(s.LabelsWithoutSelf()),
			Kind:     "instance method",
			Replaced: true,
		}
	case s.BaseType != "" && s.HasParens:
		return Description{Name: s.FullName(), Replaced: true}
	}
	return Description{Name: s.Raw}
}

// Phrase renders the description for a diagnostic tail:
// "renamed to 'N'" or "replaced by property 'N'".
func (d Description) Phrase() string {
	if !d.Replaced {
		return "renamed to '" + d.Name + "'"
	}
	if d.Kind != "" {
		return "replaced by " + d.Kind + " '" + d.Name + "'"
	}
	return "replaced by '" + d.Name + "'"
}
