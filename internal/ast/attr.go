package ast

import (
	"availc/internal/avail"
	"availc/internal/source"
)

// Attr is a parsed attribute. Only @available carries records; any other
// name is kept so the checker can stay silent about it.
type Attr struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Records  []avail.Record
}

// IsAvailability reports whether the attribute is @available (or the old @availability spelling).
func (a *Attr) IsAvailability() bool {
	return a.Name == "available" || a.Name == "availability"
}
