package rename

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidRenameTarget is returned for payloads that are not an operator,
// identifier or full function name optionally prefixed by a type name.
var ErrInvalidRenameTarget = errors.New("invalid rename target")

// Accessor marks getter:/setter: renames.
type Accessor uint8

const (
	AccessorNone Accessor = iota
	AccessorGetter
	AccessorSetter
)

func (a Accessor) String() string {
	switch a {
	case AccessorGetter:
		return "getter"
	case AccessorSetter:
		return "setter"
	default:
		return "none"
	}
}

// SelfLabel is the label that designates the receiver of an instance member.
const SelfLabel = "self"

// Spec is a parsed rename target.
type Spec struct {
	Raw        string
	Accessor   Accessor
	BaseType   string
	IsOperator bool
	BaseName   string
	// Labels holds one entry per argument slot; "_" is an unnamed slot.
	Labels    []string
	HasParens bool
}

// Parse decomposes a renamed: payload.
func Parse(raw string) (*Spec, error) {
	fail := func(why string) (*Spec, error) {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidRenameTarget, raw, why)
	}
	s := &Spec{Raw: raw}
	rest := raw
	switch {
	case strings.HasPrefix(rest, "getter:"):
		s.Accessor = AccessorGetter
		rest = rest[len("getter:"):]
	case strings.HasPrefix(rest, "setter:"):
		s.Accessor = AccessorSetter
		rest = rest[len("setter:"):]
	}
	if rest == "" {
		return fail("empty name")
	}

	if isOperatorText(rest) {
		if s.Accessor != AccessorNone {
			return fail("accessor on operator")
		}
		s.IsOperator = true
		s.BaseName = rest
		return s, nil
	}

	head, n := scanIdent(rest)
	if n == 0 {
		return fail("expected identifier")
	}
	rest = rest[n:]
	if strings.HasPrefix(rest, ".") {
		s.BaseType = head
		rest = rest[1:]
		if rest == "" {
			return fail("missing member name")
		}
		if isOperatorText(rest) {
			if s.Accessor != AccessorNone || strings.Contains(rest, ".") {
				return fail("unsupported operator member")
			}
			s.IsOperator = true
			s.BaseName = rest
			return s, nil
		}
		head, n = scanIdent(rest)
		if n == 0 {
			return fail("expected member name")
		}
		rest = rest[n:]
	}
	if head == "_" {
		return fail("'_' is not a name")
	}
	s.BaseName = head

	if rest == "" {
		return s, nil
	}
	if rest[0] == '.' {
		return fail("overly nested name")
	}
	if rest[0] != '(' {
		return fail("unexpected characters after name")
	}
	labels, err := parseLabels(rest)
	if err != nil {
		return fail(err.Error())
	}
	s.HasParens = true
	s.Labels = labels
	return s, nil
}

// parseLabels разбирает "(a:_:b:)" целиком; хвост после ')' запрещён.
func parseLabels(text string) ([]string, error) {
	if !strings.HasSuffix(text, ")") {
		return nil, errors.New("unbalanced parentheses")
	}
	body := text[1 : len(text)-1]
	if body == "" {
		return []string{}, nil
	}
	if !strings.HasSuffix(body, ":") {
		return nil, errors.New("argument labels must end with ':'")
	}
	parts := strings.Split(body[:len(body)-1], ":")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, errors.New("empty argument label")
		}
		if id, n := scanIdent(p); n != len(p) || id == "" {
			return nil, fmt.Errorf("bad argument label %q", p)
		}
		labels = append(labels, p)
	}
	return labels, nil
}

// scanIdent returns the identifier prefix of s and its byte length.
func scanIdent(s string) (string, int) {
	i := 0
	for i < len(s) {
		r, sz := utf8.DecodeRuneInString(s[i:])
		ok := r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))
		if !ok {
			break
		}
		i += sz
	}
	return s[:i], i
}

func isOperatorChar(r rune) bool {
	return strings.ContainsRune("/=-+!*%<>&|^~?.", r)
}

func isOperatorText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isOperatorChar(r) {
			return false
		}
	}
	return true
}

// SelfIndex returns the slot labelled "self", or -1.
func (s *Spec) SelfIndex() int {
	for i, l := range s.Labels {
		if l == SelfLabel {
			return i
		}
	}
	return -1
}

// IsInstanceMember reports a member of BaseType whose receiver is one of the arguments.
func (s *Spec) IsInstanceMember() bool {
	return s.BaseType != "" && s.SelfIndex() >= 0
}

// LabelsWithoutSelf drops the self slot.
func (s *Spec) LabelsWithoutSelf() []string {
	idx := s.SelfIndex()
	out := make([]string, 0, len(s.Labels))
	for i, l := range s.Labels {
		if i != idx {
			out = append(out, l)
		}
	}
	return out
}

// QualifiedName is "Type.base" or "base".
func (s *Spec) QualifiedName() string {
	if s.BaseType != "" {
		return s.BaseType + "." + s.BaseName
	}
	return s.BaseName
}

// FullName prints the qualified name with its label list, if any.
func (s *Spec) FullName() string {
	if !s.HasParens {
		return s.QualifiedName()
	}
	return s.QualifiedName() + FormatLabels(s.Labels)
}

// FormatLabels prints "(a:_:)"; an empty list prints "()".
func FormatLabels(labels []string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, l := range labels {
		sb.WriteString(l)
		sb.WriteByte(':')
	}
	sb.WriteByte(')')
	return sb.String()
}

func (s *Spec) String() string { return s.Raw }
