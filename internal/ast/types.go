package ast

import (
	"strings"

	"availc/internal/source"
)

type TypeKind uint8

const (
	TypePath     TypeKind = iota // A.B<C>
	TypeOptional                 // T?
)

// TypeSegment is one dotted component of a type path.
type TypeSegment struct {
	Name string
	Span source.Span
	Args []TypeID
}

type TypeExpr struct {
	Kind     TypeKind
	Span     source.Span
	Segments []TypeSegment // TypePath
	Elem     TypeID        // TypeOptional
}

type Types struct {
	Arena *Arena[TypeExpr]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{Arena: NewArena[TypeExpr](capHint)}
}

func (t *Types) NewPath(span source.Span, segs []TypeSegment) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypePath, Span: span, Segments: segs}))
}

func (t *Types) NewOptional(span source.Span, elem TypeID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypeOptional, Span: span, Elem: elem}))
}

func (t *Types) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

// String renders the type the way it was written, minus whitespace.
func (t *Types) String(id TypeID) string {
	te := t.Get(id)
	if te == nil {
		return ""
	}
	if te.Kind == TypeOptional {
		return t.String(te.Elem) + "?"
	}
	var sb strings.Builder
	for i, seg := range te.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Name)
		if len(seg.Args) > 0 {
			sb.WriteByte('<')
			for j, a := range seg.Args {
				if j > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(t.String(a))
			}
			sb.WriteByte('>')
		}
	}
	return sb.String()
}
