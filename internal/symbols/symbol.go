package symbols

import (
	"availc/internal/ast"
	"availc/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolOperator
	SymbolType // struct or typealias
	SymbolGeneric
	SymbolLet
	SymbolParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolOperator:
		return "operator"
	case SymbolType:
		return "type"
	case SymbolGeneric:
		return "generic"
	case SymbolLet:
		return "let"
	case SymbolParam:
		return "param"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagMember SymbolFlags = 1 << iota
	SymbolFlagMutable
	SymbolFlagImported
	// SymbolFlagLocal: виден только после своего объявления.
	SymbolFlagLocal
)

// Strings returns textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagMember != 0 {
		labels = append(labels, "member")
	}
	if f&SymbolFlagMutable != 0 {
		labels = append(labels, "mutable")
	}
	if f&SymbolFlagImported != 0 {
		labels = append(labels, "imported")
	}
	if f&SymbolFlagLocal != 0 {
		labels = append(labels, "local")
	}
	return labels
}

// SymbolDecl points back at the AST origin for diagnostics.
// Imported symbols have no AST origin.
type SymbolDecl struct {
	SourceFile source.FileID
	Item       ast.ItemID
	Param      ast.ParamID
}

// Symbol describes a named entity available in a scope.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Scope ScopeID
	// Span is the name span; for imported symbols it is empty.
	Span  source.Span
	Flags SymbolFlags
	Decl  SymbolDecl
	// FullName is the name diagnostics print at the declaration: "f(a:_:)".
	FullName string
	// Labels are the argument labels callers write; nil for non-functions.
	Labels []string
	// Module names the snapshot an imported symbol came from.
	Module string
}

func (s *Symbol) IsImported() bool { return s.Flags&SymbolFlagImported != 0 }

// IsCallable reports functions and operators.
func (s *Symbol) IsCallable() bool {
	return s.Kind == SymbolFunction || s.Kind == SymbolOperator
}
