package symbols

import (
	"availc/internal/ast"
	"availc/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeImports            // корень: символы из снапшотов .availpack
	ScopeFile               // top-level declarations of one file
	ScopeType               // struct body or extension body
	ScopeFunction           // generics, params and body of a function
	ScopeAlias              // generics of a typealias
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeImports:
		return "imports"
	case ScopeFile:
		return "file"
	case ScopeType:
		return "type"
	case ScopeFunction:
		return "function"
	case ScopeAlias:
		return "alias"
	default:
		return "invalid"
	}
}

// ScopeOwner references the declaration that opened the scope.
type ScopeOwner struct {
	SourceFile source.FileID
	Item       ast.ItemID
}

// Scope models a lexical scope. Extends links an extension body to the
// scope of the extended struct so its members stay visible.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Extends   ScopeID
	Owner     ScopeOwner
	Span      source.Span
	NameIndex map[string][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
