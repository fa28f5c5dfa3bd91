package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"availc/internal/source"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas of one compilation unit.
// Imports is the root scope; every file scope hangs below it.
type Table struct {
	Scopes   *Scopes
	Symbols  *Symbols
	Imports  ScopeID
	fileRoot map[source.FileID]ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t := &Table{
		Scopes:   NewScopes(scopeCap),
		Symbols:  NewSymbols(symCap),
		fileRoot: make(map[source.FileID]ScopeID),
	}
	t.Imports = t.Scopes.New(ScopeImports, NoScopeID, ScopeOwner{}, source.Span{})
	return t
}

// FileRoot returns (and creates if needed) the top-level scope of a file.
func (t *Table) FileRoot(file source.FileID, span source.Span) ScopeID {
	if scope, ok := t.fileRoot[file]; ok {
		return scope
	}
	scope := t.Scopes.New(ScopeFile, t.Imports, ScopeOwner{SourceFile: file}, span)
	t.fileRoot[file] = scope
	return scope
}

// DeclareImported installs a symbol from an availability snapshot into the
// imports scope. Imported names never conflict: the newest snapshot wins.
func (t *Table) DeclareImported(module, name, fullName string, kind SymbolKind, labels []string) SymbolID {
	sym := Symbol{
		Name:     name,
		Kind:     kind,
		Scope:    t.Imports,
		Flags:    SymbolFlagImported,
		FullName: fullName,
		Labels:   labels,
		Module:   module,
	}
	id := t.Symbols.New(&sym)
	scope := t.Scopes.Get(t.Imports)
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[name] = append(scope.NameIndex[name], id)
	return id
}

// Members lists the symbols declared directly in scope, in declaration order.
func (t *Table) Members(scope ScopeID) []SymbolID {
	s := t.Scopes.Get(scope)
	if s == nil {
		return nil
	}
	return s.Symbols
}
