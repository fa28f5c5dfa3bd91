package symbols

import (
	"strings"
	"testing"

	"availc/internal/ast"
	"availc/internal/diag"
	"availc/internal/source"
)

func TestTableFileRootReuse(t *testing.T) {
	table := NewTable(Hints{})
	file := source.FileID(1)
	span := source.Span{File: file}

	first := table.FileRoot(file, span)
	second := table.FileRoot(file, span)

	if !first.IsValid() {
		t.Fatalf("expected valid scope ID")
	}
	if first != second {
		t.Fatalf("expected FileRoot to reuse existing scope, got %v and %v", first, second)
	}
	if parent := table.Scopes.Get(first).Parent; parent != table.Imports {
		t.Fatalf("file scope parent = %v, want imports scope %v", parent, table.Imports)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestResolverLifecycle(t *testing.T) {
	table := NewTable(Hints{})
	file := source.FileID(0)
	root := table.FileRoot(file, source.Span{File: file})

	res := NewResolver(table, root, ResolverOptions{})
	scope := res.Enter(ScopeFunction, ScopeOwner{SourceFile: file, Item: ast.ItemID(42)}, source.Span{File: file})

	if _, ok := res.Declare(Symbol{Name: "value", Kind: SymbolLet, Span: source.Span{File: file, Start: 4, End: 9}}); !ok {
		t.Fatalf("declare returned false")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	res.Leave(scope)
	if res.CurrentScope() != root {
		t.Fatalf("expected root scope after leave")
	}
	if _, ok := res.Lookup("value", KindMaskAny, 100); ok {
		t.Fatalf("function-local symbol must not be visible from the file scope")
	}
}

func TestDeclareDuplicateReportsOnce(t *testing.T) {
	bag := diag.NewBag(10)
	table := NewTable(Hints{})
	root := table.FileRoot(0, source.Span{})
	res := NewResolver(table, root, ResolverOptions{Reporter: diag.BagReporter{Bag: bag}})

	first := source.Span{Start: 7, End: 8}
	if _, ok := res.Declare(Symbol{Name: "x", Kind: SymbolLet, Span: first}); !ok {
		t.Fatalf("first declaration rejected")
	}
	if _, ok := res.Declare(Symbol{Name: "x", Kind: SymbolType, Span: source.Span{Start: 20, End: 21}}); ok {
		t.Fatalf("conflicting declaration accepted")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.SemaDuplicateSymbol || !strings.Contains(d.Message, "'x'") {
		t.Fatalf("unexpected diagnostic %v %q", d.Code, d.Message)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span != first {
		t.Fatalf("expected note at previous declaration, got %+v", d.Notes)
	}
}

func TestOverloadsShareName(t *testing.T) {
	table := NewTable(Hints{})
	root := table.FileRoot(0, source.Span{})
	res := NewResolver(table, root, ResolverOptions{})

	a, _ := res.Declare(Symbol{Name: "f", Kind: SymbolFunction, Labels: []string{"a"}})
	b, ok := res.Declare(Symbol{Name: "f", Kind: SymbolFunction, Labels: []string{"b"}})
	if !ok {
		t.Fatalf("overload rejected")
	}
	all := res.LookupAll("f", KindMaskAny, 0)
	if len(all) != 2 || all[0] != b || all[1] != a {
		t.Fatalf("LookupAll = %v, want newest first [%v %v]", all, b, a)
	}
}

func TestLocalVisibleAfterDeclaration(t *testing.T) {
	table := NewTable(Hints{})
	root := table.FileRoot(0, source.Span{})
	res := NewResolver(table, root, ResolverOptions{})
	res.Enter(ScopeFunction, ScopeOwner{}, source.Span{})

	res.Declare(Symbol{Name: "x", Kind: SymbolLet, Flags: SymbolFlagLocal, Span: source.Span{Start: 30, End: 31}})
	if _, ok := res.Lookup("x", KindMaskValues, 10); ok {
		t.Fatalf("local resolved before its declaration")
	}
	if _, ok := res.Lookup("x", KindMaskValues, 40); !ok {
		t.Fatalf("local not resolved after its declaration")
	}
}

func TestExtensionSeesExtendedMembers(t *testing.T) {
	table := NewTable(Hints{})
	root := table.FileRoot(0, source.Span{})
	res := NewResolver(table, root, ResolverOptions{})

	body := res.Enter(ScopeType, ScopeOwner{}, source.Span{})
	res.Declare(Symbol{Name: "T", Kind: SymbolType, Flags: SymbolFlagMember})
	res.Leave(body)

	ext := res.Enter(ScopeType, ScopeOwner{}, source.Span{})
	table.Scopes.Get(ext).Extends = body
	if _, ok := res.Lookup("T", KindMaskTypes, 0); !ok {
		t.Fatalf("extension does not see members of the extended type")
	}
	res.Leave(ext)
	if _, ok := res.Lookup("T", KindMaskTypes, 0); ok {
		t.Fatalf("member leaked into the file scope")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestImportedSymbolsAreShadowed(t *testing.T) {
	table := NewTable(Hints{})
	imported := table.DeclareImported("core", "f", "f()", SymbolFunction, []string{})
	root := table.FileRoot(0, source.Span{})
	res := NewResolver(table, root, ResolverOptions{})

	if id, _ := res.Lookup("f", KindMaskAny, 0); id != imported {
		t.Fatalf("expected imported symbol, got %v", id)
	}
	local, _ := res.Declare(Symbol{Name: "f", Kind: SymbolFunction, FullName: "f()"})
	if id, _ := res.Lookup("f", KindMaskAny, 0); id != local {
		t.Fatalf("local declaration must shadow import, got %v", id)
	}
	if !table.Symbols.Get(imported).IsImported() {
		t.Fatalf("imported flag missing")
	}
}

func TestValidateReportsBrokenLinks(t *testing.T) {
	table := NewTable(Hints{})
	root := table.FileRoot(0, source.Span{})
	res := NewResolver(table, root, ResolverOptions{})

	fn := res.Enter(ScopeFunction, ScopeOwner{}, source.Span{})
	res.Leave(fn)
	body := res.Enter(ScopeType, ScopeOwner{}, source.Span{})
	res.Leave(body)
	res.Declare(Symbol{Name: "stray", Kind: SymbolType, Flags: SymbolFlagMember})
	if err := table.Validate(); err == nil || !strings.Contains(err.Error(), `member symbol`) {
		t.Fatalf("member outside a type scope not reported: %v", err)
	}

	table = NewTable(Hints{})
	root = table.FileRoot(0, source.Span{})
	res = NewResolver(table, root, ResolverOptions{})
	fn = res.Enter(ScopeFunction, ScopeOwner{}, source.Span{})
	res.Leave(fn)
	body = res.Enter(ScopeType, ScopeOwner{}, source.Span{})
	res.Leave(body)
	table.Scopes.Get(fn).Extends = body
	if err := table.Validate(); err == nil || !strings.Contains(err.Error(), "cannot extend") {
		t.Fatalf("extension link from a function scope not reported: %v", err)
	}
}
