package parser

import (
	"fmt"
	"strings"
	"testing"

	"availc/internal/ast"
	"availc/internal/diag"
	"availc/internal/lexer"
	"availc/internal/source"
	"availc/internal/testkit"
)

type parsed struct {
	fs      *source.FileSet
	builder *ast.Builder
	file    ast.FileID
	bag     *diag.Bag
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.avl", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})

	result := ParseFile(fs, lx, builder, Options{MaxErrors: 100, Reporter: reporter})
	if result.Bag == nil {
		result.Bag = bag
	}
	return parsed{fs: fs, builder: builder, file: result.File, bag: result.Bag}
}

// diagLines renders diagnostics in emission order as "sev line:col message".
func (p parsed) diagLines() []string {
	items := p.bag.Items()
	out := make([]string, 0, len(items))
	for _, d := range items {
		start, _ := p.fs.Resolve(d.Primary)
		sev := "error"
		if d.Severity == diag.SevWarning {
			sev = "warning"
		}
		out = append(out, fmt.Sprintf("%s %d:%d %s", sev, start.Line, start.Col, d.Message))
	}
	return out
}

func (p parsed) items() []ast.ItemID {
	return p.builder.Files.Get(p.file).Items
}

func (p parsed) item(t *testing.T, i int) *ast.Item {
	t.Helper()
	items := p.items()
	if i >= len(items) {
		t.Fatalf("expected at least %d items, got %d (%s)", i+1, len(items), diagnosticsSummary(p.bag))
	}
	return p.builder.Items.Get(items[i])
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func TestParseDeclarations(t *testing.T) {
	src := `struct MyCollection<Element> {
  typealias T = Element
  func foo(x: T) { }
}

extension MyCollection {
  func append(element: T) { }
}

var x : int
let _: Int
typealias DeprecatedType = Int
func +(x: DummyType, y: DummyType) {}
struct BadUnconditionalAvailability { };
`
	p := parseSource(t, src)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	wantKinds := []ast.ItemKind{ast.ItemStruct, ast.ItemExtension, ast.ItemLet, ast.ItemLet, ast.ItemTypeAlias, ast.ItemFn, ast.ItemStruct}
	if got := len(p.items()); got != len(wantKinds) {
		t.Fatalf("expected %d items, got %d", len(wantKinds), got)
	}
	for i, kind := range wantKinds {
		if got := p.item(t, i).Kind; got != kind {
			t.Errorf("item %d: kind %s, want %s", i, got, kind)
		}
	}

	st, ok := p.builder.Items.Struct(p.items()[0])
	if !ok || len(st.Generics) != 1 || st.Generics[0].Name != "Element" || len(st.Members) != 2 {
		t.Fatalf("unexpected struct payload: %+v", st)
	}
	if got := p.builder.Items.FullName(st.Members[1]); got != "foo(x:)" {
		t.Errorf("member full name = %q", got)
	}

	opID := p.items()[5]
	fn, _ := p.builder.Items.Fn(opID)
	if !fn.IsOperator || len(fn.Params) != 2 {
		t.Fatalf("expected binary operator func, got %+v", fn)
	}
	if got := p.builder.Items.FullName(opID); got != "+(_:_:)" {
		t.Errorf("operator full name = %q", got)
	}

	if got := p.item(t, 3).Name; got != "" {
		t.Errorf("`let _` should have empty name, got %q", got)
	}
}

func TestParseParams(t *testing.T) {
	p := parseSource(t, "func f(a: Int, _ b: Int, to c: inout OutputStream) {}\n")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	id := p.items()[0]
	if got := p.builder.Items.FullName(id); got != "f(a:_:to:)" {
		t.Fatalf("full name = %q", got)
	}
	fn, _ := p.builder.Items.Fn(id)
	last := p.builder.Items.Param(fn.Params[2])
	if !last.Inout || last.Name != "c" || last.Label != "to" {
		t.Fatalf("unexpected inout param %+v", last)
	}
}

func TestParseOptionalAndGenericTypes(t *testing.T) {
	p := parseSource(t, "func f() {\n  let x: UnavailableType? = nil\n  let y: Array<Int>?= nil\n  _ = x\n}\n")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	fn, _ := p.builder.Items.Fn(p.items()[0])
	if len(fn.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(fn.Body))
	}
	want := []string{"UnavailableType?", "Array<Int>?"}
	for i, w := range want {
		st := p.builder.Stmts.Get(fn.Body[i])
		let, ok := p.builder.Items.Let(st.Item)
		if !ok {
			t.Fatalf("statement %d is not a let", i)
		}
		if got := p.builder.Types.String(let.Type); got != w {
			t.Errorf("type %d = %q, want %q", i, got, w)
		}
		if !let.Value.IsValid() {
			t.Errorf("statement %d lost its initializer", i)
		}
	}
	if st := p.builder.Stmts.Get(fn.Body[2]); st.Kind != ast.StmtAssign || st.Target.IsValid() {
		t.Errorf("expected `_ = x` discard assignment, got %+v", st)
	}
}

func TestParseCallArguments(t *testing.T) {
	p := parseSource(t, "func g() {\n  f(a: 0 + 0, b: &x, 1)\n  x + y\n}\n")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	fn, _ := p.builder.Items.Fn(p.items()[0])
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body))
	}
	call, ok := p.builder.Exprs.Call(p.builder.Stmts.Get(fn.Body[0]).Value)
	if !ok {
		t.Fatalf("first statement is not a call")
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(call.Args))
	}
	if call.Args[0].Label != "a" || !p.builder.Exprs.IsCompound(call.Args[0].Value) {
		t.Errorf("arg 0: %+v", call.Args[0])
	}
	if un, ok := p.builder.Exprs.Unary(call.Args[1].Value); !ok || un.Op != "&" {
		t.Errorf("arg 1 should be &x")
	}
	if call.Args[2].Label != "" {
		t.Errorf("arg 2 must be unlabeled")
	}
	// "  f(" - '(' в колонке 4
	if start, _ := p.fs.Resolve(call.LParen); start.Line != 2 || start.Col != 4 {
		t.Errorf("lparen at %d:%d", start.Line, start.Col)
	}
	bin, ok := p.builder.Exprs.Binary(p.builder.Stmts.Get(fn.Body[1]).Value)
	if !ok || bin.Op != "+" {
		t.Fatalf("second statement should be a binary '+'")
	}
}

func TestParsePrecedence(t *testing.T) {
	p := parseSource(t, "let v = 1 + 2 * 3 - 4\n")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	let, _ := p.builder.Items.Let(p.items()[0])
	root, ok := p.builder.Exprs.Binary(let.Value)
	if !ok || root.Op != "-" {
		t.Fatalf("root should be '-', got %+v", root)
	}
	left, ok := p.builder.Exprs.Binary(root.Left)
	if !ok || left.Op != "+" {
		t.Fatalf("left should be '+'")
	}
	if mul, ok := p.builder.Exprs.Binary(left.Right); !ok || mul.Op != "*" {
		t.Fatalf("'*' should bind tighter than '+'")
	}
}

func TestParseRecovery(t *testing.T) {
	p := parseSource(t, "} let a = 1\nfunc f() {\n  )\n  let b = 2\n}\n")
	want := []string{
		"error 1:1 expected declaration",
		"error 3:3 expected expression, got ')'",
	}
	got := p.diagLines()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("diagnostics:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if len(p.items()) != 2 {
		t.Fatalf("expected parser to recover both declarations, got %d", len(p.items()))
	}
	fn, _ := p.builder.Items.Fn(p.items()[1])
	if len(fn.Body) != 1 {
		t.Fatalf("expected `let b` to survive recovery, got %d statements", len(fn.Body))
	}
}

func TestMaxErrors(t *testing.T) {
	// три независимые ошибки: каждый голый @available восстанавливается на func
	const src = "@available\nfunc a() {}\n@available\nfunc b() {}\n@available\nfunc c() {}"
	if full := parseSource(t, src); full.bag.Len() < 3 {
		t.Fatalf("expected at least 3 diagnostics without a cap, got %d", full.bag.Len())
	}

	fs := source.NewFileSet()
	id := fs.AddVirtual("test.avl", []byte(src))
	bag := diag.NewBag(100)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	ParseFile(fs, lx, ast.NewBuilder(ast.Hints{}), Options{MaxErrors: 2, Reporter: rep})
	if bag.Len() != 2 {
		t.Fatalf("expected diagnostics capped at 2, got %d", bag.Len())
	}
}

func TestSpanInvariants(t *testing.T) {
	src := `@available(iOS, introduced: 8.0)
@available(*, deprecated, renamed: "g(x:)")
func f(x: Int) {}

struct MyCollection<Element> {
  @available(*, unavailable, renamed: "Element")
  typealias T = Element
  func first() {}
}

extension MyCollection {
  @available(macOS, obsoleted: 10.12)
  func last() {}
}
`
	p := parseSource(t, src)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.diagLines())
	}
	if err := testkit.CheckSpanInvariants(p.builder, p.file, p.fs.Get(p.builder.Files.Get(p.file).Span.File)); err != nil {
		t.Fatal(err)
	}
}
