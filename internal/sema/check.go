package sema

import (
	"fmt"

	"availc/internal/ast"
	"availc/internal/avail"
	"availc/internal/diag"
	"availc/internal/source"
	"availc/internal/symbols"
)

// Options configure the availability pass over a file.
type Options struct {
	Reporter diag.Reporter
	Target   avail.Target
	// Imports are availability snapshots of other files, looked up by name.
	Imports []Import
	// Validate re-checks the symbol table after declarations are linked.
	Validate bool
}

// Ref is one resolved reference.
type Ref struct {
	Span   source.Span
	Symbol symbols.SymbolID
}

// Result stores the artefacts of the check.
type Result struct {
	Table *symbols.Table
	Store *avail.Store
	// Decls maps declarations to their symbols.
	Decls map[ast.ItemID]symbols.SymbolID
	// Refs lists resolved references in source order.
	Refs []Ref
	// Diagnosed counts references that produced a diagnostic.
	Diagnosed int
}

// Check runs the declaration pass, freezes the record store and then walks
// every reference. The file is processed by a single goroutine; the frozen
// store is read-only afterwards.
func Check(fs *source.FileSet, builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		Table: symbols.NewTable(symbols.Hints{}),
		Decls: make(map[ast.ItemID]symbols.SymbolID),
	}
	if builder == nil || !fileID.IsValid() {
		res.Store = avail.NewStoreBuilder().Freeze()
		return res
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		res.Store = avail.NewStoreBuilder().Freeze()
		return res
	}

	c := &checker{
		fs:        fs,
		builder:   builder,
		reporter:  opts.Reporter,
		target:    opts.Target,
		result:    &res,
		records:   avail.NewStoreBuilder(),
		itemScope: make(map[ast.ItemID]symbols.ScopeID),
		typeScope: make(map[symbols.SymbolID]symbols.ScopeID),
	}
	c.declareImports(opts.Imports)

	root := res.Table.FileRoot(file.Span.File, file.Span)
	c.resolver = symbols.NewResolver(res.Table, root, symbols.ResolverOptions{Reporter: opts.Reporter})
	for _, id := range file.Items {
		c.declareItem(id, false)
	}
	c.linkExtensions()

	if opts.Validate {
		if err := res.Table.Validate(); err != nil {
			if opts.Reporter == nil {
				panic(err)
			}
			diag.ReportError(opts.Reporter, diag.SemaTableInvariant, file.Span,
				fmt.Sprintf("symbol table invariant violation: %v", err)).Emit()
		}
	}

	// две фазы: после Freeze записи только читаются
	res.Store = c.records.Freeze()
	c.store = res.Store

	for _, id := range file.Items {
		c.walkItem(id)
	}
	return res
}

type checker struct {
	fs       *source.FileSet
	builder  *ast.Builder
	reporter diag.Reporter
	target   avail.Target
	result   *Result

	resolver *symbols.Resolver
	records  *avail.StoreBuilder
	store    *avail.Store

	itemScope  map[ast.ItemID]symbols.ScopeID
	typeScope  map[symbols.SymbolID]symbols.ScopeID
	extensions []ast.ItemID

	ctx []availContext
}

// attrRecords collects the records of every @available on the item.
func (c *checker) attrRecords(attrs []ast.AttrID) []avail.Record {
	var out []avail.Record
	for _, aid := range attrs {
		attr := c.builder.Items.Attr(aid)
		if attr == nil || !attr.IsAvailability() {
			continue
		}
		out = append(out, attr.Records...)
	}
	return out
}
