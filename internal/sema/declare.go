package sema

import (
	"availc/internal/ast"
	"availc/internal/source"
	"availc/internal/symbols"
)

// declareItem creates the symbol of a declaration, files its records and
// opens the scopes the reference pass will re-enter. local marks
// declarations inside function bodies.
func (c *checker) declareItem(id ast.ItemID, local bool) {
	item := c.builder.Items.Get(id)
	if item == nil {
		return
	}
	flags := symbols.SymbolFlags(0)
	if local {
		flags |= symbols.SymbolFlagLocal
	}
	if owner := c.table().Scopes.Get(c.resolver.CurrentScope()); owner != nil && owner.Kind == symbols.ScopeType {
		flags |= symbols.SymbolFlagMember
	}
	owner := symbols.ScopeOwner{SourceFile: item.Span.File, Item: id}

	switch item.Kind {
	case ast.ItemFn:
		fn, _ := c.builder.Items.Fn(id)
		kind := symbols.SymbolFunction
		if fn.IsOperator {
			kind = symbols.SymbolOperator
		}
		c.declareSymbol(id, kind, flags)

		scope := c.resolver.Enter(symbols.ScopeFunction, owner, item.Span)
		c.itemScope[id] = scope
		for _, pid := range fn.Params {
			param := c.builder.Items.Param(pid)
			if param == nil || param.Name == "" || param.Name == "_" {
				continue
			}
			c.resolver.Declare(symbols.Symbol{
				Name: param.Name,
				Kind: symbols.SymbolParam,
				Span: param.NameSpan,
				Decl: symbols.SymbolDecl{SourceFile: param.Span.File, Item: id, Param: pid},
			})
		}
		c.declareBody(fn.Body)
		c.resolver.Leave(scope)

	case ast.ItemStruct:
		st, _ := c.builder.Items.Struct(id)
		sym := c.declareSymbol(id, symbols.SymbolType, flags)
		scope := c.resolver.Enter(symbols.ScopeType, owner, item.Span)
		c.itemScope[id] = scope
		if sym.IsValid() {
			c.typeScope[sym] = scope
		}
		c.declareGenerics(id, st.Generics)
		for _, member := range st.Members {
			c.declareItem(member, false)
		}
		c.resolver.Leave(scope)

	case ast.ItemTypeAlias:
		ta, _ := c.builder.Items.TypeAlias(id)
		c.declareSymbol(id, symbols.SymbolType, flags)
		if len(ta.Generics) > 0 {
			scope := c.resolver.Enter(symbols.ScopeAlias, owner, item.Span)
			c.itemScope[id] = scope
			c.declareGenerics(id, ta.Generics)
			c.resolver.Leave(scope)
		}

	case ast.ItemLet:
		let, _ := c.builder.Items.Let(id)
		if let.Mutable {
			flags |= symbols.SymbolFlagMutable
		}
		if item.Name == "" || item.Name == "_" {
			return
		}
		c.declareSymbol(id, symbols.SymbolLet, flags)

	case ast.ItemExtension:
		ext, _ := c.builder.Items.Extension(id)
		scope := c.resolver.Enter(symbols.ScopeType, owner, item.Span)
		c.itemScope[id] = scope
		c.extensions = append(c.extensions, id)
		for _, member := range ext.Members {
			c.declareItem(member, false)
		}
		c.resolver.Leave(scope)
	}
}

// declareSymbol declares the item under its own name and files its records
// under the new symbol's key.
func (c *checker) declareSymbol(id ast.ItemID, kind symbols.SymbolKind, flags symbols.SymbolFlags) symbols.SymbolID {
	item := c.builder.Items.Get(id)
	if item.Name == "" {
		// имя потеряно при восстановлении после ошибки разбора
		return symbols.NoSymbolID
	}
	sym, ok := c.resolver.Declare(symbols.Symbol{
		Name:     item.Name,
		Kind:     kind,
		Span:     item.NameSpan,
		Flags:    flags,
		Decl:     symbols.SymbolDecl{SourceFile: item.Span.File, Item: id},
		FullName: c.builder.Items.FullName(id),
		Labels:   c.builder.Items.ArgLabels(id),
	})
	if !ok {
		return symbols.NoSymbolID
	}
	c.result.Decls[id] = sym
	c.records.Add(sym.Key(), c.attrRecords(item.Attrs)...)
	return sym
}

// declareGenerics declares generic parameters; their attributes carry records too.
func (c *checker) declareGenerics(owner ast.ItemID, generics []ast.GenericParam) {
	for _, g := range generics {
		if g.Name == "" {
			continue
		}
		sym, ok := c.resolver.Declare(symbols.Symbol{
			Name:     g.Name,
			Kind:     symbols.SymbolGeneric,
			Span:     g.NameSpan,
			Decl:     symbols.SymbolDecl{SourceFile: g.NameSpan.File, Item: owner},
			FullName: g.Name,
		})
		if ok {
			c.records.Add(sym.Key(), c.attrRecords(g.Attrs)...)
		}
	}
}

// declareBody declares local declarations, including the ones nested in
// local functions. Locals become visible after their own declaration.
func (c *checker) declareBody(body []ast.StmtID) {
	for _, sid := range body {
		st := c.builder.Stmts.Get(sid)
		if st == nil || st.Kind != ast.StmtDecl || !st.Item.IsValid() {
			continue
		}
		c.declareItem(st.Item, true)
	}
}

// linkExtensions points every extension scope at the scope of the struct it
// extends. Runs after all top-level declarations are known.
func (c *checker) linkExtensions() {
	for _, id := range c.extensions {
		ext, _ := c.builder.Items.Extension(id)
		te := c.builder.Types.Get(ext.Target)
		if te == nil || te.Kind != ast.TypePath || len(te.Segments) == 0 {
			continue
		}
		scope := c.itemScope[id]
		parent := c.table().Scopes.Get(scope).Parent
		sym := c.lookupTypePath(parent, te.Segments)
		if target, ok := c.typeScope[sym]; ok {
			c.table().Scopes.Get(scope).Extends = target
		}
	}
}

// lookupTypePath resolves A.B.C starting from scope; NoSymbolID when any
// segment is unknown.
func (c *checker) lookupTypePath(scope symbols.ScopeID, segs []ast.TypeSegment) symbols.SymbolID {
	r := symbols.NewResolver(c.table(), scope, symbols.ResolverOptions{})
	id, ok := r.Lookup(segs[0].Name, symbols.KindMaskTypes, segs[0].Span.Start)
	if !ok {
		return symbols.NoSymbolID
	}
	for _, seg := range segs[1:] {
		inner, ok := c.typeScope[id]
		if !ok {
			return symbols.NoSymbolID
		}
		found := r.LookupMember(inner, seg.Name, symbols.KindMaskTypes)
		if len(found) == 0 {
			return symbols.NoSymbolID
		}
		id = found[0]
	}
	return id
}

func (c *checker) table() *symbols.Table { return c.result.Table }

// declSpan is where notes about a declaration point; imported symbols have none.
func (c *checker) declSpan(sym *symbols.Symbol) (source.Span, bool) {
	if sym.IsImported() || sym.Span == (source.Span{}) {
		return source.Span{}, false
	}
	return sym.Span, true
}
