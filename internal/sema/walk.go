package sema

import (
	"slices"

	"availc/internal/ast"
	"availc/internal/rename"
	"availc/internal/source"
	"availc/internal/symbols"
)

// walkItem checks every reference inside a declaration. The declaration's
// own attributes form the context of its signature and body.
func (c *checker) walkItem(id ast.ItemID) {
	item := c.builder.Items.Get(id)
	if item == nil {
		return
	}
	c.pushContext(c.attrRecords(item.Attrs))
	defer c.popContext()

	scope, hasScope := c.itemScope[id]
	if hasScope {
		c.resolver.Reenter(scope)
		defer c.resolver.Leave(scope)
	}

	switch item.Kind {
	case ast.ItemFn:
		fn, _ := c.builder.Items.Fn(id)
		for _, pid := range fn.Params {
			if p := c.builder.Items.Param(pid); p != nil {
				c.walkType(p.Type)
			}
		}
		c.walkType(fn.Result)
		for _, sid := range fn.Body {
			c.walkStmt(sid)
		}
	case ast.ItemStruct:
		st, _ := c.builder.Items.Struct(id)
		for _, member := range st.Members {
			c.walkItem(member)
		}
	case ast.ItemTypeAlias:
		ta, _ := c.builder.Items.TypeAlias(id)
		c.walkType(ta.Target)
	case ast.ItemLet:
		let, _ := c.builder.Items.Let(id)
		c.walkType(let.Type)
		c.walkExpr(let.Value)
	case ast.ItemExtension:
		ext, _ := c.builder.Items.Extension(id)
		// цель расширения разрешается снаружи его собственного скоупа
		if hasScope {
			c.resolver.Leave(scope)
			c.walkType(ext.Target)
			c.resolver.Reenter(scope)
		}
		for _, member := range ext.Members {
			c.walkItem(member)
		}
	}
}

func (c *checker) walkStmt(id ast.StmtID) {
	st := c.builder.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtDecl:
		c.walkItem(st.Item)
	case ast.StmtExpr, ast.StmtReturn:
		c.walkExpr(st.Value)
	case ast.StmtAssign:
		c.walkExpr(st.Target)
		c.walkExpr(st.Value)
	}
}

func (c *checker) walkType(id ast.TypeID) {
	te := c.builder.Types.Get(id)
	if te == nil {
		return
	}
	if te.Kind == ast.TypeOptional {
		c.walkType(te.Elem)
		return
	}
	var owner symbols.SymbolID
	for i, seg := range te.Segments {
		var sym symbols.SymbolID
		if i == 0 {
			sym, _ = c.resolver.Lookup(seg.Name, symbols.KindMaskTypes, seg.Span.Start)
		} else if inner, ok := c.typeScope[owner]; ok {
			if found := c.resolver.LookupMember(inner, seg.Name, symbols.KindMaskTypes); len(found) > 0 {
				sym = found[0]
			}
		}
		if sym.IsValid() {
			c.checkUse(sym, rename.CallSiteShape{Ref: seg.Span})
		}
		for _, arg := range seg.Args {
			c.walkType(arg)
		}
		// Int, String и прочие встроенные имена не объявлены - молчим
		owner = sym
	}
}

func (c *checker) walkExpr(id ast.ExprID) {
	expr := c.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	exprs := c.builder.Exprs
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := exprs.Ident(id)
		if sym, ok := c.resolver.Lookup(ident.Name, symbols.KindMaskValues, expr.Span.Start); ok {
			c.checkUse(sym, rename.CallSiteShape{Ref: expr.Span})
		}
	case ast.ExprCall:
		call, _ := exprs.Call(id)
		if ident, ok := exprs.Ident(call.Target); ok {
			callee := exprs.Get(call.Target)
			if sym := c.resolveCallee(ident.Name, call, callee.Span.Start); sym.IsValid() {
				c.checkUse(sym, c.callShape(callee.Span, call))
			}
		} else {
			c.walkExpr(call.Target)
		}
		for _, arg := range call.Args {
			c.walkExpr(arg.Value)
		}
	case ast.ExprMember:
		// без вывода типов члены не разрешаются
		member, _ := exprs.Member(id)
		c.walkExpr(member.Target)
	case ast.ExprUnary:
		un, _ := exprs.Unary(id)
		if un.Op != "&" {
			c.checkOperator(un.Op, un.OpSpan, 1)
		}
		c.walkExpr(un.Operand)
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		c.walkExpr(bin.Left)
		c.checkOperator(bin.Op, bin.OpSpan, 2)
		c.walkExpr(bin.Right)
	case ast.ExprGroup:
		g, _ := exprs.Group(id)
		c.walkExpr(g.Inner)
	}
}

// checkOperator resolves an operator use by name and arity.
func (c *checker) checkOperator(op string, span source.Span, arity int) {
	for _, id := range c.resolver.LookupAll(op, symbols.SymbolOperator.Mask(), span.Start) {
		sym := c.table().Symbols.Get(id)
		if len(sym.Labels) == arity {
			c.checkUse(id, rename.CallSiteShape{Ref: span, IsOperatorRef: true})
			return
		}
	}
}

// resolveCallee picks the overload whose labels match the call, then one
// with the right arity, then the innermost candidate.
func (c *checker) resolveCallee(name string, call *ast.ExprCallData, at uint32) symbols.SymbolID {
	candidates := c.resolver.LookupAll(name, symbols.KindMaskValues, at)
	if len(candidates) == 0 {
		return symbols.NoSymbolID
	}
	labels := make([]string, len(call.Args))
	for i, arg := range call.Args {
		labels[i] = arg.Label
		if labels[i] == "" {
			labels[i] = "_"
		}
	}
	byArity := symbols.NoSymbolID
	for _, id := range candidates {
		sym := c.table().Symbols.Get(id)
		if !sym.IsCallable() || len(sym.Labels) != len(labels) {
			continue
		}
		if slices.Equal(sym.Labels, labels) {
			return id
		}
		if !byArity.IsValid() {
			byArity = id
		}
	}
	if byArity.IsValid() {
		return byArity
	}
	return candidates[0]
}
