package sema

import (
	"availc/internal/ast"
	"availc/internal/rename"
	"availc/internal/source"
)

// callShape describes the text of a call for the rename rewriter.
func (c *checker) callShape(callee source.Span, call *ast.ExprCallData) rename.CallSiteShape {
	shape := rename.CallSiteShape{
		Ref:    callee,
		IsCall: true,
		LParen: call.LParen,
		RParen: call.RParen,
		Args:   make([]rename.Arg, 0, len(call.Args)),
	}
	exprs := c.builder.Exprs
	for _, a := range call.Args {
		value := exprs.Get(a.Value)
		if value == nil {
			continue
		}
		arg := rename.Arg{
			Label:     a.Label,
			LabelSpan: a.LabelSpan,
			ValueSpan: value.Span,
			ValueText: c.fs.Text(value.Span),
			Compound:  exprs.IsCompound(a.Value),
		}
		if un, ok := exprs.Unary(a.Value); ok && un.Op == "&" {
			arg.Inout = true
		}
		shape.Args = append(shape.Args, arg)
	}
	return shape
}
