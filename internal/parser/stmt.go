package parser

import (
	"availc/internal/ast"
	"availc/internal/diag"
	"availc/internal/token"
)

// parseBlock: `{ stmt* }`. Операторы разделяются переводом строки или ';'.
func (p *Parser) parseBlock() ([]ast.StmtID, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); !ok {
		return nil, false
	}
	var stmts []ast.StmtID
	for !p.at_or(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		id, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		stmts = append(stmts, id)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		return stmts, false
	}
	return stmts, true
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	start := p.peek()
	switch start.Kind {
	case token.At, token.KwLet, token.KwVar, token.KwFunc, token.KwStruct, token.KwTypealias:
		item, ok := p.parseDecl(declLocal)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.New(ast.Stmt{
			Kind: ast.StmtDecl,
			Span: p.arenas.Items.Get(item).Span,
			Item: item,
		}), true

	case token.KwReturn:
		p.advance()
		st := ast.Stmt{Kind: ast.StmtReturn, Span: start.Span}
		next := p.peek()
		if next.Kind != token.RBrace && next.Kind != token.Semicolon && next.Kind != token.EOF && !next.HasNewlineBefore() {
			value, ok := p.parseExpr()
			if !ok {
				return ast.NoStmtID, false
			}
			st.Value = value
			st.Span = start.Span.Cover(p.lastSpan)
		}
		return p.arenas.Stmts.New(st), true

	case token.Underscore:
		// `_ = value`
		p.advance()
		if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after '_'"); !ok {
			return ast.NoStmtID, false
		}
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.New(ast.Stmt{
			Kind:  ast.StmtAssign,
			Span:  start.Span.Cover(p.lastSpan),
			Value: value,
		}), true
	}

	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.Assign) {
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.New(ast.Stmt{
			Kind:   ast.StmtAssign,
			Span:   start.Span.Cover(p.lastSpan),
			Target: expr,
			Value:  value,
		}), true
	}
	return p.arenas.Stmts.New(ast.Stmt{
		Kind:  ast.StmtExpr,
		Span:  p.arenas.Exprs.Get(expr).Span,
		Value: expr,
	}), true
}

// resyncStmt - пропускаем до начала следующей строки, ';' или '}'.
// Хотя бы один токен съедаем всегда, чтобы не зациклиться.
func (p *Parser) resyncStmt() {
	if p.at_or(token.RBrace, token.EOF) {
		return
	}
	p.advance()
	for !p.at_or(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if p.peek().HasNewlineBefore() {
			return
		}
		p.advance()
	}
}
