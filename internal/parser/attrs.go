package parser

import (
	"availc/internal/ast"
	"availc/internal/diag"
	"availc/internal/fix"
	"availc/internal/source"
	"availc/internal/token"
)

// parseAttributes собирает все `@attr` перед объявлением или generic-параметром.
// Отброшенные (ошибочные) @available в список не попадают.
func (p *Parser) parseAttributes() []ast.AttrID {
	var attrs []ast.AttrID
	for p.at(token.At) {
		if id, ok := p.parseAttribute(); ok {
			attrs = append(attrs, id)
		}
	}
	return attrs
}

func (p *Parser) parseAttribute() (ast.AttrID, bool) {
	atTok := p.advance()
	nameTok, ok := p.parseIdent("attribute name")
	if !ok {
		return ast.NoAttrID, false
	}

	switch nameTok.Text {
	case "availability":
		p.emit(diag.ReportError(p.reporter(), diag.SynAttributeRenamed, nameTok.Span,
			"@availability has been renamed to @available").
			WithFixSuggestion(fix.ReplaceSpan("rename to '@available'", nameTok.Span, "available", "availability", fix.Preferred())))
		fallthrough
	case "available":
		res := ParseAvailable(p.ts, p.reporter(), atTok, nameTok)
		p.lastSpan = res.Span.EndPoint()
		if !res.OK {
			return ast.NoAttrID, false
		}
		return p.arenas.Items.NewAttr(ast.Attr{
			Name:     nameTok.Text,
			NameSpan: nameTok.Span,
			Span:     res.Span,
			Records:  res.Records,
		}), true
	}

	span := atTok.Span.Cover(nameTok.Span)
	p.report(diag.SynUnknownAttribute, diag.SevWarning, nameTok.Span, "unknown attribute '@"+nameTok.Text+"'")
	if p.at(token.LParen) && !p.peek().HasNewlineBefore() {
		span = span.Cover(p.skipBalanced())
	}
	return p.arenas.Items.NewAttr(ast.Attr{Name: nameTok.Text, NameSpan: nameTok.Span, Span: span}), true
}

// skipBalanced съедает `( ... )` с учётом вложенности и возвращает span.
func (p *Parser) skipBalanced() source.Span {
	open := p.advance()
	span := open.Span
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		tok := p.advance()
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		span = span.Cover(tok.Span)
	}
	if depth > 0 {
		p.report(diag.SynUnclosedParen, diag.SevError, open.Span, "unclosed '(' in attribute arguments")
	}
	return span
}
