package parser

import (
	"availc/internal/ast"
	"availc/internal/diag"
	"availc/internal/token"
)

// parseType: `A.B<C, D>` с произвольным числом суффиксов `?`.
func (p *Parser) parseType() (ast.TypeID, bool) {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectType, "expected type, got "+describeToken(p.peek()))
		return ast.NoTypeID, false
	}

	var segs []ast.TypeSegment
	start := p.peek().Span
	for {
		nameTok, ok := p.parseIdent("type name")
		if !ok {
			return ast.NoTypeID, false
		}
		seg := ast.TypeSegment{Name: nameTok.Text, Span: nameTok.Span}
		if _, ok := p.ts.splitPrefix("<"); ok {
			if seg.Args, ok = p.parseTypeArgs(); !ok {
				return ast.NoTypeID, false
			}
		}
		segs = append(segs, seg)
		if !p.at(token.Dot) {
			break
		}
		p.advance()
	}
	id := p.arenas.Types.NewPath(start.Cover(p.lastSpan), segs)

	for {
		q, ok := p.ts.splitPrefix("?")
		if !ok {
			break
		}
		p.lastSpan = q.Span
		id = p.arenas.Types.NewOptional(start.Cover(q.Span), id)
	}
	return id, true
}

// parseTypeArgs - после съеденного '<': `T, U>`.
func (p *Parser) parseTypeArgs() ([]ast.TypeID, bool) {
	var args []ast.TypeID
	for {
		arg, ok := p.parseType()
		if !ok {
			return args, false
		}
		args = append(args, arg)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if tok, ok := p.ts.splitPrefix(">"); ok {
			p.lastSpan = tok.Span
			return args, true
		}
		p.err(diag.SynUnexpectedToken, "expected '>' to close type argument list")
		return args, false
	}
}
