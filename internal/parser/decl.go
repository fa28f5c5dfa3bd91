package parser

import (
	"availc/internal/ast"
	"availc/internal/diag"
	"availc/internal/source"
	"availc/internal/token"
)

type declContext uint8

const (
	declTop    declContext = iota // верхний уровень файла
	declMember                    // тело struct/extension
	declLocal                     // тело функции
)

// parseDecl: атрибуты, затем объявление по ключевому слову.
func (p *Parser) parseDecl(ctx declContext) (ast.ItemID, bool) {
	attrs := p.parseAttributes()

	switch p.peek().Kind {
	case token.KwFunc:
		return p.parseFunc(attrs)
	case token.KwStruct:
		return p.parseStruct(attrs)
	case token.KwTypealias:
		return p.parseTypeAlias(attrs)
	case token.KwLet, token.KwVar:
		return p.parseLet(attrs)
	case token.KwExtension:
		if ctx == declLocal {
			p.err(diag.SynExpectDecl, "extension is only allowed at file scope")
			return ast.NoItemID, false
		}
		return p.parseExtension(attrs)
	case token.RBrace:
		if ctx == declTop || len(attrs) > 0 {
			p.err(diag.SynExpectDecl, "expected declaration")
		}
		return ast.NoItemID, false
	default:
		p.err(diag.SynExpectDecl, "expected declaration")
		return ast.NoItemID, false
	}
}

// func name<T>(params) -> Result { body }
func (p *Parser) parseFunc(attrs []ast.AttrID) (ast.ItemID, bool) {
	kw := p.advance()

	var fn ast.FnItem
	nameTok := p.peek()
	switch nameTok.Kind {
	case token.Ident:
		p.advance()
	case token.Operator:
		p.advance()
		fn.IsOperator = true
	default:
		p.err(diag.SynExpectIdentifier, "expected function name, got "+describeToken(nameTok))
		return ast.NoItemID, false
	}

	if !fn.IsOperator {
		if _, ok := p.ts.splitPrefix("<"); ok {
			if _, ok := p.parseGenericParams(); !ok {
				return ast.NoItemID, false
			}
		}
	}

	params, ok := p.parseParams()
	if !ok {
		return ast.NoItemID, false
	}
	fn.Params = params

	if p.at(token.Arrow) {
		p.advance()
		if fn.Result, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}

	if p.at(token.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return ast.NoItemID, false
		}
		fn.Body = body
		fn.HasBody = true
	}

	span := kw.Span.Cover(p.lastSpan)
	return p.arenas.Items.NewFn(span, nameTok.Text, nameTok.Span, attrs, fn), true
}

// parseParams: `(label name: Type, _ name: inout Type)`.
func (p *Parser) parseParams() ([]ast.ParamID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to start parameter list"); !ok {
		return nil, false
	}
	var params []ast.ParamID
	for !p.at(token.RParen) {
		id, ok := p.parseParam()
		if !ok {
			p.resyncUntil(token.RParen, token.LBrace, token.RBrace)
			break
		}
		params = append(params, id)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		return params, false
	}
	return params, true
}

func (p *Parser) parseParam() (ast.ParamID, bool) {
	if !p.at_or(token.Ident, token.Underscore) {
		p.err(diag.SynExpectIdentifier, "expected parameter name, got "+describeToken(p.peek()))
		return ast.NoParamID, false
	}
	first := p.advance()
	param := ast.Param{Name: first.Text, NameSpan: first.Span}
	if p.at_or(token.Ident, token.Underscore) {
		second := p.advance()
		param.Label, param.LabelSpan = first.Text, first.Span
		param.Name, param.NameSpan = second.Text, second.Span
	} else if first.Kind == token.Underscore {
		// `_: Int` - безымянный без отдельного имени
		param.Label, param.LabelSpan = "_", first.Span
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
		return ast.NoParamID, false
	}
	if p.at(token.KwInout) {
		p.advance()
		param.Inout = true
	}
	typ, ok := p.parseType()
	if !ok {
		return ast.NoParamID, false
	}
	param.Type = typ
	param.Span = first.Span.Cover(p.lastSpan)
	return p.arenas.Items.NewParam(param), true
}

// parseGenericParams - после съеденного '<': `@attr T, U>`.
func (p *Parser) parseGenericParams() ([]ast.GenericParam, bool) {
	var out []ast.GenericParam
	for {
		attrs := p.parseAttributes()
		nameTok, ok := p.parseIdent("generic parameter name")
		if !ok {
			return out, false
		}
		out = append(out, ast.GenericParam{Name: nameTok.Text, NameSpan: nameTok.Span, Attrs: attrs})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if tok, ok := p.ts.splitPrefix(">"); ok {
			p.lastSpan = tok.Span
			return out, true
		}
		p.err(diag.SynUnexpectedToken, "expected '>' to close generic parameter list")
		return out, false
	}
}

// struct Name<T> { members }
func (p *Parser) parseStruct(attrs []ast.AttrID) (ast.ItemID, bool) {
	kw := p.advance()
	nameTok, ok := p.parseIdent("struct name")
	if !ok {
		return ast.NoItemID, false
	}
	var st ast.StructItem
	if _, ok := p.ts.splitPrefix("<"); ok {
		if st.Generics, ok = p.parseGenericParams(); !ok {
			return ast.NoItemID, false
		}
	}
	members, ok := p.parseMembers()
	if !ok {
		return ast.NoItemID, false
	}
	st.Members = members
	return p.arenas.Items.NewStruct(kw.Span.Cover(p.lastSpan), nameTok.Text, nameTok.Span, attrs, st), true
}

// extension Type { members }
func (p *Parser) parseExtension(attrs []ast.AttrID) (ast.ItemID, bool) {
	kw := p.advance()
	target, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	members, ok := p.parseMembers()
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewExtension(kw.Span.Cover(p.lastSpan), attrs, ast.ExtensionItem{Target: target, Members: members}), true
}

func (p *Parser) parseMembers() ([]ast.ItemID, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); !ok {
		return nil, false
	}
	var members []ast.ItemID
	for !p.at_or(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		id, ok := p.parseDecl(declMember)
		if !ok {
			p.resyncMember()
			continue
		}
		members = append(members, id)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close declaration body"); !ok {
		return members, false
	}
	return members, true
}

// typealias Name<T> = Type
func (p *Parser) parseTypeAlias(attrs []ast.AttrID) (ast.ItemID, bool) {
	kw := p.advance()
	nameTok, ok := p.parseIdent("typealias name")
	if !ok {
		return ast.NoItemID, false
	}
	var ta ast.TypeAliasItem
	if _, ok := p.ts.splitPrefix("<"); ok {
		if ta.Generics, ok = p.parseGenericParams(); !ok {
			return ast.NoItemID, false
		}
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in typealias declaration"); !ok {
		return ast.NoItemID, false
	}
	if ta.Target, ok = p.parseType(); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewTypeAlias(kw.Span.Cover(p.lastSpan), nameTok.Text, nameTok.Span, attrs, ta), true
}

// let/var name: Type = value; имя может быть '_'.
func (p *Parser) parseLet(attrs []ast.AttrID) (ast.ItemID, bool) {
	kw := p.advance()
	let := ast.LetItem{Mutable: kw.Kind == token.KwVar}

	var name string
	var nameSpan source.Span
	switch {
	case p.at(token.Underscore):
		nameSpan = p.advance().Span
	case p.at(token.Ident):
		tok := p.advance()
		name, nameSpan = tok.Text, tok.Span
	default:
		p.err(diag.SynExpectIdentifier, "expected variable name, got "+describeToken(p.peek()))
		return ast.NoItemID, false
	}

	ok := true
	if p.at(token.Colon) {
		p.advance()
		if let.Type, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if p.at(token.Assign) {
		p.advance()
		if let.Value, ok = p.parseExpr(); !ok {
			return ast.NoItemID, false
		}
	}
	if !let.Type.IsValid() && !let.Value.IsValid() {
		p.err(diag.SynExpectType, "expected type annotation or initial value")
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewLet(kw.Span.Cover(p.lastSpan), name, nameSpan, attrs, let), true
}
