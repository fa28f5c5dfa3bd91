package parser

import (
	"availc/internal/ast"
	"availc/internal/diag"
	"availc/internal/token"
)

// Таблица приоритетов для бинарных операторов; чем больше число, тем выше приоритет.
// Все операторы левоассоциативны, '=' - отдельный токен и разбирается на уровне операторов.
const (
	precLogicalOr      = 2  // ||
	precLogicalAnd     = 3  // &&
	precComparison     = 4  // == != < <= > >=
	precNilCoalescing  = 5  // ??
	precCustom         = 6  // прочие пользовательские операторы
	precAdditive       = 7  // + - &+ &- | ^
	precShift          = 8  // << >>
	precMultiplicative = 9  // * / % &* &
)

func binaryPrec(op string) int {
	switch op {
	case "||":
		return precLogicalOr
	case "&&":
		return precLogicalAnd
	case "==", "!=", "<", "<=", ">", ">=", "===", "!==":
		return precComparison
	case "??":
		return precNilCoalescing
	case "+", "-", "&+", "&-", "|", "^":
		return precAdditive
	case "<<", ">>":
		return precShift
	case "*", "/", "%", "&*", "&":
		return precMultiplicative
	default:
		return precCustom
	}
}

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseBinaryRest(left, 0)
}

// parseBinaryRest - Pratt-цикл по бинарным операторам с уже разобранной левой частью.
func (p *Parser) parseBinaryRest(left ast.ExprID, minPrec int) (ast.ExprID, bool) {
	for {
		tok := p.peek()
		if tok.Kind != token.Operator {
			return left, true
		}
		prec := binaryPrec(tok.Text)
		if prec < minPrec {
			return left, true
		}
		opTok := p.advance()

		right, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		// правая часть забирает операторы с более высоким приоритетом
		for {
			next := p.peek()
			if next.Kind != token.Operator || binaryPrec(next.Text) <= prec {
				break
			}
			if right, ok = p.parseBinaryRest(right, prec+1); !ok {
				return ast.NoExprID, false
			}
		}

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, opTok.Text, opTok.Span, left, right)
	}
}

// parseUnaryExpr обрабатывает префиксные операторы (`&x`, `-1`, `!flag`).
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	if p.at(token.Operator) {
		opTok := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUnary(span, opTok.Text, opTok.Span, operand), true
	}
	primary, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parsePostfixExpr(primary)
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, tok.Text), true
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitInt, tok.Text), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitFloat, tok.Text), true
	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, tok.Text), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitBool, tok.Text), true
	case token.KwNil:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitNil, tok.Text), true
	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parenthesized expression")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(open.Span.Cover(closeTok.Span), inner), true
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describeToken(tok))
		return ast.NoExprID, false
	}
}

// parsePostfixExpr: вызовы `f(a: 1)` и обращения к членам `x.y`.
// '(' на новой строке вызовом не считается.
func (p *Parser) parsePostfixExpr(expr ast.ExprID) (ast.ExprID, bool) {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.LParen && !tok.HasNewlineBefore():
			call, ok := p.parseCall(expr)
			if !ok {
				return ast.NoExprID, false
			}
			expr = call
		case tok.Kind == token.Dot:
			p.advance()
			nameTok, ok := p.parseIdent("member name")
			if !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(expr).Span.Cover(nameTok.Span)
			expr = p.arenas.Exprs.NewMember(span, expr, nameTok.Text, nameTok.Span)
		default:
			return expr, true
		}
	}
}

// parseCall: `(label: value, value)`; метка - идентификатор, за которым сразу ':'.
func (p *Parser) parseCall(target ast.ExprID) (ast.ExprID, bool) {
	open := p.advance()
	var args []ast.CallArg
	for !p.at(token.RParen) {
		arg, ok := p.parseCallArg()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(target).Span.Cover(closeTok.Span)
	return p.arenas.Exprs.NewCall(span, target, args, open.Span, closeTok.Span), true
}

func (p *Parser) parseCallArg() (ast.CallArg, bool) {
	if !p.at(token.Ident) {
		value, ok := p.parseExpr()
		return ast.CallArg{Value: value}, ok
	}
	identTok := p.advance()
	if p.at(token.Colon) {
		p.advance()
		value, ok := p.parseExpr()
		return ast.CallArg{Label: identTok.Text, LabelSpan: identTok.Span, Value: value}, ok
	}
	// не метка - продолжаем выражение с уже съеденного идентификатора
	expr, ok := p.parsePostfixExpr(p.arenas.Exprs.NewIdent(identTok.Span, identTok.Text))
	if !ok {
		return ast.CallArg{}, false
	}
	value, ok := p.parseBinaryRest(expr, 0)
	return ast.CallArg{Value: value}, ok
}
