package lexer

import (
	"availc/internal/diag"
	"availc/internal/token"
)

// scanNumber сканирует числовые литералы:
//   - 0x/0o/0b префиксы → IntLit
//   - десятичные с '_' разделителями → IntLit
//   - дробная часть только если после '.' идёт цифра ("1.x" → IntLit, Dot, Ident)
//   - экспонента e/E[+-]digits → FloatLit
//
// Хвост из букв сразу после числа ("12abc") делает токен Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		var pred func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			pred = isHex
		case 'o', 'O':
			pred = isOct
		case 'b', 'B':
			pred = isBin
		}
		if pred != nil {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.eatDigits(pred) {
				return lx.badNumber(start, "expected digits after base prefix")
			}
			return lx.finishNumber(start, kind)
		}
	}

	lx.eatDigits(isDec)

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
		kind = token.FloatLit
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		n := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDec(lx.cursor.PeekAt(n)) {
			for range n {
				lx.cursor.Bump()
			}
			lx.eatDigits(isDec)
			kind = token.FloatLit
		}
	}

	return lx.finishNumber(start, kind)
}

// eatDigits съедает цифры (и '_' между ними), возвращает true если была хоть одна цифра.
func (lx *Lexer) eatDigits(pred func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		switch {
		case pred(b):
			seen = true
		case b == '_' && seen:
		default:
			return seen
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.badNumber(start, "invalid suffix on numeric literal")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
