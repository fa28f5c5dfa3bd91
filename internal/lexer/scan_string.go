package lexer

import (
	"availc/internal/diag"
	"availc/internal/token"
)

// scanString: "..." с escape \" \\ \' \n \t \r \0 \u{...}.
// Неизвестные escape репортятся, но литерал остаётся StringLit.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			return lx.tokenFrom(start, token.StringLit)
		case '\\':
			lx.scanEscape()
			continue
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) scanEscape() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	switch lx.cursor.Peek() {
	case '"', '\\', '\'', 'n', 't', 'r', '0':
		lx.cursor.Bump()
		return
	case 'u':
		lx.cursor.Bump()
		if !lx.cursor.Eat('{') {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "expected '{' in \\u escape")
			return
		}
		n := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if !lx.cursor.Eat('}') || n == 0 || n > 8 {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid \\u{...} escape")
		}
		return
	case 0, '\n':
		// незакрытая строка, сообщит scanString
		return
	}
	lx.cursor.Bump()
	lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid escape sequence in literal")
}
