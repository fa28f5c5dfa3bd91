package lexer

import (
	"availc/internal/diag"
	"availc/internal/token"
)

var punct = map[byte]token.Kind{
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'@': token.At,
}

// scanOperatorOrPunct: одиночная пунктуация или жадный run операторных символов.
// Run обрывается перед началом комментария. "=" и "->" получают свои виды.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	if k, ok := punct[b]; ok {
		lx.cursor.Bump()
		return lx.tokenFrom(start, k)
	}

	if isOperatorByte(b) {
		for isOperatorByte(lx.cursor.Peek()) {
			if lx.cursor.Off > uint32(start) && lx.cursor.Peek() == '/' {
				if nb := lx.cursor.PeekAt(1); nb == '/' || nb == '*' {
					break
				}
			}
			lx.cursor.Bump()
		}
		tok := lx.tokenFrom(start, token.Operator)
		switch tok.Text {
		case "=":
			tok.Kind = token.Assign
		case "->":
			tok.Kind = token.Arrow
		}
		return tok
	}

	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) tokenFrom(start Mark, k token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
