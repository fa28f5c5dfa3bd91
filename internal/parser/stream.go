package parser

import (
	"strings"

	"fortio.org/safecast"

	"availc/internal/lexer"
	"availc/internal/source"
	"availc/internal/token"
)

// TokenStream - минимальный поток токенов, который нужен парсеру атрибутов.
type TokenStream interface {
	Peek() token.Token
	Next() token.Token
}

// tokens оборачивает лексер и умеет «откусывать» префикс оператора:
// `Array<Int>?` лексится как `>?`, а тип хочет увидеть `>` и `?` отдельно.
type tokens struct {
	lx      *lexer.Lexer
	pending []token.Token // стек, последний элемент - следующий токен
}

func newTokens(lx *lexer.Lexer) *tokens {
	return &tokens{lx: lx}
}

func (ts *tokens) Peek() token.Token {
	if n := len(ts.pending); n > 0 {
		return ts.pending[n-1]
	}
	return ts.lx.Peek()
}

func (ts *tokens) Next() token.Token {
	if n := len(ts.pending); n > 0 {
		tok := ts.pending[n-1]
		ts.pending = ts.pending[:n-1]
		return tok
	}
	return ts.lx.Next()
}

// splitPrefix consumes the next token when it is an operator starting with
// prefix. A longer operator is split and its remainder stays in the stream.
func (ts *tokens) splitPrefix(prefix string) (token.Token, bool) {
	tok := ts.Peek()
	if tok.Kind != token.Operator || !strings.HasPrefix(tok.Text, prefix) {
		return tok, false
	}
	ts.Next()
	if len(tok.Text) == len(prefix) {
		return tok, true
	}
	n := safecast.MustConv[uint32](len(prefix))
	head := token.Token{
		Kind:    token.Operator,
		Span:    source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + n},
		Text:    prefix,
		Leading: tok.Leading,
	}
	rest := tok.Text[len(prefix):]
	tail := token.Token{
		Kind: classifyOperator(rest),
		Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + n, End: tok.Span.End},
		Text: rest,
	}
	ts.pending = append(ts.pending, tail)
	return head, true
}

func classifyOperator(text string) token.Kind {
	switch text {
	case "=":
		return token.Assign
	case "->":
		return token.Arrow
	default:
		return token.Operator
	}
}
