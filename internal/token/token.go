package token

import (
	"availc/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, nil or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsNumber reports whether the token is a numeric literal.
func (t Token) IsNumber() bool {
	return t.Kind == IntLit || t.Kind == FloatLit
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	_, ok := keywords[t.Text]
	return ok && t.Kind != Ident
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsOperator reports whether the token is an operator with the given spelling.
func (t Token) IsOperator(text string) bool {
	return t.Kind == Operator && t.Text == text
}

// IsDeclStart reports whether the token can begin a declaration.
func (t Token) IsDeclStart() bool {
	switch t.Kind {
	case KwFunc, KwStruct, KwTypealias, KwExtension, KwLet, KwVar, At:
		return true
	default:
		return false
	}
}

// HasNewlineBefore reports whether a line break precedes the token.
func (t Token) HasNewlineBefore() bool {
	for _, tv := range t.Leading {
		if tv.Kind == TriviaNewline {
			return true
		}
	}
	return false
}
