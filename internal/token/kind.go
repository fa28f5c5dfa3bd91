package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwTypealias represents the 'typealias' keyword.
	KwTypealias // typealias
	// KwExtension represents the 'extension' keyword.
	KwExtension // extension
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwInout represents the 'inout' keyword.
	KwInout // inout
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwTrue represents the 'true' literal keyword.
	KwTrue // true
	// KwFalse represents the 'false' literal keyword.
	KwFalse // false
	// KwNil represents the 'nil' literal keyword.
	KwNil // nil

	// IntLit represents a decimal, binary, octal or hex integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// StringLit represents a double-quoted string literal (raw text with quotes).
	StringLit

	// Operator represents a run of operator characters such as '+', '&+', '*'.
	Operator
	// Assign represents the '=' token.
	Assign // =
	// Arrow represents the '->' token.
	Arrow // ->
	// Colon represents the ':' token.
	Colon // :
	// Semicolon represents the ';' token.
	Semicolon // ;
	// Comma represents the ',' token.
	Comma // ,
	// Dot represents the '.' token.
	Dot // .
	// LParen represents the '(' token.
	LParen // (
	// RParen represents the ')' token.
	RParen // )
	// LBrace represents the '{' token.
	LBrace // {
	// RBrace represents the '}' token.
	RBrace // }
	// LBracket represents the '[' token.
	LBracket // [
	// RBracket represents the ']' token.
	RBracket // ]
	// At represents the '@' token.
	At // @
	// Underscore represents a lone '_'.
	Underscore // _
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	KwFunc:      "KwFunc",
	KwStruct:    "KwStruct",
	KwTypealias: "KwTypealias",
	KwExtension: "KwExtension",
	KwLet:       "KwLet",
	KwVar:       "KwVar",
	KwInout:     "KwInout",
	KwReturn:    "KwReturn",
	KwTrue:      "KwTrue",
	KwFalse:     "KwFalse",
	KwNil:       "KwNil",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	Operator:    "Operator",
	Assign:      "Assign",
	Arrow:       "Arrow",
	Colon:       "Colon",
	Semicolon:   "Semicolon",
	Comma:       "Comma",
	Dot:         "Dot",
	LParen:      "LParen",
	RParen:      "RParen",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	At:          "At",
	Underscore:  "Underscore",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
