package token

var keywords = map[string]Kind{
	"func":      KwFunc,
	"struct":    KwStruct,
	"typealias": KwTypealias,
	"extension": KwExtension,
	"let":       KwLet,
	"var":       KwVar,
	"inout":     KwInout,
	"return":    KwReturn,
	"true":      KwTrue,
	"false":     KwFalse,
	"nil":       KwNil,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
