package parser

import (
	"slices"

	"availc/internal/ast"
	"availc/internal/diag"
	"availc/internal/lexer"
	"availc/internal/source"
	"availc/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser - состояние парсера на один файл
type Parser struct {
	ts       *tokens      // поток токенов (Peek/Next) поверх лексера
	arenas   *ast.Builder // построитель аренных узлов
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	dropped  uint        // диагностики, отброшенные после MaxErrors
}

// ParseFile - входная точка для разбора одного файла.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		ts:       newTokens(lx),
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = br.Bag
	case diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) peek() token.Token {
	return p.ts.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.ts.Peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.ts.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseItems - основной цикл верхнего уровня: пока не EOF - parseDecl.
func (p *Parser) parseItems() {
	startSpan := p.peek().Span
	for !p.at(token.EOF) {
		// `struct X { };` - одиночная ';' между объявлениями допустима
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		itemID, ok := p.parseDecl(declTop)
		if !ok {
			p.resyncTop()
			continue
		}
		p.arenas.PushItem(p.file, itemID)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.peek().Span)
}

// resyncTop - восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего объявления ИЛИ EOF.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.KwFunc, token.KwStruct, token.KwTypealias,
		token.KwExtension, token.KwLet, token.KwVar, token.At)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// resyncMember - то же внутри `{ ... }` тела struct/extension; '}' не съедаем.
func (p *Parser) resyncMember() {
	p.resyncUntil(token.Semicolon, token.RBrace, token.KwFunc, token.KwStruct, token.KwTypealias,
		token.KwExtension, token.KwLet, token.KwVar, token.At)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseIdent ожидает Ident и возвращает его токен.
func (p *Parser) parseIdent(what string) (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected "+what+", got "+describeToken(p.peek()))
	return p.peek(), false
}

func describeToken(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return "'" + tok.Text + "'"
}
