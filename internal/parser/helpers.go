package parser

import (
	"slices"

	"availc/internal/diag"
	"availc/internal/source"
	"availc/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.ts.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan - возвращает лучший span для диагностики.
// На EOF используем позицию сразу после последнего съеденного токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.emit(diag.NewReportBuilder(p.reporter(), sev, code, sp, msg))
}

// emit отправляет собранную диагностику; false - если её отбросили (лимит или нет reporter).
func (p *Parser) emit(b *diag.ReportBuilder) bool {
	if p.opts.Reporter == nil {
		return false
	}
	before := p.dropped
	b.Emit()
	return p.dropped == before
}

// reporter возвращает Reporter, который считает ошибки и соблюдает MaxErrors.
// Его же получает парсер атрибутов, работающий напрямую с TokenStream.
func (p *Parser) reporter() diag.Reporter {
	return countingReporter{p: p}
}

type countingReporter struct{ p *Parser }

func (r countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []*diag.Fix) {
	p := r.p
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.Enough() {
		p.dropped++ // достигли максимального количества ошибок
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, primary, msg, notes, fixes)
}

// resyncUntil пропускает токены, пока не встретит один из stop или EOF. Стоп-токен не съедается.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) {
		if slices.Contains(stop, p.peek().Kind) {
			return
		}
		p.advance()
	}
}
