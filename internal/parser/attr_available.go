package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"availc/internal/avail"
	"availc/internal/diag"
	"availc/internal/fix"
	"availc/internal/lexer"
	"availc/internal/rename"
	"availc/internal/source"
	"availc/internal/token"
)

const (
	msgAvailExpectLParen   = "expected '(' in 'available' attribute"
	msgAvailExpectPlatform = "expected platform name or '*' for 'available' attribute"
	msgAvailExpectComma    = "expected ',' in 'available' attribute"
	msgAvailExpectOption   = "expected 'available' option such as 'unavailable', 'introduced', 'deprecated', 'obsoleted', 'message', or 'renamed'"
	msgAvailExpectString   = "expected string literal in 'available' attribute"
	msgAvailExpectVersion  = "expected version number in 'available' attribute"
	msgAvailExpectRParen   = "expected ')' in 'available' attribute"
	msgAvailConflict       = "'available' attribute cannot be both unconditionally 'unavailable' and 'deprecated'"
	msgAvailFuture         = "must handle potential future platforms with '*'"
	msgAvailPlatformName   = "expected platform name"
	msgAvailInvalidRename  = "'renamed' argument of 'available' attribute must be an operator, identifier, or full function name, optionally prefixed by a type name"
)

// AvailableResult - итог разбора одного @available.
// OK=false означает, что атрибут отброшен целиком (Records пуст).
type AvailableResult struct {
	Records []avail.Record
	Span    source.Span // от '@' до ')' (или до последнего съеденного токена)
	OK      bool
}

// ParseAvailable разбирает аргументы @available; '@' и имя уже съедены.
// Состояния: Start → ParenOpen → PlatformOrWildcard → (OptionList | ShortForm)* → ParenClose.
func ParseAvailable(ts TokenStream, r diag.Reporter, at, name token.Token) AvailableResult {
	ap := availParser{ts: ts, r: r, at: at, name: name, last: name}
	ok := ap.parse()
	res := AvailableResult{Span: at.Span.Cover(ap.last.Span), OK: ok}
	if ok {
		res.Records = ap.records
	}
	return res
}

type availParser struct {
	ts      TokenStream
	r       diag.Reporter
	at      token.Token
	name    token.Token
	last    token.Token // последний съеденный токен
	records []avail.Record
}

func (ap *availParser) next() token.Token {
	tok := ap.ts.Next()
	if tok.Kind != token.EOF {
		ap.last = tok
	}
	return tok
}

func (ap *availParser) peekIs(k token.Kind) bool {
	return ap.ts.Peek().Kind == k
}

func (ap *availParser) peekNumber() bool {
	return ap.ts.Peek().IsNumber()
}

func (ap *availParser) peekWildcard() bool {
	return ap.ts.Peek().IsOperator("*")
}

func (ap *availParser) error(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(ap.r, code, sp, msg).Emit()
}

// fail репортит ошибку на следующем токене и восстанавливается до ')'.
func (ap *availParser) fail(code diag.Code, msg string) bool {
	ap.error(code, ap.ts.Peek().Span, msg)
	ap.recover()
	return false
}

// recover пропускает всё до ')' (съедая её) или до начала следующего объявления.
func (ap *availParser) recover() {
	for {
		tok := ap.ts.Peek()
		switch {
		case tok.Kind == token.EOF, tok.Kind == token.RBrace, tok.IsDeclStart():
			return
		case tok.Kind == token.RParen:
			ap.next()
			return
		}
		ap.next()
	}
}

func (ap *availParser) parse() bool {
	if !ap.peekIs(token.LParen) {
		ap.error(diag.SynAvailExpectLParen, ap.name.Span, msgAvailExpectLParen)
		ap.recover()
		return false
	}
	ap.next()

	switch {
	case ap.peekWildcard():
		ap.next()
		if !ap.peekIs(token.Comma) {
			return ap.fail(diag.SynAvailExpectComma, msgAvailExpectComma)
		}
		ap.next()
		if !ap.peekIs(token.Ident) {
			return ap.longForm(avail.Wildcard, nil)
		}
		first := ap.next()
		if ap.peekNumber() {
			return ap.shortForm(first, true)
		}
		return ap.longForm(avail.Wildcard, &first)

	case ap.peekIs(token.Ident):
		platTok := ap.next()
		if ap.peekNumber() {
			return ap.shortForm(platTok, false)
		}
		platform := ap.platform(platTok)
		if !ap.peekIs(token.Comma) {
			return ap.fail(diag.SynAvailExpectComma, msgAvailExpectComma)
		}
		ap.next()
		return ap.longForm(platform, nil)

	default:
		return ap.fail(diag.SynAvailExpectPlatform, msgAvailExpectPlatform)
	}
}

// platform классифицирует имя платформы; неизвестное имя - только предупреждение.
func (ap *availParser) platform(tok token.Token) avail.Platform {
	platform := avail.ParsePlatform(tok.Text)
	if platform.Kind == avail.PlatformUnknown {
		diag.ReportWarning(ap.r, diag.SynAvailUnknownPlatform, tok.Span,
			"unknown platform '"+tok.Text+"' for attribute 'available'").Emit()
	}
	return platform
}

// longForm: `platform, option (, option)* )`. firstKey - уже съеденный ключ первой опции.
func (ap *availParser) longForm(platform avail.Platform, firstKey *token.Token) bool {
	rec := avail.Record{Platform: platform}
	for {
		var key token.Token
		switch {
		case firstKey != nil:
			key = *firstKey
			firstKey = nil
		case ap.peekIs(token.Ident):
			key = ap.next()
		default:
			return ap.fail(diag.SynAvailExpectOption, msgAvailExpectOption)
		}

		switch key.Text {
		case "unavailable":
			rec.Unavailable = true
		case "deprecated":
			if !ap.peekIs(token.Colon) {
				rec.DeprecatedUnconditional = true
				break
			}
			ap.next()
			v, ok := ap.version()
			if !ok {
				return false
			}
			rec.Deprecated = v
		case "introduced", "obsoleted":
			if !ap.colonAfter(key) {
				return false
			}
			v, ok := ap.version()
			if !ok {
				return false
			}
			if key.Text == "introduced" {
				rec.Introduced = v
			} else {
				rec.Obsoleted = v
			}
		case "message", "renamed":
			if !ap.colonAfter(key) {
				return false
			}
			if !ap.peekIs(token.StringLit) {
				return ap.fail(diag.SynAvailExpectString, msgAvailExpectString)
			}
			strTok := ap.next()
			text := stringValue(strTok)
			if key.Text == "message" {
				rec.Message = text
			} else {
				ap.setRename(&rec, text, strTok.Span)
			}
		default:
			ap.error(diag.SynAvailExpectOption, key.Span, msgAvailExpectOption)
			ap.recover()
			return false
		}

		switch {
		case ap.peekIs(token.Comma):
			ap.next()
		case ap.peekIs(token.RParen):
			ap.next()
			rec.Span = ap.at.Span.Cover(ap.last.Span)
			if rec.Unavailable && rec.DeprecatedUnconditional {
				ap.error(diag.SemaConflictingAvailability, rec.Span, msgAvailConflict)
				rec.Invalid = true
			}
			ap.records = append(ap.records, rec)
			return true
		default:
			// без пропуска: хвост всплывёт как "expected declaration"
			ap.error(diag.SynAvailExpectRParen, ap.ts.Peek().Span, msgAvailExpectRParen)
			return false
		}
	}
}

func (ap *availParser) colonAfter(key token.Token) bool {
	if ap.peekIs(token.Colon) {
		ap.next()
		return true
	}
	return ap.fail(diag.SynAvailExpectColon, "expected ':' after '"+key.Text+"' in 'available' attribute")
}

func (ap *availParser) setRename(rec *avail.Record, text string, sp source.Span) {
	rec.Renamed = text
	spec, err := rename.Parse(text)
	if err != nil {
		ap.error(diag.SynAvailInvalidRename, sp, msgAvailInvalidRename)
		rec.RenameInvalid = true
		return
	}
	rec.Rename = spec
}

// shortForm: `platform version (, platform version | , *)* )`.
func (ap *availParser) shortForm(first token.Token, wildcard bool) bool {
	platTok := first
	var versionEnd source.Span
	for {
		v, vspan, ok := ap.versionSpan()
		if !ok {
			return false
		}
		versionEnd = vspan
		ap.records = append(ap.records, avail.Record{
			Platform:   ap.platform(platTok),
			Introduced: v,
			ShortForm:  true,
			Span:       platTok.Span.Cover(vspan),
		})

		// следующий элемент списка: '*' или `platform version`
		found := false
		for !found && ap.peekIs(token.Comma) {
			comma := ap.next()
			switch {
			case ap.peekWildcard():
				ap.next()
				wildcard = true
			case ap.peekIs(token.Ident):
				platTok = ap.next()
				if !ap.peekNumber() {
					return ap.fail(diag.SynAvailExpectVersion, msgAvailExpectVersion)
				}
				found = true
			default:
				ap.error(diag.SynAvailExpectPlatformName, comma.Span, msgAvailPlatformName)
				ap.recover()
				return false
			}
		}
		if !found {
			break
		}
	}

	if !wildcard {
		at := versionEnd.EndPoint()
		diag.ReportError(ap.r, diag.SynAvailFuturePlatforms, first.Span, msgAvailFuture).
			WithFixSuggestion(fix.InsertText("add ', *'", at, ", *", "", fix.Preferred())).
			Emit()
	}
	if !ap.peekIs(token.RParen) {
		ap.error(diag.SynAvailExpectRParen, ap.ts.Peek().Span, msgAvailExpectRParen)
		return false
	}
	ap.next()
	return true
}

func (ap *availParser) version() (avail.VersionTuple, bool) {
	v, _, ok := ap.versionSpan()
	return v, ok
}

// versionSpan читает версию из токенов: IntLit целиком либо FloatLit
// со смежными продолжениями `.N` (1.0 . 1 → "1.0.1").
func (ap *availParser) versionSpan() (avail.VersionTuple, source.Span, bool) {
	tok := ap.ts.Peek()
	if !tok.IsNumber() {
		return avail.VersionTuple{}, source.Span{}, ap.fail(diag.SynAvailExpectVersion, msgAvailExpectVersion)
	}
	ap.next()
	var sb strings.Builder
	sb.WriteString(tok.Text)
	sp := tok.Span
	if tok.Kind == token.FloatLit {
		for ap.peekIs(token.Dot) && ap.ts.Peek().Span.Start == sp.End {
			dot := ap.next()
			part := ap.ts.Peek()
			if part.Kind != token.IntLit || part.Span.Start != dot.Span.End {
				return avail.VersionTuple{}, source.Span{}, ap.fail(diag.SynAvailExpectVersion, msgAvailExpectVersion)
			}
			ap.next()
			sb.WriteByte('.')
			sb.WriteString(part.Text)
			sp = sp.Cover(part.Span)
		}
	}
	v, err := avail.ParseVersion(sb.String())
	if err != nil {
		ap.error(diag.SynAvailExpectVersion, sp, msgAvailExpectVersion)
		ap.recover()
		return avail.VersionTuple{}, source.Span{}, false
	}
	return v, sp, true
}

// stringValue снимает кавычки и экранирование и нормализует строку в NFC.
// Ошибки экранирования уже сообщил лексер; тогда берём текст как есть.
func stringValue(tok token.Token) string {
	text, err := lexer.Unquote(tok.Text)
	if err != nil {
		text = strings.TrimSuffix(strings.TrimPrefix(tok.Text, `"`), `"`)
	}
	return norm.NFC.String(text)
}
