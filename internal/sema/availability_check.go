package sema

import (
	"strings"

	"availc/internal/avail"
	"availc/internal/diag"
	"availc/internal/fix"
	"availc/internal/rename"
	"availc/internal/symbols"
)

// checkUse reports the availability verdict for one resolved reference.
func (c *checker) checkUse(id symbols.SymbolID, shape rename.CallSiteShape) {
	c.result.Refs = append(c.result.Refs, Ref{Span: shape.Ref, Symbol: id})

	records := c.store.Applicable(id.Key(), c.target)
	if len(records) == 0 {
		return
	}
	verdict := avail.Select(records, c.target.Deployment)
	if verdict.Kind == avail.Available || c.context().suppressed(verdict) {
		return
	}
	sym := c.table().Symbols.Get(id)
	name := refName(sym, shape)
	rec := verdict.Record

	switch verdict.Kind {
	case avail.Unavailable, avail.Obsoleted:
		c.reportUnavailable(sym, name, rec, verdict.Kind, shape)
	case avail.Deprecated:
		c.reportDeprecated(name, rec, shape)
	case avail.NotYetIntroduced:
		msg := "'" + name + "' is only available on " + c.platformName(rec) + " " + rec.Introduced.String() + " or newer"
		diag.ReportError(c.reporter, diag.SemaNotYetIntroduced, shape.Ref, msg).Emit()
	}
	c.result.Diagnosed++
}

func (c *checker) reportUnavailable(sym *symbols.Symbol, name string, rec *avail.Record, kind avail.VerdictKind, shape rename.CallSiteShape) {
	var sb strings.Builder
	sb.WriteString("'" + name + "' ")
	if rec.Rename != nil {
		sb.WriteString("has been " + rename.Describe(rec.Rename).Phrase())
	} else {
		sb.WriteString("is unavailable")
	}
	if rec.Message != "" {
		sb.WriteString(": " + rec.Message)
	}

	code := diag.SemaUnavailableUse
	if kind == avail.Obsoleted {
		code = diag.SemaObsoletedUse
	}
	b := diag.ReportError(c.reporter, code, shape.Ref, sb.String())
	if f := c.renameFix(rec, shape, "replace with"); f != nil {
		b.WithFixSuggestion(f)
	}
	if rec.RenameInvalid {
		b.WithNote(shape.Ref, "invalid rename target '"+rec.Renamed+"'")
	}
	declSpan, ok := c.declSpan(sym)
	switch {
	case kind == avail.Obsoleted:
		note := "'" + name + "' was obsoleted in " + c.platformName(rec) + " " + rec.Obsoleted.String()
		if !ok {
			declSpan = shape.Ref
		}
		b.WithNote(declSpan, note)
	case ok:
		b.WithNote(declSpan, "'"+sym.FullName+"' has been explicitly marked unavailable here")
	}
	b.Emit()
}

func (c *checker) reportDeprecated(name string, rec *avail.Record, shape rename.CallSiteShape) {
	var sb strings.Builder
	if rec.DeprecatedUnconditional {
		sb.WriteString("'" + name + "' is deprecated")
	} else {
		sb.WriteString("'" + name + "' was deprecated in " + c.platformName(rec) + " " + rec.Deprecated.String())
	}
	switch {
	case rec.Message != "":
		sb.WriteString(": " + rec.Message)
	case rec.Rename != nil:
		sb.WriteString(": " + rename.Describe(rec.Rename).Phrase())
	}

	b := diag.ReportWarning(c.reporter, diag.SemaDeprecatedUse, shape.Ref, sb.String())
	if rec.Rename != nil {
		d := rename.Describe(rec.Rename)
		b.WithNote(shape.Ref, "use '"+d.Name+"' instead")
		if f := c.renameFix(rec, shape, "use"); f != nil {
			b.WithFixSuggestion(f)
		}
	}
	if rec.RenameInvalid {
		b.WithNote(shape.Ref, "invalid rename target '"+rec.Renamed+"'")
	}
	b.Emit()
}

// renameFix turns the rewriter's edits into a fix; nil when the call site
// cannot be migrated mechanically.
func (c *checker) renameFix(rec *avail.Record, shape rename.CallSiteShape, verb string) *diag.Fix {
	if rec.Rename == nil {
		return nil
	}
	res := rename.Rewrite(rec.Rename, shape)
	if len(res.Edits) == 0 {
		return nil
	}
	edits := make([]diag.TextEdit, 0, len(res.Edits))
	for _, e := range res.Edits {
		edits = append(edits, diag.TextEdit{
			Span:    e.Span,
			NewText: e.Text,
			OldText: c.fs.Text(e.Span),
		})
	}
	app := diag.FixApplicabilityAlwaysSafe
	if rec.Rename.IsInstanceMember() {
		app = diag.FixApplicabilitySafeWithHeuristics
	}
	if res.Fallback != rename.FallbackNone {
		// переименовано только имя, аргументы остались как были
		app = diag.FixApplicabilityManualReview
	}
	title := verb + " '" + rename.Describe(rec.Rename).Name + "'"
	if verb == "use" {
		title += " instead"
	}
	return fix.Edits(title, edits, fix.WithApplicability(app), fix.Preferred())
}

// refName is how a use site is named in messages: functions print their
// full name unless the call passes only unlabeled arguments.
func refName(sym *symbols.Symbol, shape rename.CallSiteShape) string {
	if sym.Kind != symbols.SymbolFunction || !shape.IsCall {
		return sym.Name
	}
	if len(shape.Args) > 0 && !shape.AnyLabeled() {
		return sym.Name
	}
	if sym.FullName != "" {
		return sym.FullName
	}
	return sym.Name
}

// platformName prints the record's platform, or the target's for '*'.
func (c *checker) platformName(rec *avail.Record) string {
	if rec.Platform.IsKnown() {
		return rec.Platform.String()
	}
	if c.target.AppExtension {
		return c.target.Platform.AppExtension().String()
	}
	return c.target.Platform.String()
}
