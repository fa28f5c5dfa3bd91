// Package diag defines the core diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, the parser (including the availability attribute grammar)
//     and the availability checker.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that the CLI can preview and
//     apply.
//
// # Scope
//
// Package diag does not perform formatting beyond the stable single-line
// golden form, nor IO or CLI integration. Rendering lives in
// internal/diagfmt, applying fixes lives in internal/fix.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. “'f()'
// has been explicitly marked unavailable here”) rather than repeating the
// diagnostic message.
//
// # Fix suggestions
//
// Fix represents a possible automated correction. Each fix carries a Title,
// a Kind, an Applicability level, an optional IsPreferred mark and the
// concrete TextEdits. Edits inside one fix never overlap; OldText acts as an
// optional guard that the fix engine checks before applying an edit.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. The parser
// and the checker construct a ReportBuilder via NewReportBuilder (or the
// helpers ReportError/ReportWarning) and chain WithNote / WithFixSuggestion
// before calling Emit. BagReporter aggregates diagnostics into a Bag, which
// supports sorting, deduplication and merging.
package diag
