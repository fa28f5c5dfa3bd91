// Package token defines lexical token kinds and trivia for availc sources.
// Invariants:
//   - Token.Text is a slice of the original source.
//   - Token.Span matches Text exactly (Start..End).
//   - Attributes are lexed as '@' (Kind: At) + Ident; no per-attribute token kinds.
//   - Runs of operator characters form a single Operator token, except for
//     the reserved spellings '=' (Assign) and '->' (Arrow).
//   - Numeric literals never start with '.', and a '.' only joins a literal
//     when a digit follows it, so "1.x" is IntLit Dot Ident.
package token
