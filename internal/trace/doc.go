// Package trace records what availc spends its time on.
//
// A run is a tree of spans: the command at the root, one span per checked
// file and one per phase of a file (lex, parse, declare, check). Events go
// to a StreamTracer (text or NDJSON), a RingTracer kept in memory for crash
// dumps, or both.
//
// # Usage
//
//	availc check --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring buffer only, dumped when the command crashes
//   - LevelPhase: command and phase boundaries
//   - LevelDetail: adds per-file spans
//   - LevelDebug: adds per-declaration events
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "parse", parentID)
//	defer span.End("")
package trace
