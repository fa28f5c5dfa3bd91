package diag

import "availc/internal/source"

// identity одной диагностики: код, серьёзность, основной span и текст.
type reportIdentity struct {
	code    Code
	sev     Severity
	primary source.Span
	msg     string
}

type noteIdentity struct {
	span source.Span
	msg  string
}

// DedupReporter sits between the per-file phases and the file's bag:
// a report with an identity already seen is dropped, and repeated notes
// inside one diagnostic are collapsed.
type DedupReporter struct {
	next       Reporter
	seen       map[reportIdentity]struct{}
	suppressed int
}

// NewDedupReporter wraps next; a nil next swallows everything.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[reportIdentity]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []*Fix) {
	if r == nil {
		return
	}
	id := reportIdentity{code: code, sev: sev, primary: primary, msg: msg}
	if _, dup := r.seen[id]; dup {
		r.suppressed++
		return
	}
	r.seen[id] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, uniqueNotes(notes), fixes)
	}
}

// Suppressed returns how many reports were dropped as duplicates.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}

func uniqueNotes(notes []Note) []Note {
	if len(notes) < 2 {
		return notes
	}
	seen := make(map[noteIdentity]struct{}, len(notes))
	out := notes[:0:0]
	for _, n := range notes {
		key := noteIdentity{span: n.Span, msg: n.Msg}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
