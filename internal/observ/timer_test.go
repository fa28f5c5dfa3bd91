package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin("parse")
	tm.End(i, "12 items")
	j := tm.Begin("check")
	tm.End(j, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "12 items" {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Error("total is smaller than a phase")
	}
}

func TestReportAdd(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "check", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "check", DurationMS: 3}, {Name: "export", DurationMS: 1}}}
	a.Add(b)
	if a.TotalMS != 7 || len(a.Phases) != 3 || a.Phases[1].DurationMS != 5 || a.Phases[2].Name != "export" {
		t.Errorf("unexpected sum %+v", a)
	}
	s := a.Summary()
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "total") {
		t.Errorf("unexpected summary:\n%s", s)
	}
}

func TestNilTimerReport(t *testing.T) {
	var tm *Timer
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Error("nil timer must report nothing")
	}
}
