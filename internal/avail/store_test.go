package avail

import "testing"

func TestStoreApplicableOrder(t *testing.T) {
	b := NewStoreBuilder()
	b.Add(1,
		Record{Platform: Wildcard, DeprecatedUnconditional: true},
		Record{Platform: ParsePlatform("HAL9000"), Unavailable: true},
		Record{Platform: ParsePlatform("iOS"), Unavailable: true},
		Record{Platform: ParsePlatform("OSX"), Unavailable: true, Message: "mac"},
		Record{Platform: ParsePlatform("OSXApplicationExtension"), Message: "ext"},
		Record{Platform: Wildcard, Unavailable: true, DeprecatedUnconditional: true, Invalid: true},
	)
	s := b.Freeze()

	got := s.Applicable(1, Target{Platform: MacOS})
	if len(got) != 2 || got[0].Message != "mac" || !got[1].Platform.IsWildcard() {
		t.Fatalf("unexpected applicable records: %+v", got)
	}
	got = s.Applicable(1, Target{Platform: MacOS, AppExtension: true})
	if len(got) != 3 || got[0].Message != "ext" || got[1].Message != "mac" {
		t.Fatalf("unexpected applicable records for extension: %+v", got)
	}
	if len(s.Lookup(1)) != 6 || s.Lookup(2) != nil || s.Has(2) {
		t.Fatalf("lookup mismatch")
	}
}

func TestStoreBuilderPanicsAfterFreeze(t *testing.T) {
	b := NewStoreBuilder()
	b.Add(1, Record{Platform: Wildcard, Unavailable: true})
	s := b.Freeze()
	if s.Len() != 1 || len(s.Keys()) != 1 {
		t.Fatalf("unexpected store size")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on Add after Freeze")
		}
	}()
	b.Add(2, Record{Platform: Wildcard})
}

func TestLookupReturnsCopy(t *testing.T) {
	b := NewStoreBuilder()
	b.Add(7, Record{Platform: Wildcard, Message: "orig"})
	s := b.Freeze()
	recs := s.Lookup(7)
	recs[0].Message = "changed"
	if s.Lookup(7)[0].Message != "orig" {
		t.Fatalf("store mutated through Lookup result")
	}
}

func TestSelect(t *testing.T) {
	v := MustVersion
	tests := []struct {
		name   string
		recs   []Record
		deploy VersionTuple
		want   VerdictKind
	}{
		{"none", nil, VersionTuple{}, Available},
		{"unavailable", []Record{{Unavailable: true}}, VersionTuple{}, Unavailable},
		{"unavailable beats deprecated", []Record{{DeprecatedUnconditional: true}, {Unavailable: true}}, VersionTuple{}, Unavailable},
		{"obsoleted", []Record{{Obsoleted: v(10, 12)}}, v(10, 12), Obsoleted},
		{"not yet obsoleted", []Record{{Obsoleted: v(10, 12)}}, v(10, 11), Available},
		{"deprecated versioned", []Record{{Deprecated: v(2)}}, v(2, 0), Deprecated},
		{"deprecated without deployment", []Record{{Deprecated: v(2)}}, VersionTuple{}, Available},
		{"introduced later", []Record{{Introduced: v(10, 13)}}, v(10, 12), NotYetIntroduced},
		{"introduced earlier", []Record{{Introduced: v(10, 10, 3)}}, v(10, 12), Available},
		{"introduced without deployment", []Record{{Introduced: v(8)}}, VersionTuple{}, Available},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.recs, tt.deploy)
			if got.Kind != tt.want {
				t.Fatalf("Select = %v, want %v", got.Kind, tt.want)
			}
			if got.Kind != Available && got.Record == nil {
				t.Fatalf("verdict without record")
			}
		})
	}
}
