package avail

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
		n    int
	}{
		{"8", "8", 1},
		{"8.0", "8.0", 2},
		{"10.10.3", "10.10.3", 3},
		{"1.2.3.4", "1.2.3.4", 4},
		{"007", "7", 1},
		{"4294967295.1", "4294967295.1", 2},
	}
	for _, tt := range tests {
		v, err := ParseVersion(tt.in)
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", tt.in, err)
		}
		if v.String() != tt.want || v.Len() != tt.n {
			t.Errorf("ParseVersion(%q) = %s (%d), want %s (%d)", tt.in, v, v.Len(), tt.want, tt.n)
		}
	}
}

func TestParseVersionRejects(t *testing.T) {
	for _, in := range []string{"", "0x1", "1.0e4", "-1", "1.0.0x4", "1.0.x", "1..2", "1.2.3.4.5", "1_0", " 1", "99999999999", "1.4294967296"} {
		if _, err := ParseVersion(in); !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("ParseVersion(%q): expected ErrInvalidVersion, got %v", in, err)
		}
	}
}

func TestVersionOrdering(t *testing.T) {
	v := func(s string) VersionTuple {
		t.Helper()
		x, err := ParseVersion(s)
		if err != nil {
			t.Fatal(err)
		}
		return x
	}
	if !v("1.2").Less(v("1.2.1")) {
		t.Errorf("1.2 < 1.2.1 expected")
	}
	if !v("10.10").Equal(v("10.10.0")) {
		t.Errorf("10.10 == 10.10.0 expected")
	}
	if !v("10.9").Less(v("10.10")) {
		t.Errorf("10.9 < 10.10 expected")
	}
	if v("2").Compare(v("1.9.9.9")) != 1 {
		t.Errorf("2 > 1.9.9.9 expected")
	}
	if !v("3.0").AtLeast(v("3")) {
		t.Errorf("3.0 >= 3 expected")
	}
	var zero VersionTuple
	if zero.IsSet() || zero.String() != "" || !zero.Less(v("0.1")) {
		t.Errorf("zero tuple misbehaves")
	}
}

func TestNewVersion(t *testing.T) {
	if _, err := NewVersion(); !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("expected error for empty version")
	}
	if MustVersion(1, 2).String() != "1.2" {
		t.Errorf("MustVersion(1, 2) mismatch")
	}
}
