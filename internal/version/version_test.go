package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func withoutColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	withoutColor(t)
	cases := map[string]string{
		"1.2.3":        "1.2.3",
		"0.3.0-dev":    "0.3.0-dev",
		"1.0.0-rc.1":   "1.0.0-rc.1",
		"weird":        "weird",
		"1.2-snapshot": "1.2-snapshot",
	}
	for in, want := range cases {
		withVersion(t, in, "", "")
		if got := Colored(); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColoredKeepsSuffixPlain(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })
	withVersion(t, "1.2.3-dev", "", "")

	got := Colored()
	if !strings.HasSuffix(got, "-dev") {
		t.Errorf("suffix lost: %q", got)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI sequences in %q", got)
	}
}

func TestBanner(t *testing.T) {
	withoutColor(t)
	withVersion(t, "1.2.3", "abc123", "2024-01-15T10:30:00Z")

	got := Banner()
	for _, want := range []string{"availc 1.2.3\n", "commit: abc123\n", "built:  2024-01-15T10:30:00Z\n", "go:     "} {
		if !strings.Contains(got, want) {
			t.Errorf("banner missing %q:\n%s", want, got)
		}
	}

	withVersion(t, "1.2.3", "", "")
	if got := Banner(); strings.Contains(got, "commit:") || strings.Contains(got, "built:") {
		t.Errorf("empty fields printed:\n%s", got)
	}
}
