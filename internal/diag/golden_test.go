package diag

import (
	"testing"

	"availc/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/sample.avl", []byte("a\nb\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     SemaDeprecatedUse,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "error SYN2001 testdata/sample.avl:1:1 first line second\n" +
		"note SYN2001 testdata/sample.avl:2:1 note line\n" +
		"warning SEM3002 testdata/sample.avl:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatGoldenDiagnostics(diags, fs, false); got != "error SYN2001 testdata/sample.avl:1:1 first line second\nwarning SEM3002 testdata/sample.avl:2:1 another" {
		t.Fatalf("unexpected output without notes:\n%s", got)
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexBadNumber, "LEX1004"},
		{SynAvailExpectRParen, "SYN2108"},
		{SemaUnavailableUse, "SEM3001"},
		{IOLoadFileError, "IO4001"},
		{ProjInvalidConfig, "PRJ5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if Code(2999).Title() != "Unknown error" {
		t.Errorf("unknown code must fall back to generic title")
	}
}
