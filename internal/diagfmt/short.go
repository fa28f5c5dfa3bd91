package diagfmt

import (
	"io"

	"availc/internal/diag"
	"availc/internal/source"
)

// Short prints one line per diagnostic:
// "error SEM3001 path:line:col message", sorted by position. With
// withNotes, notes are printed as "note" lines in the same order.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, withNotes bool) error {
	out := diag.FormatGoldenDiagnostics(bag.Items(), fs, withNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
