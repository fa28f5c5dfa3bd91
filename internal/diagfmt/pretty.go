package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"availc/internal/diag"
	"availc/internal/source"
)

type palette struct {
	err, warn, info, note, fix, path, gutter, caret, added, removed *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:     mk(color.FgRed, color.Bold),
		warn:    mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		note:    mk(color.FgCyan),
		fix:     mk(color.FgGreen),
		path:    mk(color.Bold),
		gutter:  mk(color.FgBlue),
		caret:   mk(color.FgGreen, color.Bold),
		added:   mk(color.FgGreen),
		removed: mk(color.FgRed),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	start, _ := fs.Resolve(d.Primary)
	path := displayPath(fs, d.Primary.File, opts.PathMode)
	fmt.Fprintf(w, "%s %s: %s\n",
		p.path.Sprintf("%s:%d:%d:", path, start.Line, start.Col),
		p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()),
		d.Message)

	writeSnippet(w, fs, d.Primary, opts, p, p.severity(d.Severity))

	if opts.ShowNotes {
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				displayPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	if opts.ShowFixes {
		fixes := append([]*diag.Fix(nil), d.Fixes...)
		sortFixes(fixes)
		for i, f := range fixes {
			writeFix(w, fs, i+1, f, opts, p)
		}
	}
}

func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette, caretColor *color.Color) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	totalLines := safecast.MustConv[uint32](len(f.LineIdx)) + 1
	last := min(start.Line+ctx, totalLines)
	gw := len(fmt.Sprint(last))
	gutter := func(s string) string { return p.gutter.Sprintf("%*s |", gw, s) }

	fmt.Fprintln(w, gutter(""))
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		fmt.Fprintf(w, "%s %s\n", gutter(fmt.Sprint(ln)), clip(text, opts.Width))
		if ln != start.Line {
			continue
		}
		endCol := end.Col
		if end.Line != start.Line {
			endCol = safecast.MustConv[uint32](len(text)) + 1
		}
		pad, width := caretGeometry(text, start.Col, endCol)
		marker := "^" + strings.Repeat("~", max(width-1, 0))
		fmt.Fprintf(w, "%s %s%s\n", gutter(""), pad, caretColor.Sprint(marker))
	}
}

// caretGeometry returns the indentation under a line up to col and the
// display width of [col, endCol). Tabs stay tabs so the caret lines up in
// any tab width.
func caretGeometry(line string, col, endCol uint32) (string, int) {
	startByte := min(safecast.MustConv[int](col)-1, len(line))
	endByte := min(max(safecast.MustConv[int](endCol)-1, startByte), len(line))

	var pad strings.Builder
	for _, r := range line[:startByte] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String(), max(runewidth.StringWidth(line[startByte:endByte]), 1)
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}

func writeFix(w io.Writer, fs *source.FileSet, n int, f *diag.Fix, opts PrettyOpts, p palette) {
	meta := []string{f.Applicability.String()}
	if f.IsPreferred {
		meta = append(meta, "preferred")
	}
	if f.ID != "" {
		meta = append(meta, "id="+f.ID)
	}
	fmt.Fprintf(w, "  %s %s (%s)\n", p.fix.Sprintf("fix #%d:", n), f.Title, strings.Join(meta, ", "))
	if !opts.ShowPreview {
		for _, e := range f.Edits {
			s, _ := fs.Resolve(e.Span)
			fmt.Fprintf(w, "    %d:%d apply=%q\n", s.Line, s.Col, e.NewText)
		}
		return
	}
	preview, err := buildPreview(fs, f.Edits)
	if err != nil {
		fmt.Fprintf(w, "    preview unavailable: %v\n", err)
		return
	}
	fmt.Fprintln(w, "    preview:")
	for _, l := range preview.before {
		fmt.Fprintf(w, "      %s\n", p.removed.Sprint("- "+clip(l, opts.Width)))
	}
	for _, l := range preview.after {
		fmt.Fprintf(w, "      %s\n", p.added.Sprint("+ "+clip(l, opts.Width)))
	}
}
