package diagfmt

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"availc/internal/diag"
	"availc/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.TextEdit) (fixEditPreview, error) {
	return buildPreview(fs, []diag.TextEdit{edit})
}

// buildPreview renders the lines touched by edits before and after applying
// all of them. Edits must belong to one file and must not overlap.
func buildPreview(fs *source.FileSet, edits []diag.TextEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	if len(edits) == 0 {
		return fixEditPreview{}, nil
	}
	fileID := edits[0].Span.File
	file := fs.Get(fileID)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", fileID)
	}

	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b diag.TextEdit) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
	var startLine, endLine uint32
	for i, e := range sorted {
		if e.Span.File != fileID {
			return fixEditPreview{}, fmt.Errorf("fix spans several files")
		}
		if i > 0 && e.Span.Start < sorted[i-1].Span.End {
			return fixEditPreview{}, fmt.Errorf("overlapping edits at offset %d", e.Span.Start)
		}
		s, en := fs.Resolve(e.Span)
		if i == 0 || s.Line < startLine {
			startLine = s.Line
		}
		endLine = max(endLine, en.Line, s.Line)
	}

	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixEditPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}
	blockStart := lineStartOffset(file, startLine, lenContent)
	blockEnd := min(max(lineEndOffsetInclusive(file, endLine, lenContent), blockStart), lenContent)
	original := file.Content[blockStart:blockEnd]

	var after strings.Builder
	cur := blockStart
	for _, e := range sorted {
		if e.Span.Start < cur || e.Span.End > blockEnd {
			return fixEditPreview{}, fmt.Errorf("edit span %d-%d out of range for preview block", e.Span.Start, e.Span.End)
		}
		after.Write(file.Content[cur:e.Span.Start])
		after.WriteString(e.NewText)
		cur = e.Span.End
	}
	after.Write(file.Content[cur:blockEnd])

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines([]byte(after.String())),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	// хвостовой перевод строки не даёт пустой последней строки
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func lineStartOffset(f *source.File, line, eof uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := line - 2; int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return eof
}

func lineEndOffsetInclusive(f *source.File, line, eof uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := line - 1; int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return eof
}
