package driver

import (
	"context"
	"fmt"

	"availc/internal/project"
	"availc/internal/trace"
)

// ExportResult is the outcome of Export.
type ExportResult struct {
	Check    *CheckResult
	Snapshot *Snapshot
}

// Export checks one file and writes its availability snapshot to out.
// Nothing is written when the file has errors.
func Export(ctx context.Context, path, out string, opts Options, importDigests []project.Digest) (*ExportResult, error) {
	res, err := Check(ctx, []string{path}, opts)
	if err != nil {
		return nil, err
	}
	if len(res.Files) != 1 {
		return nil, fmt.Errorf("export expects exactly one source file, got %d", len(res.Files))
	}
	if res.HasErrors() {
		return &ExportResult{Check: res}, nil
	}

	_, span := trace.BeginCtx(ctx, trace.ScopePhase, "export")
	defer span.End(out)
	snap := NewSnapshot(res, &res.Files[0], importDigests...)
	if err := WriteSnapshot(out, snap); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	return &ExportResult{Check: res, Snapshot: snap}, nil
}
