package driver

import (
	"context"
	"strconv"

	"availc/internal/fix"
	"availc/internal/trace"
)

// Fix checks paths and applies the selected fix-its. The returned check
// result describes the sources before the fixes.
func Fix(ctx context.Context, paths []string, opts Options, apply fix.ApplyOptions) (*fix.ApplyResult, *CheckResult, error) {
	res, err := Check(ctx, paths, opts)
	if err != nil {
		return nil, nil, err
	}
	_, span := trace.BeginCtx(ctx, trace.ScopePhase, "fix")
	applied, err := fix.Apply(res.FileSet, res.Diagnostics(), apply)
	if applied != nil {
		span.WithExtra("applied", strconv.Itoa(len(applied.Applied)))
	}
	span.End("")
	return applied, res, err
}
