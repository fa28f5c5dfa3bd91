package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"availc/internal/ast"
	"availc/internal/avail"
	"availc/internal/diag"
	"availc/internal/lexer"
	"availc/internal/observ"
	"availc/internal/parser"
	"availc/internal/sema"
	"availc/internal/source"
	"availc/internal/trace"
)

// Options configure a check run.
type Options struct {
	Target         avail.Target
	Imports        []sema.Import
	MaxDiagnostics int // per file; 0 - без ограничения
	// IgnoreWarnings drops warnings; WarningsAsErrors promotes them.
	IgnoreWarnings   bool
	WarningsAsErrors bool
	Jobs             int // 0 - GOMAXPROCS
	Progress         ProgressObserver
}

// FileResult holds everything produced for one file.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Bag     *diag.Bag
	Builder *ast.Builder
	ASTFile ast.FileID
	Sema    *sema.Result
	Timing  observ.Report
}

// CheckResult aggregates a run over one or more files.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Diagnostics returns all diagnostics in input-file order.
func (r *CheckResult) Diagnostics() []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Bag.Items()...)
	}
	return out
}

// Merged collects every file's diagnostics into one sorted bag limited to
// maxDiagnostics entries.
func (r *CheckResult) Merged(maxDiagnostics int) *diag.Bag {
	all := diag.NewBag(0)
	for _, f := range r.Files {
		all.Merge(f.Bag)
	}
	all.Sort()
	if maxDiagnostics <= 0 {
		return all
	}
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range all.Items() {
		if !bag.Add(d) {
			break
		}
	}
	return bag
}

// HasErrors reports whether any file has an error diagnostic.
func (r *CheckResult) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Timing sums the phase timings of all files.
func (r *CheckResult) Timing() observ.Report {
	var total observ.Report
	for _, f := range r.Files {
		total.Add(f.Timing)
	}
	return total
}

// Check checks files and directories. Files are loaded up front on the
// calling goroutine; lexing, parsing and the availability pass then run
// in parallel, one worker per file, each with its own AST and bag.
func Check(ctx context.Context, paths []string, opts Options) (*CheckResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeCommand, "check")
	defer span.End("")

	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	fileSet := source.NewFileSetWithBase(commonBase(paths))
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		ids[i] = id
		opts.Progress.emit(ProgressEvent{Path: path, Status: ProgressQueued, Index: i, Total: len(files)})
	}
	return checkLoaded(ctx, fileSet, files, ids, opts)
}

// CheckSource checks an in-memory file; used by tests and stdin input.
func CheckSource(ctx context.Context, name string, content []byte, opts Options) *CheckResult {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	res, err := checkLoaded(ctx, fileSet, []string{name}, []source.FileID{id}, opts)
	if err != nil {
		// один файл без отмены контекста не может упасть
		panic(err)
	}
	return res
}

func checkLoaded(ctx context.Context, fileSet *source.FileSet, paths []string, ids []source.FileID, opts Options) (*CheckResult, error) {
	res := &CheckResult{FileSet: fileSet, Files: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return res, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// слоты уникальны для каждой горутины, мьютекс не нужен
			res.Files[i] = checkFile(gctx, fileSet, paths[i], ids[i], i, len(paths), opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func checkFile(ctx context.Context, fileSet *source.FileSet, path string, id source.FileID, index, total int, opts Options) FileResult {
	started := time.Now()
	opts.Progress.emit(ProgressEvent{Path: path, Status: ProgressStarted, Index: index, Total: total})

	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+path)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	timer := observ.NewTimer()
	file := fileSet.Get(id)

	phase := timer.Begin("parse")
	_, ps := trace.BeginCtx(ctx, trace.ScopePhase, "parse")
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(fileSet, lx, builder, parser.Options{
		MaxErrors: safecast.MustConv[uint](max(opts.MaxDiagnostics, 0)),
		Reporter:  reporter,
	})
	items := len(builder.Files.Get(parsed.File).Items)
	ps.WithExtra("items", strconv.Itoa(items)).End("")
	timer.End(phase, strconv.Itoa(items)+" items")

	phase = timer.Begin("check")
	_, cs := trace.BeginCtx(ctx, trace.ScopePhase, "availability")
	semaRes := sema.Check(fileSet, builder, parsed.File, sema.Options{
		Reporter: reporter,
		Target:   opts.Target,
		Imports:  opts.Imports,
		Validate: trace.FromContext(ctx).Level() >= trace.LevelDetail,
	})
	cs.WithExtra("refs", strconv.Itoa(len(semaRes.Refs))).End("")
	timer.End(phase, strconv.Itoa(len(semaRes.Refs))+" refs")

	if n := reporter.Suppressed(); n > 0 {
		span.WithExtra("dup", strconv.Itoa(n))
	}
	applyWarningPolicy(bag, opts)
	bag.Sort()

	errs, warns := countSeverities(bag)
	span.WithExtra("errors", strconv.Itoa(errs)).WithExtra("warnings", strconv.Itoa(warns)).End("")
	opts.Progress.emit(ProgressEvent{
		Path: path, Status: ProgressDone, Index: index, Total: total,
		Errors: errs, Warnings: warns, Elapsed: time.Since(started),
	})

	return FileResult{
		Path:    path,
		FileID:  id,
		Bag:     bag,
		Builder: builder,
		ASTFile: parsed.File,
		Sema:    &semaRes,
		Timing:  timer.Report(),
	}
}

func applyWarningPolicy(bag *diag.Bag, opts Options) {
	if opts.IgnoreWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
		return
	}
	if opts.WarningsAsErrors {
		for _, d := range bag.Items() {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		}
	}
}

func countSeverities(bag *diag.Bag) (errs, warns int) {
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	return errs, warns
}
