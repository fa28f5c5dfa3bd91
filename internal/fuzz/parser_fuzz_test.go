package fuzztests

import (
	"context"
	"testing"
	"time"

	"availc/internal/ast"
	"availc/internal/avail"
	"availc/internal/diag"
	"availc/internal/driver"
	"availc/internal/lexer"
	"availc/internal/parser"
	"availc/internal/rename"
	"availc/internal/source"
	"availc/internal/testkit"
)

// checkTimeout is the maximum time allowed for one input. If checking
// takes longer, it indicates a potential infinite loop.
const checkTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addSourceSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.avl", input))

		bag := diag.NewBag(128)
		reporter := &diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		builder := ast.NewBuilder(ast.Hints{})
		res := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: reporter, MaxErrors: 128})

		// инварианты проверяем только на чистом разборе
		if bag.HasErrors() || len(builder.Files.Get(res.File).Items) == 0 {
			return
		}
		if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzCheckNoHang runs the whole pipeline and fails on hangs.
func FuzzCheckNoHang(f *testing.F) {
	addSourceSeeds(f)
	f.Add([]byte("@available(*, unavailable, renamed: \"f(a:b:c:)\")\nfunc f() {}\nfunc u() { f(1, 2) }\n"))
	f.Add([]byte("@available(*,,,,)\n@available(*)\nfunc f() {}\n"))
	f.Add([]byte("func f() { f(f(f(f(f(f(f()))))))"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			driver.CheckSource(context.Background(), "fuzz.avl", input, driver.Options{
				Target:         avail.DefaultTarget(),
				MaxDiagnostics: 128,
			})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("check hang detected: took longer than %v\ninput (%d bytes): %q",
				checkTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func FuzzRenameParse(f *testing.F) {
	for _, s := range renameSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		spec, err := rename.Parse(raw)
		if err != nil {
			if spec != nil {
				t.Fatalf("Parse(%q) returned a spec with error %v", raw, err)
			}
			return
		}
		_ = rename.Describe(spec)
	})
}

func FuzzParseVersion(f *testing.F) {
	for _, s := range versionSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		v, err := avail.ParseVersion(raw)
		if err != nil {
			return
		}
		again, err := avail.ParseVersion(v.String())
		if err != nil {
			t.Fatalf("ParseVersion(%q).String() = %q does not parse: %v", raw, v.String(), err)
		}
		if !again.Equal(v) {
			t.Fatalf("version %q changed to %q", raw, again)
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
