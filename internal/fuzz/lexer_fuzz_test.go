package fuzztests

import (
	"testing"

	"availc/internal/diag"
	"availc/internal/lexer"
	"availc/internal/source"
	"availc/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addSourceSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.avl", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %d %v has span %v after offset %d", i, tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
			if i > len(file.Content)+1 {
				t.Fatalf("lexer does not advance: %d tokens for %d bytes", i, len(file.Content))
			}
		}
	})
}
