package lexer

import (
	"testing"

	"availc/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.avl", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("expected EOF")
	}
}

func TestMarkResetAndSpan(t *testing.T) {
	cursor := NewCursor(createFile("hello"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("unexpected span %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("reset failed, off=%d", cursor.Off)
	}
	if !cursor.Eat('h') || cursor.Eat('x') {
		t.Fatalf("Eat misbehaved")
	}
	if cursor.PeekAt(3) != 'o' || cursor.PeekAt(4) != 0 {
		t.Fatalf("PeekAt misbehaved")
	}
}
