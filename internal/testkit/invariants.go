package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"availc/internal/ast"
	"availc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every item span is non-empty and fully contained in its parent span
// 3) attributes end before the declaration keyword they decorate
// 4) name spans sit inside the item span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}
	return checkItems(b, f.Items, f.Span, sf.ID)
}

func checkItems(b *ast.Builder, items []ast.ItemID, parent source.Span, file source.FileID) error {
	for _, it := range items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != file {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, file)
		}
		if sp.Start < parent.Start || sp.End > parent.End {
			return fmt.Errorf("item span %v is outside parent span %v", sp, parent)
		}
		if item.Name != "" && (item.NameSpan.Start < sp.Start || item.NameSpan.End > sp.End) {
			return fmt.Errorf("name span of %q %v is outside item span %v", item.Name, item.NameSpan, sp)
		}
		for _, aid := range item.Attrs {
			attr := b.Items.Attr(aid)
			if attr == nil {
				return fmt.Errorf("nil attr for id=%d", aid)
			}
			if attr.Span.End <= attr.Span.Start {
				return fmt.Errorf("empty span for @%s", attr.Name)
			}
			if attr.Span.End > sp.Start {
				return fmt.Errorf("@%s %v overlaps declaration %v", attr.Name, attr.Span, sp)
			}
		}

		// члены типа лежат внутри его тела
		if st, ok := b.Items.Struct(it); ok {
			if err := checkItems(b, st.Members, sp, file); err != nil {
				return err
			}
		}
		if ext, ok := b.Items.Extension(it); ok {
			if err := checkItems(b, ext.Members, sp, file); err != nil {
				return err
			}
		}
	}
	return nil
}
