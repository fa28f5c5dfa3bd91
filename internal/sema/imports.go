package sema

import (
	"availc/internal/ast"
	"availc/internal/avail"
	"availc/internal/symbols"
)

// ExportedSymbol is one top-level declaration of an availability snapshot.
type ExportedSymbol struct {
	Name     string
	FullName string
	Kind     symbols.SymbolKind
	Labels   []string
	Records  []avail.Record
}

// Import is a snapshot of another file, visible by name below the file's
// own declarations.
type Import struct {
	Module  string
	Symbols []ExportedSymbol
}

func (c *checker) declareImports(imports []Import) {
	for _, imp := range imports {
		for _, s := range imp.Symbols {
			if s.Name == "" {
				continue
			}
			id := c.table().DeclareImported(imp.Module, s.Name, s.FullName, s.Kind, s.Labels)
			c.records.Add(id.Key(), s.Records...)
		}
	}
}

// Exports lists the top-level declarations of the checked file together with
// their records, in declaration order. Declarations without records are
// included too: a snapshot shadows by name.
func (r *Result) Exports(builder *ast.Builder, fileID ast.FileID) []ExportedSymbol {
	file := builder.Files.Get(fileID)
	if file == nil {
		return nil
	}
	out := make([]ExportedSymbol, 0, len(file.Items))
	for _, item := range file.Items {
		id, ok := r.Decls[item]
		if !ok {
			continue
		}
		sym := r.Table.Symbols.Get(id)
		if sym == nil {
			continue
		}
		out = append(out, ExportedSymbol{
			Name:     sym.Name,
			FullName: sym.FullName,
			Kind:     sym.Kind,
			Labels:   sym.Labels,
			Records:  r.Store.Lookup(id.Key()),
		})
	}
	return out
}
