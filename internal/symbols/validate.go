package symbols

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Validate checks the structural invariants of the table after the
// declaration pass: parent/child links, the name index, symbol ownership,
// extension links and the placement of imported and member symbols.
// All problems are joined into one error.
func (t *Table) Validate() error {
	v := validator{t: t}
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		id, err := toScopeID(idx)
		if err != nil {
			v.errs = append(v.errs, err)
			continue
		}
		v.scope(id, &t.Scopes.data[idx])
	}
	for idx := 1; idx < len(t.Symbols.data); idx++ {
		id, err := toSymbolID(idx)
		if err != nil {
			v.errs = append(v.errs, err)
			continue
		}
		v.symbol(id, &t.Symbols.data[idx])
	}
	return errors.Join(v.errs...)
}

type validator struct {
	t    *Table
	errs []error
}

func (v *validator) fail(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) scopeAt(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(v.t.Scopes.data) {
		return nil
	}
	return &v.t.Scopes.data[id]
}

func (v *validator) scope(id ScopeID, s *Scope) {
	switch s.Kind {
	case ScopeInvalid:
		v.fail("scope %d has invalid kind", id)
	case ScopeImports:
		if s.Parent.IsValid() {
			v.fail("imports scope %d has parent %d", id, s.Parent)
		}
	default:
		if !s.Parent.IsValid() {
			v.fail("%s scope %d has no parent", s.Kind, id)
		}
	}

	if s.Parent.IsValid() {
		parent := v.scopeAt(s.Parent)
		switch {
		case parent == nil || s.Parent == id:
			v.fail("scope %d has invalid parent %d", id, s.Parent)
		case !slices.Contains(parent.Children, id):
			v.fail("scope %d parent %d missing backlink", id, s.Parent)
		}
	}
	for _, child := range s.Children {
		c := v.scopeAt(child)
		if c == nil || child == id {
			v.fail("scope %d has invalid child %d", id, child)
			continue
		}
		if c.Parent != id {
			v.fail("scope %d child %d missing parent backlink", id, child)
		}
	}

	// extension -> struct: только между type-скоупами
	if s.Extends.IsValid() {
		target := v.scopeAt(s.Extends)
		switch {
		case s.Kind != ScopeType:
			v.fail("%s scope %d cannot extend scope %d", s.Kind, id, s.Extends)
		case target == nil || target.Kind != ScopeType || s.Extends == id:
			v.fail("scope %d extends non-type scope %d", id, s.Extends)
		}
	}

	covered := make(map[SymbolID]struct{}, len(s.Symbols))
	for name, bucket := range s.NameIndex {
		for _, sym := range bucket {
			if !slices.Contains(s.Symbols, sym) {
				v.fail("scope %d name index %q references missing symbol %d", id, name, sym)
				continue
			}
			if got := v.t.Symbols.Get(sym); got != nil && got.Name != name {
				v.fail("scope %d indexes symbol %d (%q) under %q", id, sym, got.Name, name)
			}
			covered[sym] = struct{}{}
		}
	}
	for _, sym := range s.Symbols {
		if _, ok := covered[sym]; !ok {
			v.fail("scope %d symbol %d missing in name index", id, sym)
		}
	}
}

func (v *validator) symbol(id SymbolID, sym *Symbol) {
	if sym.Name == "" {
		v.fail("symbol %d has empty name", id)
	}
	scope := v.scopeAt(sym.Scope)
	if scope == nil {
		v.fail("symbol %d has invalid scope %d", id, sym.Scope)
		return
	}
	if !slices.Contains(scope.Symbols, id) {
		v.fail("symbol %d is missing from scope %d list", id, sym.Scope)
	}
	// снапшоты живут только в корневом imports-скоупе
	if sym.IsImported() != (scope.Kind == ScopeImports) {
		v.fail("symbol %d %q: imported=%v in %s scope", id, sym.Name, sym.IsImported(), scope.Kind)
	}
	if sym.Flags&SymbolFlagMember != 0 && scope.Kind != ScopeType {
		v.fail("member symbol %d %q declared in %s scope", id, sym.Name, scope.Kind)
	}
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
