package symbols

import (
	"availc/internal/diag"
	"availc/internal/source"
)

// KindMask restricts lookup to specific symbol kinds.
type KindMask uint32

const (
	KindMaskNone KindMask = 0
	KindMaskAny  KindMask = ^KindMask(0)
	// KindMaskTypes - то, что может стоять в позиции типа.
	KindMaskTypes = KindMask(1<<SymbolType | 1<<SymbolGeneric)
	// KindMaskValues - то, на что может ссылаться выражение.
	KindMaskValues = KindMask(1<<SymbolFunction | 1<<SymbolLet | 1<<SymbolParam | 1<<SymbolType)
)

// Mask converts a symbol kind into a KindMask bit.
func (k SymbolKind) Mask() KindMask {
	return KindMask(1 << uint(k))
}

func matchKind(mask KindMask, kind SymbolKind) bool {
	return mask == KindMaskAny || mask&kind.Mask() != 0
}

// canShareName: функции и операторы перегружаются, остальное - нет.
func canShareName(existing, next SymbolKind) bool {
	if existing != next {
		return false
	}
	return next == SymbolFunction || next == SymbolOperator
}

// ResolverOptions configures resolver construction.
type ResolverOptions struct {
	Reporter diag.Reporter
}

// Resolver drives the scope stack for declaration and lookup.
type Resolver struct {
	table    *Table
	reporter diag.Reporter
	stack    []ScopeID
}

// NewResolver starts with root as the current scope when it is valid.
func NewResolver(table *Table, root ScopeID, opts ResolverOptions) *Resolver {
	r := &Resolver{
		table:    table,
		reporter: opts.Reporter,
		stack:    make([]ScopeID, 0, 8),
	}
	if root.IsValid() {
		r.stack = append(r.stack, root)
	}
	return r
}

func (r *Resolver) Table() *Table { return r.table }

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter creates a child scope of the current one and pushes it.
func (r *Resolver) Enter(kind ScopeKind, owner ScopeOwner, span source.Span) ScopeID {
	scope := r.table.Scopes.New(kind, r.CurrentScope(), owner, span)
	r.stack = append(r.stack, scope)
	return scope
}

// Reenter pushes a scope created earlier (the reference pass walks the
// scopes the declaration pass built).
func (r *Resolver) Reenter(scope ScopeID) {
	if scope.IsValid() {
		r.stack = append(r.stack, scope)
	}
}

// Leave pops the current scope; a mismatch with expected is a programming error.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		panic("symbols: scope stack mismatch")
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs sym into the current scope. A conflicting non-overloadable
// name reports a duplicate and returns false.
func (r *Resolver) Declare(sym Symbol) (SymbolID, bool) {
	scopeID := r.CurrentScope()
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	for _, id := range scope.NameIndex[sym.Name] {
		prev := r.table.Symbols.Get(id)
		if prev == nil || canShareName(prev.Kind, sym.Kind) {
			continue
		}
		r.reportDuplicateSymbol(sym.Name, sym.Span, prev.Span)
		return NoSymbolID, false
	}
	sym.Scope = scopeID
	id := r.table.Symbols.New(&sym)
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[sym.Name] = append(scope.NameIndex[sym.Name], id)
	return id, true
}

func (r *Resolver) reportDuplicateSymbol(name string, span, prev source.Span) {
	if r.reporter == nil {
		return
	}
	b := diag.ReportError(r.reporter, diag.SemaDuplicateSymbol, span, "invalid redeclaration of '"+name+"'")
	if prev != (source.Span{}) {
		b.WithNote(prev, "'"+name+"' previously declared here")
	}
	b.Emit()
}

// Lookup finds the innermost symbol named name visible at offset at.
func (r *Resolver) Lookup(name string, mask KindMask, at uint32) (SymbolID, bool) {
	all := r.LookupAll(name, mask, at)
	if len(all) == 0 {
		return NoSymbolID, false
	}
	return all[0], true
}

// LookupAll collects the candidates from the innermost scope that has any:
// newest declaration first. Extension scopes see the extended type's members
// before their lexical parent.
func (r *Resolver) LookupAll(name string, mask KindMask, at uint32) []SymbolID {
	if mask == KindMaskNone {
		return nil
	}
	scopeID := r.CurrentScope()
	for scopeID.IsValid() {
		scope := r.table.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		if found := r.lookupInScope(scope, name, mask, at); len(found) > 0 {
			return found
		}
		if ext := r.table.Scopes.Get(scope.Extends); ext != nil {
			if found := r.lookupInScope(ext, name, mask, at); len(found) > 0 {
				return found
			}
		}
		scopeID = scope.Parent
	}
	return nil
}

// LookupMember searches only the given scope (A.B type paths).
func (r *Resolver) LookupMember(scope ScopeID, name string, mask KindMask) []SymbolID {
	s := r.table.Scopes.Get(scope)
	if s == nil {
		return nil
	}
	return r.lookupInScope(s, name, mask, ^uint32(0))
}

func (r *Resolver) lookupInScope(scope *Scope, name string, mask KindMask, at uint32) []SymbolID {
	ids := scope.NameIndex[name]
	var out []SymbolID
	for i := len(ids) - 1; i >= 0; i-- {
		sym := r.table.Symbols.Get(ids[i])
		if sym == nil || !matchKind(mask, sym.Kind) {
			continue
		}
		if sym.Flags&SymbolFlagLocal != 0 && sym.Span.End > at {
			continue
		}
		out = append(out, ids[i])
	}
	return out
}
