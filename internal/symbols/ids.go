package symbols

import "availc/internal/avail"

// ScopeID identifies a scope in the table.
type ScopeID uint32

// NoScopeID - отсутствие скоупа.
const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }

// SymbolID identifies a declared symbol. It doubles as the key of the
// symbol's availability records.
type SymbolID uint32

// NoSymbolID - отсутствие символа.
const NoSymbolID SymbolID = 0

func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// Key returns the availability store key of the symbol.
func (id SymbolID) Key() avail.Key { return avail.Key(id) }
