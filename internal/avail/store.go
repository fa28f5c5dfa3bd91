package avail

import "slices"

// Key identifies a declaration in the store (the checker uses symbol ids).
type Key uint32

// StoreBuilder collects records during the declaration pass.
// After Freeze any mutation panics.
type StoreBuilder struct {
	records map[Key][]Record
	frozen  bool
}

func NewStoreBuilder() *StoreBuilder {
	return &StoreBuilder{records: make(map[Key][]Record)}
}

// Add appends records for key; calling it after Freeze panics.
func (b *StoreBuilder) Add(key Key, recs ...Record) {
	if b.frozen {
		panic("avail: StoreBuilder.Add after Freeze")
	}
	if len(recs) == 0 {
		return
	}
	b.records[key] = append(b.records[key], recs...)
}

// Len reports the number of keys with at least one record.
func (b *StoreBuilder) Len() int { return len(b.records) }

// Freeze hands the collected records to an immutable Store.
func (b *StoreBuilder) Freeze() *Store {
	if b.frozen {
		panic("avail: StoreBuilder.Freeze called twice")
	}
	b.frozen = true
	s := &Store{records: b.records}
	b.records = nil
	return s
}

// Store is the read-only record store used by the reference pass.
type Store struct {
	records map[Key][]Record
}

// Lookup returns a copy of every record attached to key, in source order.
func (s *Store) Lookup(key Key) []Record {
	if s == nil {
		return nil
	}
	return slices.Clone(s.records[key])
}

// Has reports whether key has any records.
func (s *Store) Has(key Key) bool {
	if s == nil {
		return false
	}
	return len(s.records[key]) > 0
}

// Applicable returns the records of key relevant to target, see Target.Filter.
func (s *Store) Applicable(key Key, t Target) []Record {
	if s == nil {
		return nil
	}
	return t.Filter(s.records[key])
}

// Keys returns all keys in ascending order.
func (s *Store) Keys() []Key {
	if s == nil {
		return nil
	}
	keys := make([]Key, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len reports the number of keys with records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}
