// Package avail models availability: dotted version tuples, target
// platforms, the normalized record produced for every @available
// attribute, and the two-phase record store consulted by the checker.
package avail
