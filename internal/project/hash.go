package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine hashes a file's content digest with the digests of the snapshots
// it was checked against: H(content || import1 || import2 ...).
// Callers pass imports in command-line order.
func Combine(content Digest, imports ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range imports {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports an unset digest.
func (d Digest) IsZero() bool { return d == Digest{} }
