package avail

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// MaxVersionComponents is the largest number of dotted components accepted.
const MaxVersionComponents = 4

// ErrInvalidVersion reports a malformed version string.
var ErrInvalidVersion = errors.New("invalid version")

// VersionTuple is an immutable dotted version such as 10.10.3.
// The zero value means "no version".
type VersionTuple struct {
	parts [MaxVersionComponents]uint32
	n     uint8
}

// NewVersion builds a tuple from explicit components.
func NewVersion(parts ...uint32) (VersionTuple, error) {
	if len(parts) == 0 || len(parts) > MaxVersionComponents {
		return VersionTuple{}, fmt.Errorf("%w: %d components", ErrInvalidVersion, len(parts))
	}
	var v VersionTuple
	copy(v.parts[:], parts)
	v.n = safecast.MustConv[uint8](len(parts))
	return v, nil
}

// MustVersion is NewVersion for constants in tests and defaults.
func MustVersion(parts ...uint32) VersionTuple {
	v, err := NewVersion(parts...)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseVersion accepts plain dotted decimal strings only: no signs,
// prefixes, exponents, separators or suffixes.
func ParseVersion(s string) (VersionTuple, error) {
	if s == "" {
		return VersionTuple{}, fmt.Errorf("%w: empty", ErrInvalidVersion)
	}
	fields := strings.Split(s, ".")
	if len(fields) > MaxVersionComponents {
		return VersionTuple{}, fmt.Errorf("%w: %q has more than %d components", ErrInvalidVersion, s, MaxVersionComponents)
	}
	var v VersionTuple
	for i, f := range fields {
		if f == "" || strings.TrimLeft(f, "0123456789") != "" {
			return VersionTuple{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return VersionTuple{}, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, s, err)
		}
		part, err := safecast.Conv[uint32](n)
		if err != nil {
			return VersionTuple{}, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, s, err)
		}
		v.parts[i] = part
	}
	v.n = safecast.MustConv[uint8](len(fields))
	return v, nil
}

// IsSet reports whether the tuple carries at least one component.
func (v VersionTuple) IsSet() bool { return v.n > 0 }

// Len returns the number of stated components.
func (v VersionTuple) Len() int { return int(v.n) }

// Component returns the i-th component; missing components read as zero.
func (v VersionTuple) Component(i int) uint32 {
	if i < 0 || i >= int(v.n) {
		return 0
	}
	return v.parts[i]
}

// Compare pads missing components with zero: 10.10 == 10.10.0.
func (v VersionTuple) Compare(o VersionTuple) int {
	for i := range MaxVersionComponents {
		a, b := v.Component(i), o.Component(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

func (v VersionTuple) Less(o VersionTuple) bool    { return v.Compare(o) < 0 }
func (v VersionTuple) Equal(o VersionTuple) bool   { return v.Compare(o) == 0 }
func (v VersionTuple) AtLeast(o VersionTuple) bool { return v.Compare(o) >= 0 }

// String prints only the stated components.
func (v VersionTuple) String() string {
	if v.n == 0 {
		return ""
	}
	var sb strings.Builder
	for i := range int(v.n) {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(v.parts[i]), 10))
	}
	return sb.String()
}
