package avail

import (
	"availc/internal/rename"
	"availc/internal/source"
)

// Record is one normalized @available attribute (or one platform of a
// short-form list).
type Record struct {
	Platform Platform

	Unavailable             bool
	DeprecatedUnconditional bool

	Introduced VersionTuple
	Deprecated VersionTuple
	Obsoleted  VersionTuple

	// Message is already unescaped.
	Message string
	// Renamed keeps the raw payload; Rename is nil when RenameInvalid.
	Renamed       string
	Rename        *rename.Spec
	RenameInvalid bool

	// Invalid records (unavailable + deprecated) never produce use-site diagnostics.
	Invalid bool

	// ShortForm marks records produced by "@available(iOS 8.0, *)".
	ShortForm bool

	Span source.Span
}

// HasRename reports whether the record carries any renamed: payload.
func (r *Record) HasRename() bool { return r.Renamed != "" }

// IsDeprecatedAny reports whether the record carries any deprecation.
func (r *Record) IsDeprecatedAny() bool {
	return r.DeprecatedUnconditional || r.Deprecated.IsSet()
}

// UnavailableAt reports unavailability at the given deployment version;
// obsoleted is true when the verdict comes from an obsoleted: version.
func (r *Record) UnavailableAt(deployment VersionTuple) (unavailable, obsoleted bool) {
	if r.Unavailable {
		return true, false
	}
	if r.Obsoleted.IsSet() && deployment.IsSet() && deployment.AtLeast(r.Obsoleted) {
		return true, true
	}
	return false, false
}

// DeprecatedAt reports deprecation at the given deployment version.
func (r *Record) DeprecatedAt(deployment VersionTuple) bool {
	if r.DeprecatedUnconditional {
		return true
	}
	return r.Deprecated.IsSet() && deployment.IsSet() && deployment.AtLeast(r.Deprecated)
}

// IntroducedAfter reports that the record introduces the symbol after the
// deployment version. Без явного deployment проверка не выполняется.
func (r *Record) IntroducedAfter(deployment VersionTuple) bool {
	return r.Introduced.IsSet() && deployment.IsSet() && deployment.Less(r.Introduced)
}

// VerdictKind classifies what the checker must report for a use.
type VerdictKind uint8

const (
	Available VerdictKind = iota
	Unavailable
	Obsoleted
	Deprecated
	NotYetIntroduced
)

func (k VerdictKind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case Obsoleted:
		return "obsoleted"
	case Deprecated:
		return "deprecated"
	case NotYetIntroduced:
		return "not-yet-introduced"
	default:
		return "available"
	}
}

// Verdict is the outcome of Select: the kind and the record that decided it.
type Verdict struct {
	Kind   VerdictKind
	Record *Record
}

// Select walks applicable records (already ordered by Store.Applicable):
// the first unavailable record wins, then the first deprecated one, then
// the first record that introduces the symbol after the deployment target.
func Select(records []Record, deployment VersionTuple) Verdict {
	for i := range records {
		if un, obs := records[i].UnavailableAt(deployment); un {
			if obs {
				return Verdict{Kind: Obsoleted, Record: &records[i]}
			}
			return Verdict{Kind: Unavailable, Record: &records[i]}
		}
	}
	for i := range records {
		if records[i].DeprecatedAt(deployment) {
			return Verdict{Kind: Deprecated, Record: &records[i]}
		}
	}
	for i := range records {
		if records[i].IntroducedAfter(deployment) {
			return Verdict{Kind: NotYetIntroduced, Record: &records[i]}
		}
	}
	return Verdict{Kind: Available}
}
