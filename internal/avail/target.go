package avail

import (
	"fmt"
	"sort"
)

// Target describes what a compilation is checked against.
type Target struct {
	Platform     PlatformID
	AppExtension bool
	// Deployment is the minimum deployment version; zero means 0.
	Deployment VersionTuple
}

// DefaultTarget is macOS without an explicit deployment version.
func DefaultTarget() Target {
	return Target{Platform: MacOS}
}

// ParseTarget builds a target from user-facing strings (CLI flags, config).
// Platform names are matched case-insensitively; an empty deployment means 0.
func ParseTarget(platform string, appExtension bool, deployment string) (Target, error) {
	id, ok := LookupPlatformID(normalizePlatformFlag(platform))
	if !ok {
		return Target{}, fmt.Errorf("unknown platform %q", platform)
	}
	t := Target{Platform: id.Base(), AppExtension: appExtension || id.IsAppExtension()}
	if deployment != "" {
		v, err := ParseVersion(deployment)
		if err != nil {
			return Target{}, fmt.Errorf("deployment target: %w", err)
		}
		t.Deployment = v
	}
	return t, nil
}

// matchRank orders records for a target: 0 - extension-specific,
// 1 - host platform, 2 - wildcard; -1 means the record does not apply.
func (t Target) matchRank(p Platform) int {
	switch p.Kind {
	case PlatformWildcard:
		return 2
	case PlatformKnown:
		if t.AppExtension && p.ID == t.Platform.AppExtension() {
			return 0
		}
		if p.ID == t.Platform {
			return 1
		}
	}
	return -1
}

// Describe renders the target for logs and version banners.
func (t Target) Describe() string {
	name := t.Platform.String()
	if t.AppExtension {
		name = t.Platform.AppExtension().String()
	}
	if t.Deployment.IsSet() {
		return name + " " + t.Deployment.String()
	}
	return name
}

// Filter orders records for t: extension-specific records, then host
// platform records, then wildcard records. Invalid and unknown-platform
// records are dropped.
func (t Target) Filter(src []Record) []Record {
	type ranked struct {
		rank int
		rec  Record
	}
	tmp := make([]ranked, 0, len(src))
	for _, r := range src {
		if r.Invalid {
			continue
		}
		if rank := t.matchRank(r.Platform); rank >= 0 {
			tmp = append(tmp, ranked{rank: rank, rec: r})
		}
	}
	sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].rank < tmp[j].rank })
	out := make([]Record, len(tmp))
	for i := range tmp {
		out[i] = tmp[i].rec
	}
	return out
}
