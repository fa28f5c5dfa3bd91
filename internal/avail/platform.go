package avail

import "strings"

// PlatformKind tags a Platform value.
type PlatformKind uint8

const (
	PlatformWildcard PlatformKind = iota // '*'
	PlatformKnown
	PlatformUnknown // recorded with a warning, never matches
)

// PlatformID enumerates the platforms the checker knows about.
type PlatformID uint8

const (
	NoPlatform PlatformID = iota
	IOS
	MacOS
	TvOS
	WatchOS
	IOSAppExtension
	MacOSAppExtension
	TvOSAppExtension
	WatchOSAppExtension
)

var platformNames = [...]string{
	NoPlatform:          "",
	IOS:                 "iOS",
	MacOS:               "macOS",
	TvOS:                "tvOS",
	WatchOS:             "watchOS",
	IOSAppExtension:     "iOSApplicationExtension",
	MacOSAppExtension:   "macOSApplicationExtension",
	TvOSAppExtension:    "tvOSApplicationExtension",
	WatchOSAppExtension: "watchOSApplicationExtension",
}

// platformByName принимает и старые написания (OSX).
var platformByName = map[string]PlatformID{
	"iOS":                         IOS,
	"OSX":                         MacOS,
	"macOS":                       MacOS,
	"tvOS":                        TvOS,
	"watchOS":                     WatchOS,
	"iOSApplicationExtension":     IOSAppExtension,
	"OSXApplicationExtension":     MacOSAppExtension,
	"macOSApplicationExtension":   MacOSAppExtension,
	"tvOSApplicationExtension":    TvOSAppExtension,
	"watchOSApplicationExtension": WatchOSAppExtension,
}

func (id PlatformID) String() string {
	if int(id) < len(platformNames) {
		return platformNames[id]
	}
	return "unknown"
}

// IsAppExtension reports whether id is one of the *ApplicationExtension variants.
func (id PlatformID) IsAppExtension() bool {
	return id >= IOSAppExtension && id <= WatchOSAppExtension
}

// Base maps an extension variant to its host platform.
func (id PlatformID) Base() PlatformID {
	if id.IsAppExtension() {
		return id - (IOSAppExtension - IOS)
	}
	return id
}

// AppExtension maps a host platform to its extension variant.
func (id PlatformID) AppExtension() PlatformID {
	if id >= IOS && id <= WatchOS {
		return id + (IOSAppExtension - IOS)
	}
	return id
}

// KnownPlatformNames lists the canonical spellings in declaration order.
func KnownPlatformNames() []string {
	out := make([]string, 0, len(platformNames)-1)
	for _, name := range platformNames[IOS:] {
		out = append(out, name)
	}
	return out
}

// LookupPlatformID resolves a platform spelling (case-sensitive).
func LookupPlatformID(name string) (PlatformID, bool) {
	id, ok := platformByName[name]
	return id, ok
}

// Platform is the platform part of a record.
type Platform struct {
	Kind PlatformKind
	ID   PlatformID
	// Name is the spelling from the source ("OSX", "badPlatform", "*").
	Name string
}

// Wildcard is the '*' platform.
var Wildcard = Platform{Kind: PlatformWildcard, Name: "*"}

// ParsePlatform classifies a platform spelling; unknown names are not errors.
func ParsePlatform(name string) Platform {
	if name == "*" {
		return Wildcard
	}
	if id, ok := LookupPlatformID(name); ok {
		return Platform{Kind: PlatformKnown, ID: id, Name: name}
	}
	return Platform{Kind: PlatformUnknown, Name: name}
}

func (p Platform) IsWildcard() bool { return p.Kind == PlatformWildcard }
func (p Platform) IsKnown() bool    { return p.Kind == PlatformKnown }

// String returns the display name: canonical for known platforms,
// the source spelling otherwise.
func (p Platform) String() string {
	switch p.Kind {
	case PlatformWildcard:
		return "*"
	case PlatformKnown:
		return p.ID.String()
	default:
		return p.Name
	}
}

// PlatformNames lists the canonical names of all known platforms.
func PlatformNames() []string {
	return append([]string(nil), platformNames[1:]...)
}

// normalizePlatformFlag делает "macos"/"ios" из CLI валидными.
func normalizePlatformFlag(s string) string {
	for name := range platformByName {
		if strings.EqualFold(name, s) {
			return name
		}
	}
	return s
}
