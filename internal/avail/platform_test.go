package avail

import (
	"strings"
	"testing"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in   string
		kind PlatformKind
		id   PlatformID
		disp string
	}{
		{"*", PlatformWildcard, 0, "*"},
		{"OSX", PlatformKnown, MacOS, "macOS"},
		{"macOS", PlatformKnown, MacOS, "macOS"},
		{"iOSApplicationExtension", PlatformKnown, IOSAppExtension, "iOSApplicationExtension"},
		{"HAL9000", PlatformUnknown, 0, "HAL9000"},
		{"ios", PlatformUnknown, 0, "ios"},
		{"badPlatform", PlatformUnknown, 0, "badPlatform"},
	}
	for _, tt := range tests {
		p := ParsePlatform(tt.in)
		if p.Kind != tt.kind || p.String() != tt.disp {
			t.Errorf("ParsePlatform(%q) = %v %q", tt.in, p.Kind, p.String())
		}
		if tt.kind == PlatformKnown && p.ID != tt.id {
			t.Errorf("ParsePlatform(%q).ID = %s, want %s", tt.in, p.ID, tt.id)
		}
		if p.IsKnown() != (tt.kind == PlatformKnown) {
			t.Errorf("ParsePlatform(%q).IsKnown() = %v", tt.in, p.IsKnown())
		}
	}
	if p := ParsePlatform("OSX"); p.Name != "OSX" {
		t.Errorf("OSX keeps spelling: %+v", p)
	}
}

func TestPlatformExtensionMapping(t *testing.T) {
	for _, id := range []PlatformID{IOS, MacOS, TvOS, WatchOS} {
		ext := id.AppExtension()
		if !ext.IsAppExtension() || ext.Base() != id {
			t.Errorf("%s <-> %s", id, ext)
		}
		if id.IsAppExtension() {
			t.Errorf("%s reported as extension", id)
		}
	}
	if got := strings.Join(KnownPlatformNames(), ","); got != "iOS,macOS,tvOS,watchOS,iOSApplicationExtension,macOSApplicationExtension,tvOSApplicationExtension,watchOSApplicationExtension" {
		t.Errorf("KnownPlatformNames = %s", got)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		platform   string
		appExt     bool
		deployment string
		want       string
		wantErr    bool
	}{
		{platform: "macos", want: "macOS"},
		{platform: "ios", deployment: "8.0", want: "iOS 8.0"},
		{platform: "iOS", appExt: true, want: "iOSApplicationExtension"},
		{platform: "tvOSApplicationExtension", deployment: "10", want: "tvOSApplicationExtension 10"},
		{platform: "tvOSApplicationExtension", want: "tvOSApplicationExtension"},
		{platform: "ios", deployment: "9.0", want: "iOS 9.0"},
		{platform: "amiga", wantErr: true},
		{platform: "macOS", deployment: "ten", wantErr: true},
		{platform: "macOS", deployment: "1.x", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseTarget(tc.platform, tc.appExt, tc.deployment)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTarget(%q, %q) expected error", tc.platform, tc.deployment)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTarget(%q): %v", tc.platform, err)
			continue
		}
		if got.Describe() != tc.want {
			t.Errorf("ParseTarget(%q, %v, %q) = %q, want %q", tc.platform, tc.appExt, tc.deployment, got.Describe(), tc.want)
		}
	}
}
