package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"availc/internal/avail"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFull(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[target]
platform = "ios"
app_extension = true

[deployment]
macOS = "10.12"
iOS = "9.0"

[check]
max_diagnostics = 7
warnings_as_errors = true
imports = ["deps/core.availpack"]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Platform != avail.IOS || !cfg.AppExtension {
		t.Errorf("platform = %v ext=%v", cfg.Platform, cfg.AppExtension)
	}
	if cfg.MaxDiagnostics != 7 || !cfg.WarningsAsErrors {
		t.Errorf("check section = %+v", cfg)
	}
	if want := filepath.Join(dir, "deps", "core.availpack"); len(cfg.Imports) != 1 || cfg.Imports[0] != want {
		t.Errorf("imports = %v, want [%s]", cfg.Imports, want)
	}

	target := cfg.Target()
	if target.Describe() != "iOSApplicationExtension 9.0" {
		t.Errorf("target = %q", target.Describe())
	}
	mac := cfg.TargetFor(avail.MacOS, false)
	if mac.Describe() != "macOS 10.12" {
		t.Errorf("macOS target = %q", mac.Describe())
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Platform != avail.MacOS || cfg.MaxDiagnostics != DefaultMaxDiagnostics {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Target().Deployment.IsSet() {
		t.Error("default deployment must be unset")
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[target]\nplatform = \"tvOS\"\n")
	nested := filepath.Join(root, "src", "ui")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(nested, "view.avl")
	if err := os.WriteFile(file, []byte("fn f() {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Platform != avail.TvOS || cfg.Root != root {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad platform", "[target]\nplatform = \"amiga\"\n", `target.platform: unknown platform "amiga"`},
		{"bad version", "[deployment]\nmacOS = \"ten\"\n", `deployment.macOS: invalid version "ten"`},
		{"bad deployment platform", "[deployment]\nbeOS = \"1.0\"\n", `deployment.beOS: unknown platform "beOS"`},
		{"unknown key", "[check]\nstrict = true\n", "check.strict: unknown key"},
		{"negative max", "[check]\nmax_diagnostics = -1\n", "check.max_diagnostics: must not be negative"},
		{"syntax", "[target\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
			if !strings.HasPrefix(err.Error(), path) || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want path prefix and %q", err, tt.want)
			}
		})
	}
}

func TestCombine(t *testing.T) {
	var a, b Digest
	a[0], b[0] = 1, 2
	if Combine(a, b) == Combine(b, a) {
		t.Error("import order must matter")
	}
	if Combine(a).IsZero() || !(Digest{}).IsZero() {
		t.Error("IsZero mismatch")
	}
}
