package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"availc/internal/avail"
)

// DefaultMaxDiagnostics caps a bag when neither config nor flags set it.
const DefaultMaxDiagnostics = 100

// ErrInvalidConfig marks every avail.toml validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError points at the offending file and key.
type ConfigError struct {
	Path string
	Key  string
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return e.Path + ": " + e.Msg
	}
	return e.Path + ": " + e.Key + ": " + e.Msg
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Config is the resolved content of avail.toml.
type Config struct {
	// Path is empty when no file was found and defaults apply.
	Path string
	Root string

	Platform     avail.PlatformID
	AppExtension bool
	Deployment   map[avail.PlatformID]avail.VersionTuple

	MaxDiagnostics   int
	WarningsAsErrors bool
	// Imports are snapshot paths resolved against Root.
	Imports []string
}

// Default returns the configuration used without avail.toml.
func Default() Config {
	return Config{
		Platform:       avail.MacOS,
		Deployment:     map[avail.PlatformID]avail.VersionTuple{},
		MaxDiagnostics: DefaultMaxDiagnostics,
	}
}

// Target builds the check target for the configured platform.
func (c Config) Target() avail.Target {
	return c.TargetFor(c.Platform, c.AppExtension)
}

// TargetFor builds a target for another platform, keeping the configured
// deployment version of that platform.
func (c Config) TargetFor(platform avail.PlatformID, appExtension bool) avail.Target {
	base := platform.Base()
	return avail.Target{
		Platform:     base,
		AppExtension: appExtension || platform.IsAppExtension(),
		Deployment:   c.Deployment[base],
	}
}

type rawConfig struct {
	Target struct {
		Platform     string `toml:"platform"`
		AppExtension bool   `toml:"app_extension"`
	} `toml:"target"`
	Deployment map[string]string `toml:"deployment"`
	Check      struct {
		MaxDiagnostics   int      `toml:"max_diagnostics"`
		WarningsAsErrors bool     `toml:"warnings_as_errors"`
		Imports          []string `toml:"imports"`
	} `toml:"check"`
}

// Load finds avail.toml above start and decodes it; defaults when absent.
func Load(start string) (Config, error) {
	path, ok, err := FindConfig(start)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadConfig(path)
}

// LoadConfig decodes and validates one avail.toml.
func LoadConfig(path string) (Config, error) {
	var raw rawConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Msg: "failed to parse TOML: " + err.Error()}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, &ConfigError{Path: path, Key: undecoded[0].String(), Msg: "unknown key"}
	}

	cfg := Default()
	cfg.Path = path
	cfg.Root = filepath.Dir(path)

	if meta.IsDefined("target", "platform") {
		id, ok := lookupPlatform(raw.Target.Platform)
		if !ok {
			return Config{}, &ConfigError{Path: path, Key: "target.platform", Msg: fmt.Sprintf("unknown platform %q", raw.Target.Platform)}
		}
		cfg.Platform = id.Base()
		cfg.AppExtension = id.IsAppExtension()
	}
	cfg.AppExtension = cfg.AppExtension || raw.Target.AppExtension

	names := make([]string, 0, len(raw.Deployment))
	for name := range raw.Deployment {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		key := "deployment." + name
		id, ok := lookupPlatform(name)
		if !ok {
			return Config{}, &ConfigError{Path: path, Key: key, Msg: fmt.Sprintf("unknown platform %q", name)}
		}
		v, err := avail.ParseVersion(raw.Deployment[name])
		if err != nil {
			return Config{}, &ConfigError{Path: path, Key: key, Msg: fmt.Sprintf("invalid version %q", raw.Deployment[name])}
		}
		cfg.Deployment[id.Base()] = v
	}

	if meta.IsDefined("check", "max_diagnostics") {
		if raw.Check.MaxDiagnostics < 0 {
			return Config{}, &ConfigError{Path: path, Key: "check.max_diagnostics", Msg: "must not be negative"}
		}
		cfg.MaxDiagnostics = raw.Check.MaxDiagnostics
	}
	cfg.WarningsAsErrors = raw.Check.WarningsAsErrors
	for _, imp := range raw.Check.Imports {
		imp = strings.TrimSpace(imp)
		if imp == "" {
			return Config{}, &ConfigError{Path: path, Key: "check.imports", Msg: "empty import path"}
		}
		if !filepath.IsAbs(imp) {
			imp = filepath.Join(cfg.Root, imp)
		}
		cfg.Imports = append(cfg.Imports, imp)
	}
	return cfg, nil
}

// lookupPlatform matches config spellings case-insensitively.
func lookupPlatform(name string) (avail.PlatformID, bool) {
	t, err := avail.ParseTarget(name, false, "")
	if err != nil {
		return avail.NoPlatform, false
	}
	if t.AppExtension {
		return t.Platform.AppExtension(), true
	}
	return t.Platform, true
}
