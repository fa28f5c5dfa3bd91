package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"availc/internal/avail"
	"availc/internal/project"
	"availc/internal/rename"
	"availc/internal/sema"
	"availc/internal/symbols"
)

// SnapshotExt is the extension of availability snapshots.
const SnapshotExt = ".availpack"

// Current schema version - increment when Snapshot format changes
const snapshotSchemaVersion uint16 = 1

// ErrSnapshotSchema is returned for snapshots written by another format version.
var ErrSnapshotSchema = errors.New("unsupported snapshot schema")

// Snapshot is the on-disk availability surface of one file: its top-level
// declarations and their records. Spans are not stored; diagnostics that
// refer to imported declarations point at the use site.
type Snapshot struct {
	Schema  uint16           `msgpack:"schema"`
	Module  string           `msgpack:"module"`
	Source  string           `msgpack:"source"`
	Digest  project.Digest   `msgpack:"digest"`
	Symbols []SnapshotSymbol `msgpack:"symbols"`
}

// SnapshotSymbol is one exported declaration.
type SnapshotSymbol struct {
	Name     string           `msgpack:"name"`
	FullName string           `msgpack:"full_name,omitempty"`
	Kind     uint8            `msgpack:"kind"`
	Labels   []string         `msgpack:"labels,omitempty"`
	Records  []SnapshotRecord `msgpack:"records,omitempty"`
}

// SnapshotRecord is a flattened avail.Record. The rename is stored raw and
// parsed again on load.
type SnapshotRecord struct {
	Platform                string `msgpack:"platform"`
	Unavailable             bool   `msgpack:"unavailable,omitempty"`
	DeprecatedUnconditional bool   `msgpack:"deprecated_unconditional,omitempty"`
	Introduced              string `msgpack:"introduced,omitempty"`
	Deprecated              string `msgpack:"deprecated,omitempty"`
	Obsoleted               string `msgpack:"obsoleted,omitempty"`
	Message                 string `msgpack:"message,omitempty"`
	Renamed                 string `msgpack:"renamed,omitempty"`
	Invalid                 bool   `msgpack:"invalid,omitempty"`
	ShortForm               bool   `msgpack:"short_form,omitempty"`
}

// NewSnapshot captures the exports of a checked file. importDigests are the
// digests of the snapshots the file was checked against.
func NewSnapshot(res *CheckResult, fr *FileResult, importDigests ...project.Digest) *Snapshot {
	file := res.FileSet.Get(fr.FileID)
	snap := &Snapshot{
		Schema: snapshotSchemaVersion,
		Module: moduleName(fr.Path),
		Source: filepath.ToSlash(fr.Path),
	}
	if file != nil {
		snap.Digest = project.Combine(project.Digest(file.Hash), importDigests...)
	}
	for _, sym := range fr.Sema.Exports(fr.Builder, fr.ASTFile) {
		out := SnapshotSymbol{
			Name:     sym.Name,
			FullName: sym.FullName,
			Kind:     uint8(sym.Kind),
			Labels:   sym.Labels,
		}
		for i := range sym.Records {
			out.Records = append(out.Records, recordToSnapshot(&sym.Records[i]))
		}
		snap.Symbols = append(snap.Symbols, out)
	}
	return snap
}

func moduleName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func recordToSnapshot(r *avail.Record) SnapshotRecord {
	platform := r.Platform.Name
	if r.Platform.IsKnown() {
		platform = r.Platform.String()
	}
	return SnapshotRecord{
		Platform:                platform,
		Unavailable:             r.Unavailable,
		DeprecatedUnconditional: r.DeprecatedUnconditional,
		Introduced:              versionString(r.Introduced),
		Deprecated:              versionString(r.Deprecated),
		Obsoleted:               versionString(r.Obsoleted),
		Message:                 r.Message,
		Renamed:                 r.Renamed,
		Invalid:                 r.Invalid,
		ShortForm:               r.ShortForm,
	}
}

func versionString(v avail.VersionTuple) string {
	if !v.IsSet() {
		return ""
	}
	return v.String()
}

func (sr SnapshotRecord) record() (avail.Record, error) {
	rec := avail.Record{
		Platform:                avail.ParsePlatform(sr.Platform),
		Unavailable:             sr.Unavailable,
		DeprecatedUnconditional: sr.DeprecatedUnconditional,
		Message:                 sr.Message,
		Renamed:                 sr.Renamed,
		Invalid:                 sr.Invalid,
		ShortForm:               sr.ShortForm,
	}
	for _, v := range []struct {
		text string
		dst  *avail.VersionTuple
	}{
		{sr.Introduced, &rec.Introduced},
		{sr.Deprecated, &rec.Deprecated},
		{sr.Obsoleted, &rec.Obsoleted},
	} {
		if v.text == "" {
			continue
		}
		parsed, err := avail.ParseVersion(v.text)
		if err != nil {
			return avail.Record{}, err
		}
		*v.dst = parsed
	}
	if sr.Renamed != "" {
		spec, err := rename.Parse(sr.Renamed)
		if err != nil {
			rec.RenameInvalid = true
		} else {
			rec.Rename = spec
		}
	}
	return rec, nil
}

// Import converts the snapshot for sema.
func (s *Snapshot) Import() (sema.Import, error) {
	imp := sema.Import{Module: s.Module, Symbols: make([]sema.ExportedSymbol, 0, len(s.Symbols))}
	for _, sym := range s.Symbols {
		out := sema.ExportedSymbol{
			Name:     sym.Name,
			FullName: sym.FullName,
			Kind:     symbols.SymbolKind(sym.Kind),
			Labels:   sym.Labels,
		}
		for _, sr := range sym.Records {
			rec, err := sr.record()
			if err != nil {
				return sema.Import{}, fmt.Errorf("%s: symbol %q: %w", s.Module, sym.Name, err)
			}
			out.Records = append(out.Records, rec)
		}
		imp.Symbols = append(imp.Symbols, out)
	}
	return imp, nil
}

// WriteSnapshot encodes snap to path atomically: a temp file in the same
// directory is renamed over the target.
func WriteSnapshot(path string, snap *Snapshot) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".availpack-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadSnapshot decodes a snapshot and checks its schema.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%s: decode snapshot: %w", path, err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%s: %w %d (want %d)", path, ErrSnapshotSchema, snap.Schema, snapshotSchemaVersion)
	}
	return &snap, nil
}

// LoadImports reads snapshots in order. Later snapshots shadow earlier ones
// by name, the way sema declares them.
func LoadImports(paths []string) ([]sema.Import, []project.Digest, error) {
	imports := make([]sema.Import, 0, len(paths))
	digests := make([]project.Digest, 0, len(paths))
	for _, p := range paths {
		snap, err := ReadSnapshot(p)
		if err != nil {
			return nil, nil, err
		}
		imp, err := snap.Import()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", p, err)
		}
		imports = append(imports, imp)
		digests = append(digests, snap.Digest)
	}
	return imports, digests, nil
}
