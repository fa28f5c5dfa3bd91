package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// SourceExt is the extension of checked source files.
const SourceExt = ".avl"

// CollectSourceFiles expands directories into their *.avl files and returns
// a sorted, duplicate-free list. Files named explicitly are kept whatever
// their extension.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				// скрытые каталоги (.git и т.п.) пропускаем
				if path != p && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == SourceExt {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// commonBase picks the directory diagnostics paths are shown relative to.
func commonBase(paths []string) string {
	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil {
			if info.IsDir() {
				return paths[0]
			}
			return filepath.Dir(paths[0])
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
