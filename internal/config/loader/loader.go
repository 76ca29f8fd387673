// Package loader reads configuration sources into nested maps.
//
// Files are parsed as TOML or YAML depending on their extension; environment
// variables are mapped onto dotted setting paths. Sources are combined with
// DeepMerge, later sources winning.
package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads one configuration source.
type Loader interface {
	// Load returns the source as a nested map.
	// It returns nil, nil if the source doesn't exist.
	Load() (map[string]any, error)
}

// FileSystem abstracts file access for tests.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem on the real file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ForPath returns a file loader chosen by the extension of path.
// ".yaml" and ".yml" select YAML; anything else is read as TOML.
func ForPath(fsys FileSystem, path string) Loader {
	if fsys == nil {
		fsys = OSFS{}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return &YAMLLoader{fs: fsys, path: path}
	default:
		return &TOMLLoader{fs: fsys, path: path}
	}
}

func readIfExists(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// DeepMerge recursively merges src into dst and returns dst.
// Maps are merged; any other src value replaces the dst value.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
