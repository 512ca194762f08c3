package formats

import (
	"path/filepath"
	"strings"
)

// File is a resolved image path with its cached extension.
type File struct {
	path string
	ext  string
}

// NewFile resolves path to an absolute, cleaned path. If the absolute form
// cannot be determined the cleaned input is kept.
func NewFile(path string) File {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return File{path: abs, ext: Ext(abs)}
}

// Path returns the absolute path.
func (f File) Path() string { return f.path }

// Ext returns the lowercase extension without its leading dot.
func (f File) Ext() string { return f.ext }

// Dir returns the directory containing the file.
func (f File) Dir() string { return filepath.Dir(f.path) }

// Base returns the file name without its extension.
func (f File) Base() string {
	name := filepath.Base(f.path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// IsVector reports whether the file is an SVG source.
func (f File) IsVector() bool { return f.ext == vectorExt }

// WithExt returns the path of a sibling file sharing the base name with
// the given extension.
func (f File) WithExt(ext string) string {
	return filepath.Join(f.Dir(), f.Base()+"."+ext)
}

func (f File) String() string { return f.path }
