package testutil

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/scaffold/pkg/types"
)

// FaultyFS wraps a types.FS and fails writes to selected paths
type FaultyFS struct {
	types.FS
	errorPaths map[string]error

	// Statistics
	Writes int
	Reads  int
}

// NewFaultyFS wraps fsys with no faults configured
func NewFaultyFS(fsys types.FS) *FaultyFS {
	return &FaultyFS{FS: fsys, errorPaths: make(map[string]error)}
}

// FailOn makes WriteFile and MkdirAll on path return err
func (f *FaultyFS) FailOn(path string, err error) {
	f.errorPaths[filepath.Clean(path)] = err
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err, ok := f.errorPaths[filepath.Clean(name)]; ok {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	f.Writes++
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	f.Reads++
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err, ok := f.errorPaths[filepath.Clean(path)]; ok {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return f.FS.MkdirAll(path, perm)
}
