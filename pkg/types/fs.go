package types

import "io/fs"

// FS is the filesystem surface the renderer, registry and bundled
// extractor work against. Production code uses the OS; tests use an
// in-memory afero filesystem.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	Remove(name string) error
	RemoveAll(path string) error
}
