package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem implements Provider against the real filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates an OS-backed provider.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Walk traverses root with filepath.WalkDir, which visits entries in
// lexical order.
func (p *OSFileSystem) Walk(root string, fn WalkFunc) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(path, false, err)
		}
		return fn(path, entry.IsDir(), nil)
	})
}

// ReadFile returns the raw content of the file at path.
func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

var _ Provider = (*OSFileSystem)(nil)
