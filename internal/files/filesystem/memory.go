package filesystem

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// MemoryFileSystem implements Provider over an in-memory path map.
// Intended for tests; paths use forward slashes regardless of platform.
type MemoryFileSystem struct {
	files map[string]string
}

// NewMemoryFileSystem creates an empty in-memory provider.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string]string)}
}

// AddFile registers content at the given slash-separated path. Parent
// directories are implied; they need no explicit entries.
func (m *MemoryFileSystem) AddFile(filePath, content string) {
	m.files[path.Clean(filePath)] = content
}

// Walk visits every implied directory and file under root in lexical
// order.
func (m *MemoryFileSystem) Walk(root string, fn WalkFunc) error {
	root = path.Clean(root)

	dirs := map[string]struct{}{root: {}}
	var filePaths []string
	for p := range m.files {
		if !m.under(root, p) {
			continue
		}
		filePaths = append(filePaths, p)
		for dir := path.Dir(p); m.under(root, dir) && dir != root; dir = path.Dir(dir) {
			dirs[dir] = struct{}{}
		}
	}
	if len(filePaths) == 0 {
		return fn(root, false, fmt.Errorf("directory not found: %s", root))
	}

	entries := make([]string, 0, len(filePaths)+len(dirs))
	entries = append(entries, filePaths...)
	for dir := range dirs {
		entries = append(entries, dir)
	}
	sort.Strings(entries)

	for _, p := range entries {
		_, isDir := dirs[p]
		if err := fn(p, isDir, nil); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns the registered content for path, or an error when no
// file was added there.
func (m *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, ok := m.files[path.Clean(filePath)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	return []byte(content), nil
}

func (m *MemoryFileSystem) under(root, p string) bool {
	return p == root || strings.HasPrefix(p, root+"/")
}

var _ Provider = (*MemoryFileSystem)(nil)
