// Package filesystem abstracts the file operations the SQL source scanner
// needs: recursive directory traversal and whole-file reads. The OS
// implementation backs production use; the in-memory implementation backs
// tests without touching disk.
package filesystem

// WalkFunc is called once per entry during a Walk. A non-nil err reports
// a traversal failure for that entry; returning an error stops the walk.
type WalkFunc func(path string, isDir bool, err error) error

// Provider supplies the file operations the scanner runs against.
type Provider interface {
	// Walk traverses the tree rooted at root, calling fn for every file
	// and directory in deterministic (lexical) order.
	Walk(root string, fn WalkFunc) error

	// ReadFile returns the raw content of the file at path.
	ReadFile(path string) ([]byte, error)
}
