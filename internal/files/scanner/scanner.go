// Package scanner discovers SQL source files under a set of directory
// roots and reads their contents for graph construction.
package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roomview-sql/roomview/internal/files/filesystem"
	"github.com/roomview-sql/roomview/pkg/roomview"
)

// Scanner collects .sql files (case-insensitive extension match) from
// directory trees. Any read failure aborts the whole scan: the dependency
// graph must be built from the complete corpus or not at all.
type Scanner struct {
	fsProvider filesystem.Provider
}

// NewScanner creates a scanner backed by the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider,
// primarily for tests with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.Provider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ScanDirectories recursively collects every .sql file under each root,
// in deterministic order. Roots are scanned in the order given; files
// within a root in the provider's lexical walk order.
func (s *Scanner) ScanDirectories(roots []string) ([]roomview.SourceFile, error) {
	var sources []roomview.SourceFile

	for _, root := range roots {
		err := s.fsProvider.Walk(root, func(path string, isDir bool, err error) error {
			if err != nil {
				return fmt.Errorf("walking %s: %w", root, err)
			}
			if isDir || !isSQLFile(path) {
				return nil
			}
			source, err := s.ReadSource(path)
			if err != nil {
				return err
			}
			sources = append(sources, source)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

// ReadSource reads one file into a SourceFile record.
func (s *Scanner) ReadSource(path string) (roomview.SourceFile, error) {
	content, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return roomview.SourceFile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return roomview.SourceFile{Path: path, Content: string(content)}, nil
}

func isSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}
