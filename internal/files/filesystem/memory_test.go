package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_WalkOrderAndDirs(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("views/b/two.sql", "select 2")
	m.AddFile("views/a/one.sql", "select 1")
	m.AddFile("views/readme.txt", "docs")

	var paths []string
	var dirs []string
	err := m.Walk("views", func(path string, isDir bool, err error) error {
		require.NoError(t, err)
		if isDir {
			dirs = append(dirs, path)
		} else {
			paths = append(paths, path)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"views/a/one.sql", "views/b/two.sql", "views/readme.txt"}, paths)
	assert.Equal(t, []string{"views", "views/a", "views/b"}, dirs)
}

func TestMemoryFileSystem_WalkMissingRoot(t *testing.T) {
	m := NewMemoryFileSystem()

	err := m.Walk("nowhere", func(_ string, _ bool, err error) error {
		return err
	})
	assert.ErrorContains(t, err, "directory not found")
}

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("dir/view.sql", "create view x as select 1")

	content, err := m.ReadFile("dir/view.sql")
	require.NoError(t, err)
	assert.Equal(t, "create view x as select 1", string(content))

	_, err = m.ReadFile("dir/missing.sql")
	assert.ErrorContains(t, err, "file not found")
}
