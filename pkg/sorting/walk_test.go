package sorting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested", "deep"), 0755))
	files := []string{
		filepath.Join(root, "b.pdf"),
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "nested", "c.docx"),
		filepath.Join(root, "nested", "deep", "d.jpg"),
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("x"), 0644))
	}
	// Скрытые файлы пропускаются
	require.NoError(t, os.WriteFile(filepath.Join(root, ".DS_Store"), []byte("x"), 0644))

	got, err := CollectFiles(root)
	require.NoError(t, err)

	// Лексикографический порядок обхода, без фильтра по расширению
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.pdf"),
		filepath.Join(root, "nested", "c.docx"),
		filepath.Join(root, "nested", "deep", "d.jpg"),
	}, got)
}

func TestCollectFilesEmptyDir(t *testing.T) {
	got, err := CollectFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollectFilesMissingRoot(t *testing.T) {
	// Несуществующий корень — ошибка, а не пустой список
	_, err := CollectFiles(filepath.Join(t.TempDir(), "no-such-dir"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
