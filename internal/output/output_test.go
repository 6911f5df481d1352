package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/refdoc/internal/page"
)

func TestPrepare(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Deploy")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "stale"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "objOld.md"), []byte("old"), 0o600))

	require.NoError(t, Prepare(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadOptional(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "_fileEnd.md")
	require.NoError(t, os.WriteFile(path, []byte("footer"), 0o600))

	tests := map[string]struct {
		path     string
		expected string
	}{
		"existing file": {path: path, expected: "footer"},
		"missing file":  {path: filepath.Join(dir, "none.md"), expected: ""},
		"empty path":    {path: "", expected: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			content, err := ReadOptional(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, content)
		})
	}
}

func TestWriter_WritePages(t *testing.T) {
	dir := t.TempDir()
	var pages []page.Page
	for i := range 20 {
		pages = append(pages, page.Page{Name: fmt.Sprintf("objType%d", i), Content: fmt.Sprintf("# Type%d\n", i)})
	}

	w := Writer{Dir: dir, Concurrency: 3}
	require.NoError(t, w.WritePages(context.Background(), pages))

	for i, p := range pages {
		data, err := os.ReadFile(filepath.Join(dir, p.FileName()))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("# Type%d\n", i), string(data))
	}

	t.Run("rewriting is idempotent", func(t *testing.T) {
		require.NoError(t, w.WritePages(context.Background(), pages[:1]))
		data, err := os.ReadFile(filepath.Join(dir, pages[0].FileName()))
		require.NoError(t, err)
		assert.Equal(t, pages[0].Content, string(data))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := w.WritePages(ctx, pages)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("missing directory", func(t *testing.T) {
		w := Writer{Dir: filepath.Join(dir, "none"), Concurrency: 1}
		assert.Error(t, w.WritePages(context.Background(), pages[:1]))
	})
}

func TestWriter_CopyReadMe(t *testing.T) {
	src := filepath.Join(t.TempDir(), "README.md")
	dir := t.TempDir()
	w := Writer{Dir: dir}

	copied, err := w.CopyReadMe(src)
	require.NoError(t, err)
	assert.False(t, copied)

	require.NoError(t, os.WriteFile(src, []byte("# Docs\n"), 0o600))
	copied, err = w.CopyReadMe(src)
	require.NoError(t, err)
	assert.True(t, copied)
	data, err := os.ReadFile(filepath.Join(dir, ReadMeFileName))
	require.NoError(t, err)
	assert.Equal(t, "# Docs\n", string(data))
}
