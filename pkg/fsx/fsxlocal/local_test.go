package fsxlocal

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileSystemRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := NewLocalFileSystem(t.TempDir())

	p := fs.Join("exports", "pos-1", "report.csv")
	require.NoError(t, fs.WriteFile(ctx, p, []byte("a,b\n")))

	ok, err := fs.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := fs.ReadFile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))

	require.NoError(t, fs.WriteFileStream(ctx, "cv.pdf", bytes.NewReader([]byte("%PDF"))))
	rc, err := fs.ReadFileStream(ctx, "cv.pdf")
	require.NoError(t, err)
	got, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF", string(got))

	require.NoError(t, fs.DeleteFile(ctx, p))
	require.NoError(t, fs.DeleteFile(ctx, p))

	_, err = fs.ReadFile(ctx, p)
	assert.True(t, errx.IsCode(err, fsx.CodeNotFound))
}

func TestLocalFileSystemStaysBelowRoot(t *testing.T) {
	root := t.TempDir()
	fs := NewLocalFileSystem(root)

	loc := fs.Location("../../etc/passwd")
	assert.True(t, strings.HasPrefix(loc, filepath.Clean(root)))
}
