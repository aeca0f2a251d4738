package fsxlocal

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/aikyuu/pkg/fsx"
)

// LocalFileSystem stores files below a root directory
type LocalFileSystem struct {
	root string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

func NewLocalFileSystem(root string) *LocalFileSystem {
	return &LocalFileSystem{root: root}
}

func (l *LocalFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (l *LocalFileSystem) Location(p string) string {
	return l.resolve(p)
}

// resolve maps a slash path below root, never escaping it
func (l *LocalFileSystem) resolve(p string) string {
	clean := path.Clean("/" + strings.TrimPrefix(p, "/"))
	return filepath.Join(l.root, filepath.FromSlash(clean))
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full := l.resolve(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsx.ErrRegistry.NewWithCause(fsx.CodeWriteFailed, err).WithDetail("path", p)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fsx.ErrRegistry.NewWithCause(fsx.CodeWriteFailed, err).WithDetail("path", p)
	}
	return nil
}

func (l *LocalFileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full := l.resolve(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsx.ErrRegistry.NewWithCause(fsx.CodeWriteFailed, err).WithDetail("path", p)
	}
	f, err := os.Create(full)
	if err != nil {
		return fsx.ErrRegistry.NewWithCause(fsx.CodeWriteFailed, err).WithDetail("path", p)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fsx.ErrRegistry.NewWithCause(fsx.CodeWriteFailed, err).WithDetail("path", p)
	}
	return nil
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.resolve(p))
	if err != nil {
		return nil, readError(p, err)
	}
	return data, nil
}

func (l *LocalFileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.resolve(p))
	if err != nil {
		return nil, readError(p, err)
	}
	return f, nil
}

func (l *LocalFileSystem) Exists(ctx context.Context, p string) (bool, error) {
	_, err := os.Stat(l.resolve(p))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, readError(p, err)
}

func (l *LocalFileSystem) DeleteFile(ctx context.Context, p string) error {
	err := os.Remove(l.resolve(p))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fsx.ErrRegistry.NewWithCause(fsx.CodeWriteFailed, err).WithDetail("path", p)
	}
	return nil
}

func readError(p string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fsx.ErrRegistry.NewWithCause(fsx.CodeNotFound, err).WithDetail("path", p)
	}
	return fsx.ErrRegistry.NewWithCause(fsx.CodeReadFailed, err).WithDetail("path", p)
}
