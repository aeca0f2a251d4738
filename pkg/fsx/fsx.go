package fsx

import (
	"context"
	"io"
	"net/http"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("FS")

var (
	CodeNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeWriteFailed = ErrRegistry.Register("WRITE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Could not write file")
	CodeReadFailed  = ErrRegistry.Register("READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Could not read file")
)

// FileReader reads files by path
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// FileWriter writes and removes files by path
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is a flat, slash-separated file store (local dir or bucket)
type FileSystem interface {
	FileReader
	FileWriter
	Join(elem ...string) string
	// Location returns a human readable location of path, e.g. an s3:// URL
	Location(path string) string
}
