package authinfra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/fsx"
)

// FileTokenStore writes the session as JSON to one file
type FileTokenStore struct {
	fs   fsx.FileSystem
	path string
}

var _ auth.TokenStore = (*FileTokenStore)(nil)

func NewFileTokenStore(fs fsx.FileSystem, path string) *FileTokenStore {
	return &FileTokenStore{fs: fs, path: path}
}

func (f *FileTokenStore) Load(ctx context.Context) (*auth.Session, error) {
	data, err := f.fs.ReadFile(ctx, f.path)
	if err != nil {
		if errx.IsCode(err, fsx.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var s auth.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", f.path, err)
	}
	if s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

func (f *FileTokenStore) Save(ctx context.Context, s *auth.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return f.fs.WriteFile(ctx, f.path, data)
}

func (f *FileTokenStore) Clear(ctx context.Context) error {
	return f.fs.DeleteFile(ctx, f.path)
}
