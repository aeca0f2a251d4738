package resume

import (
	"mime"
	"path/filepath"
	"strings"
)

// File is a resume file selected for upload
type File struct {
	Name        string `json:"name" validate:"required"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// DetectContentType fills ContentType from the extension when it is empty
func (f File) DetectContentType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// IsPDF reports whether the file claims to be a PDF
func (f File) IsPDF() bool {
	return strings.EqualFold(filepath.Ext(f.Name), ".pdf") || f.DetectContentType() == "application/pdf"
}
