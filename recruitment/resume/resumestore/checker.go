package resumestore

import (
	"github.com/Abraxas-365/aikyuu/internal/pdf"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
)

// PDFChecker rejects empty files and PDFs that cannot be opened or have no
// pages. Other formats are left to the server.
type PDFChecker struct{}

var _ resume.Checker = PDFChecker{}

func (PDFChecker) Check(file resume.File) error {
	if len(file.Data) == 0 {
		return resume.ErrEmptyFile(file.Name)
	}
	if !file.IsPDF() && !pdf.IsPDF(file.Data) {
		return nil
	}
	if _, err := pdf.Inspect(file.Data); err != nil {
		return resume.ErrUnreadablePDF(file.Name, err)
	}
	return nil
}
