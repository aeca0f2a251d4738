package resume

import (
	"net/http"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

var (
	CodeResumeNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeEmptyFile      = ErrRegistry.Register("EMPTY_FILE", errx.TypeBusiness, http.StatusBadRequest, "File is empty")
	CodeUnreadablePDF  = ErrRegistry.Register("UNREADABLE_PDF", errx.TypeBusiness, http.StatusBadRequest, "PDF could not be read")
	CodeNoFiles        = ErrRegistry.Register("NO_FILES", errx.TypeBusiness, http.StatusBadRequest, "Select at least one file")
	CodeUploadFailed   = ErrRegistry.Register("UPLOAD_FAILED", errx.TypeExternal, http.StatusBadGateway, "Some resumes could not be uploaded")
)

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrEmptyFile(name string) *errx.Error {
	return ErrRegistry.New(CodeEmptyFile).WithDetail("file", name)
}

func ErrUnreadablePDF(name string, cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeUnreadablePDF, cause).WithDetail("file", name)
}

func ErrNoFiles() *errx.Error {
	return ErrRegistry.New(CodeNoFiles)
}

func ErrUploadFailed(failed, total int, cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeUploadFailed, cause).
		WithDetail("failed", failed).
		WithDetail("total", total)
}
