package report

import (
	"net/http"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("REPORT")

var (
	CodeUnsupportedFormat = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported export format")
	CodeNotCompleted      = ErrRegistry.Register("NOT_COMPLETED", errx.TypeBusiness, http.StatusConflict, "Analysis has not completed yet")
	CodeEncodeFailed      = ErrRegistry.Register("ENCODE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Could not build the export file")
)

func ErrUnsupportedFormat(format string) *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat).WithDetail("format", format)
}

func ErrNotCompleted() *errx.Error {
	return ErrRegistry.New(CodeNotCompleted)
}

func ErrEncodeFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeEncodeFailed, err)
}
