package criteria

import (
	"net/http"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CRITERIA")

var (
	CodeCriteriaNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Criteria not found")
	CodeMissingPosition  = ErrRegistry.Register("MISSING_POSITION", errx.TypeValidation, http.StatusBadRequest, "Position id is required")
)

func ErrCriteriaNotFound() *errx.Error {
	return ErrRegistry.New(CodeCriteriaNotFound)
}

func ErrMissingPosition() *errx.Error {
	return ErrRegistry.New(CodeMissingPosition)
}
