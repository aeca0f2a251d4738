package position

import (
	"net/http"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("POSITION")

var (
	CodePositionNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Position not found")
	CodeMissingID        = ErrRegistry.Register("MISSING_ID", errx.TypeValidation, http.StatusBadRequest, "Position id is required")
	CodeStatusRegressed  = ErrRegistry.Register("STATUS_REGRESSED", errx.TypeBusiness, http.StatusConflict, "Position status moved backwards")
)

func ErrPositionNotFound() *errx.Error {
	return ErrRegistry.New(CodePositionNotFound)
}

func ErrMissingID() *errx.Error {
	return ErrRegistry.New(CodeMissingID)
}

func ErrStatusRegressed(from, to Status) *errx.Error {
	return ErrRegistry.New(CodeStatusRegressed).
		WithDetail("from", from).
		WithDetail("to", to)
}
