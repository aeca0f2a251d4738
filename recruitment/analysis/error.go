package analysis

import (
	"net/http"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("ANALYSIS")

var (
	CodeNoCriteria       = ErrRegistry.Register("NO_CRITERIA", errx.TypeBusiness, http.StatusUnprocessableEntity, "Please add at least one criteria before starting analysis.")
	CodeNoResumes        = ErrRegistry.Register("NO_RESUMES", errx.TypeBusiness, http.StatusUnprocessableEntity, "Please upload at least one resume before starting analysis.")
	CodeAlreadyCompleted = ErrRegistry.Register("ALREADY_COMPLETED", errx.TypeBusiness, http.StatusConflict, "Analysis has already completed")
	CodeTimeout          = ErrRegistry.Register("TIMEOUT", errx.TypeExternal, http.StatusGatewayTimeout, "Analysis did not complete in time")
)

func ErrNoCriteria() *errx.Error {
	return ErrRegistry.New(CodeNoCriteria)
}

func ErrNoResumes() *errx.Error {
	return ErrRegistry.New(CodeNoResumes)
}

func ErrAlreadyCompleted() *errx.Error {
	return ErrRegistry.New(CodeAlreadyCompleted)
}

func ErrAnalysisTimeout(attempts int) *errx.Error {
	return ErrRegistry.New(CodeTimeout).WithDetail("attempts", attempts)
}
