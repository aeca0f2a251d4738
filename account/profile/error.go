package profile

import (
	"net/http"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("PROFILE")

var (
	CodeBadImage      = ErrRegistry.Register("BAD_IMAGE", errx.TypeValidation, http.StatusBadRequest, "The attached file is not a supported image")
	CodeWrongPassword = ErrRegistry.Register("WRONG_PASSWORD", errx.TypeValidation, http.StatusBadRequest, "Current password is incorrect")
)

func ErrBadImage(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeBadImage, err)
}

func ErrWrongPassword() *errx.Error {
	return ErrRegistry.New(CodeWrongPassword)
}
