package auth

import (
	"net/http"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid email or password")
	CodeEmailNotFound      = ErrRegistry.Register("EMAIL_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Email not found")
	CodeNotAuthenticated   = ErrRegistry.Register("NOT_AUTHENTICATED", errx.TypeAuthorization, http.StatusUnauthorized, "You are not signed in")
	CodeSessionExpired     = ErrRegistry.Register("SESSION_EXPIRED", errx.TypeAuthorization, http.StatusUnauthorized, "Your session has expired, please sign in again")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeValidation, http.StatusBadRequest, "Invalid access token")
	CodeSessionStore       = ErrRegistry.Register("SESSION_STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Could not persist the session")
)

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrEmailNotFound() *errx.Error {
	return ErrRegistry.New(CodeEmailNotFound)
}

func ErrNotAuthenticated() *errx.Error {
	return ErrRegistry.New(CodeNotAuthenticated)
}

func ErrSessionExpired() *errx.Error {
	return ErrRegistry.New(CodeSessionExpired)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrSessionStore(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeSessionStore, err)
}
