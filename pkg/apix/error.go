package apix

import (
	"net/http"
	"strings"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("API")

var (
	CodeTransportFailed = ErrRegistry.Register("TRANSPORT_FAILED", errx.TypeExternal, http.StatusServiceUnavailable, "Could not reach the server")
	CodeDecodeFailed    = ErrRegistry.Register("DECODE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Unexpected response from the server")
	CodeBadRequest      = ErrRegistry.Register("BAD_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Bad request")
	CodeUnauthorized    = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Unauthorized")
	CodeForbidden       = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Forbidden")
	CodeNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Not found")
	CodeConflict        = ErrRegistry.Register("CONFLICT", errx.TypeConflict, http.StatusConflict, "Conflict")
	CodeUnprocessable   = ErrRegistry.Register("UNPROCESSABLE", errx.TypeBusiness, http.StatusUnprocessableEntity, "Request could not be processed")
	CodeRateLimited     = ErrRegistry.Register("RATE_LIMITED", errx.TypeExternal, http.StatusTooManyRequests, "Too many requests")
	CodeServerError     = ErrRegistry.Register("SERVER_ERROR", errx.TypeExternal, http.StatusInternalServerError, "Server error")
	CodeRequestFailed   = ErrRegistry.Register("REQUEST_FAILED", errx.TypeExternal, http.StatusBadRequest, "Request failed")
)

// serverError is the error body the API sends back
type serverError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (s *serverError) text() string {
	if s == nil {
		return ""
	}
	if s.Message != "" {
		return s.Message
	}
	return s.Error
}

func codeForStatus(status int) errx.ErrorCode {
	switch {
	case status == http.StatusBadRequest:
		return CodeBadRequest
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusForbidden:
		return CodeForbidden
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusConflict:
		return CodeConflict
	case status == http.StatusUnprocessableEntity:
		return CodeUnprocessable
	case status == http.StatusTooManyRequests:
		return CodeRateLimited
	case status >= 500:
		return CodeServerError
	default:
		return CodeRequestFailed
	}
}

// newHTTPError normalizes a non-2xx response
func newHTTPError(method, path string, status int, body *serverError, requestID string) *errx.Error {
	e := ErrRegistry.New(codeForStatus(status))
	e.HTTPStatus = status

	msg := strings.TrimSpace(body.text())
	if msg != "" {
		e.Message = msg
	} else if text := http.StatusText(status); text != "" {
		e.Message = text
	}

	return e.
		WithDetail("status", status).
		WithDetail("method", method).
		WithDetail("path", path).
		WithDetail("request_id", requestID).
		WithDetail("server_message", msg)
}

// newDecodeError reports a successful status whose body did not decode
func newDecodeError(method, path string, status int, cause error, requestID string) *errx.Error {
	return ErrRegistry.NewWithCause(CodeDecodeFailed, cause).
		WithDetail("status", status).
		WithDetail("method", method).
		WithDetail("path", path).
		WithDetail("request_id", requestID)
}

func newTransportError(method, path string, cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeTransportFailed, cause).
		WithDetail("method", method).
		WithDetail("path", path)
}

// StatusCode returns the HTTP status carried by err, or 0 when the request
// never produced a response.
func StatusCode(err error) int {
	e, ok := errx.As(err)
	if !ok || e.Code == CodeTransportFailed {
		return 0
	}
	if s, ok := e.Details["status"].(int); ok {
		return s
	}
	return 0
}

// Message picks the text shown to the user: the server message when one was
// sent, the message of a local (non-transport) error, or fallback.
func Message(err error, fallback string) string {
	outer, ok := errx.As(err)
	if !ok {
		return fallback
	}

	fromAPI := false
	for cur := error(outer); cur != nil; {
		e, ok := errx.As(cur)
		if !ok {
			break
		}
		if msg, _ := e.Details["server_message"].(string); msg != "" {
			return msg
		}
		if strings.HasPrefix(e.Code.String(), "API_") {
			fromAPI = true
		}
		cur = e.Cause
	}

	if !fromAPI && outer.Message != "" {
		return outer.Message
	}
	return fallback
}
