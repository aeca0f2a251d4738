package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error independently of its code
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// ErrorCode is a fully qualified code, e.g. "POSITION_NOT_FOUND"
type ErrorCode string

func (c ErrorCode) String() string { return string(c) }

// Error is the error value shared by every package of the module
type Error struct {
	Type       Type           `json:"type"`
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a single key/value to the error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges details into the error
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithCause sets the underlying error
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithMessage replaces the human readable message
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

// ToHTTPResponse renders the error as a JSON-friendly map
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"message": e.Message,
		"type":    e.Type,
		"code":    e.Code,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// ============================================================================
// Registry
// ============================================================================

type definition struct {
	typ        Type
	httpStatus int
	message    string
}

// Registry namespaces error codes for a domain
type Registry struct {
	prefix string
	mu     sync.RWMutex
	codes  map[ErrorCode]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[ErrorCode]definition),
	}
}

// Register declares a code and returns its qualified form
func (r *Registry) Register(code string, typ Type, httpStatus int, message string) ErrorCode {
	full := ErrorCode(r.prefix + "_" + code)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[full] = definition{typ: typ, httpStatus: httpStatus, message: message}
	return full
}

// New builds an error from a registered code
func (r *Registry) New(code ErrorCode) *Error {
	r.mu.RLock()
	def, ok := r.codes[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Type:       TypeInternal,
			Code:       code,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	return &Error{
		Type:       def.typ,
		Code:       code,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause builds an error from a registered code wrapping cause
func (r *Registry) NewWithCause(code ErrorCode, cause error) *Error {
	return r.New(code).WithCause(cause)
}

// ============================================================================
// Package helpers
// ============================================================================

var typeStatus = map[Type]int{
	TypeValidation:    http.StatusBadRequest,
	TypeNotFound:      http.StatusNotFound,
	TypeConflict:      http.StatusConflict,
	TypeAuthorization: http.StatusForbidden,
	TypeBusiness:      http.StatusUnprocessableEntity,
	TypeInternal:      http.StatusInternalServerError,
	TypeExternal:      http.StatusBadGateway,
}

// New creates an ad-hoc error of the given type
func New(message string, typ Type) *Error {
	return &Error{
		Type:       typ,
		Code:       ErrorCode(typ),
		Message:    message,
		HTTPStatus: typeStatus[typ],
	}
}

// Wrap wraps err with a message and type. Wrapping an *Error keeps its code.
func Wrap(err error, message string, typ Type) *Error {
	if err == nil {
		return nil
	}
	wrapped := New(message, typ).WithCause(err)
	var inner *Error
	if errors.As(err, &inner) {
		wrapped.Code = inner.Code
		wrapped.HTTPStatus = inner.HTTPStatus
	}
	return wrapped
}

// As extracts the first *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType reports whether any *Error in the chain has the given type
func IsType(err error, typ Type) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Type == typ {
			return true
		}
		err = e.Cause
	}
	return false
}

// IsCode reports whether any *Error in the chain has the given code
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}
