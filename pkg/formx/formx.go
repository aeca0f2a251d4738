package formx

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/go-playground/validator/v10"
)

var ErrRegistry = errx.NewRegistry("FORM")

var CodeInvalid = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Invalid form")

// symbolPattern is the special-character class accepted in passwords
var symbolPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// Messages lets a form override the default message of a field rule.
// Keys are "<jsonField>.<tag>", e.g. "confirmPassword.eqfield".
type Messages interface {
	Messages() map[string]string
}

// Result is the outcome of validating one form
type Result struct {
	Valid bool
	// FieldErrors maps the json field name to the first failing message
	FieldErrors map[string]string
	// order keeps fields in declaration order
	order []string
}

// Err returns nil for a valid form, otherwise a Validation error whose
// message is the first field error and whose details hold all of them.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	e := ErrRegistry.New(CodeInvalid)
	if len(r.order) > 0 {
		e.Message = r.FieldErrors[r.order[0]]
	}
	fields := make(map[string]any, len(r.FieldErrors))
	for k, v := range r.FieldErrors {
		fields[k] = v
	}
	return e.WithDetail("fields", fields)
}

// Field returns the message of one field, or "" when it is valid
func (r Result) Field(name string) string {
	return r.FieldErrors[name]
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("hasletter", func(fl validator.FieldLevel) bool {
			return strings.IndexFunc(fl.Field().String(), isASCIILetter) >= 0
		})
		_ = v.RegisterValidation("hasdigit", func(fl validator.FieldLevel) bool {
			return strings.IndexFunc(fl.Field().String(), isASCIIDigit) >= 0
		})
		_ = v.RegisterValidation("hassymbol", func(fl validator.FieldLevel) bool {
			return symbolPattern.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Validate checks form against its `validate` struct tags
func Validate(form any) Result {
	res := Result{Valid: true, FieldErrors: map[string]string{}}

	err := instance().Struct(form)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Valid = false
		res.FieldErrors["_"] = err.Error()
		res.order = []string{"_"}
		return res
	}

	var overrides map[string]string
	if m, ok := form.(Messages); ok {
		overrides = m.Messages()
	}

	res.Valid = false
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := res.FieldErrors[field]; seen {
			continue
		}
		msg, ok := overrides[field+"."+fe.Tag()]
		if !ok {
			msg = defaultMessage(fe)
		}
		res.FieldErrors[field] = msg
		res.order = append(res.order, field)
	}
	return res
}

func defaultMessage(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "eqfield":
		return "Passwords don't match"
	case "hasletter":
		return label + " must contain at least one letter"
	case "hasdigit":
		return label + " must contain at least one number"
	case "hassymbol":
		return label + " must contain at least one special character"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	}
	return label + " is invalid"
}

// humanize turns "confirmPassword" into "Confirm password"
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
