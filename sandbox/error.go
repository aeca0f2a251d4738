package sandbox

import (
	"net/http"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("SANDBOX")

var (
	CodeUnauthorized       = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Authentication required")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid email or password")
	CodeNotVerified        = ErrRegistry.Register("NOT_VERIFIED", errx.TypeAuthorization, http.StatusForbidden, "Please verify your email before signing in")
	CodeEmailTaken         = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusConflict, "An account with this email already exists")
	CodeEmailNotFound      = ErrRegistry.Register("EMAIL_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Email not found")
	CodeInvalidCode        = ErrRegistry.Register("INVALID_CODE", errx.TypeValidation, http.StatusBadRequest, "Invalid verification code")
	CodeWrongPassword      = ErrRegistry.Register("WRONG_PASSWORD", errx.TypeAuthorization, http.StatusUnauthorized, "Current password is incorrect")
	CodeInvalidInput       = ErrRegistry.Register("INVALID_INPUT", errx.TypeValidation, http.StatusBadRequest, "Invalid request")

	CodePositionNotFound = ErrRegistry.Register("POSITION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Position not found")
	CodeCriteriaNotFound = ErrRegistry.Register("CRITERIA_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Criteria not found")
	CodeResumeNotFound   = ErrRegistry.Register("RESUME_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodePlanNotFound     = ErrRegistry.Register("PLAN_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Plan not found")

	CodeNotEditable       = ErrRegistry.Register("NOT_EDITABLE", errx.TypeBusiness, http.StatusConflict, "Position can no longer be changed")
	CodeNoCriteria        = ErrRegistry.Register("NO_CRITERIA", errx.TypeBusiness, http.StatusUnprocessableEntity, "Please add at least one criteria before starting analysis.")
	CodeNoResumes         = ErrRegistry.Register("NO_RESUMES", errx.TypeBusiness, http.StatusUnprocessableEntity, "Please upload at least one resume before starting analysis.")
	CodeAlreadyProcessing = ErrRegistry.Register("ALREADY_PROCESSING", errx.TypeConflict, http.StatusConflict, "Analysis is already running")
	CodeNotEnoughPoints   = ErrRegistry.Register("NOT_ENOUGH_POINTS", errx.TypeBusiness, http.StatusPaymentRequired, "Not enough points to analyze these resumes")
	CodeScoringFailed     = ErrRegistry.Register("SCORING_FAILED", errx.TypeExternal, http.StatusBadGateway, "Resume scoring failed")
)

func ErrUnauthorized() *errx.Error       { return ErrRegistry.New(CodeUnauthorized) }
func ErrInvalidCredentials() *errx.Error { return ErrRegistry.New(CodeInvalidCredentials) }
func ErrNotVerified() *errx.Error        { return ErrRegistry.New(CodeNotVerified) }
func ErrEmailTaken() *errx.Error         { return ErrRegistry.New(CodeEmailTaken) }
func ErrEmailNotFound() *errx.Error      { return ErrRegistry.New(CodeEmailNotFound) }
func ErrInvalidCode() *errx.Error        { return ErrRegistry.New(CodeInvalidCode) }
func ErrWrongPassword() *errx.Error      { return ErrRegistry.New(CodeWrongPassword) }
func ErrPositionNotFound() *errx.Error   { return ErrRegistry.New(CodePositionNotFound) }
func ErrCriteriaNotFound() *errx.Error   { return ErrRegistry.New(CodeCriteriaNotFound) }
func ErrResumeNotFound() *errx.Error     { return ErrRegistry.New(CodeResumeNotFound) }
func ErrPlanNotFound() *errx.Error       { return ErrRegistry.New(CodePlanNotFound) }
func ErrNotEditable() *errx.Error        { return ErrRegistry.New(CodeNotEditable) }
func ErrNoCriteria() *errx.Error         { return ErrRegistry.New(CodeNoCriteria) }
func ErrNoResumes() *errx.Error          { return ErrRegistry.New(CodeNoResumes) }
func ErrAlreadyProcessing() *errx.Error  { return ErrRegistry.New(CodeAlreadyProcessing) }

func ErrInvalidInput(message string) *errx.Error {
	return ErrRegistry.New(CodeInvalidInput).WithMessage(message)
}

func ErrNotEnoughPoints(have, need int) *errx.Error {
	return ErrRegistry.New(CodeNotEnoughPoints).
		WithDetail("points", have).
		WithDetail("required", need)
}

func ErrScoringFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeScoringFailed, err)
}
