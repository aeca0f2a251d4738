package auth

import "github.com/Abraxas-365/aikyuu/pkg/kernel"

// SignInRequest - credentials for /v1/auth/login
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (SignInRequest) Messages() map[string]string {
	return map[string]string{
		"email.required": "Email or username is required",
	}
}

// RegisterForm - the sign up form. Only name, email and password are sent.
type RegisterForm struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	AgreeToTerms    bool   `json:"agreeToTerms" validate:"eq=true"`
}

func (RegisterForm) Messages() map[string]string {
	return map[string]string{
		"email.required":    "Invalid email address",
		"email.email":       "Invalid email address",
		"password.required": "Password must be at least 6 characters",
		"agreeToTerms.eq":   "You must agree to the terms and conditions",
	}
}

func (f RegisterForm) Request() SignupRequest {
	return SignupRequest{Name: f.Name, Email: f.Email, Password: f.Password}
}

// SignupRequest - body of /v1/auth/signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest - confirms a signup with the emailed code
type VerifyRequest struct {
	VerificationID kernel.VerificationID `json:"verificationId" validate:"required"`
	Code           string                `json:"code" validate:"required"`
}

func (VerifyRequest) Messages() map[string]string {
	return map[string]string{
		"verificationId.required": "Verification link is invalid",
		"code.required":           "Verification code is required",
	}
}

// ForgotPasswordRequest - starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest - finishes a password reset
type ResetPasswordRequest struct {
	VerificationID  kernel.VerificationID `json:"verificationId" validate:"required"`
	Code            string                `json:"code" validate:"required"`
	NewPassword     string                `json:"newPassword" validate:"min=8,hassymbol,hasdigit,hasletter"`
	ConfirmPassword string                `json:"confirmPassword,omitempty" validate:"required,eqfield=NewPassword"`
}

func (ResetPasswordRequest) Messages() map[string]string {
	return passwordMessages
}

// passwordMessages are shared by every form that sets a new password
var passwordMessages = map[string]string{
	"verificationId.required":  "Verification link is invalid",
	"code.required":            "Verification code is required",
	"newPassword.min":          "Password must be at least 8 characters",
	"newPassword.hassymbol":    "Password must contain at least one special character",
	"newPassword.hasdigit":     "Password must contain at least one number",
	"newPassword.hasletter":    "Password must contain at least one letter",
	"confirmPassword.required": "Please confirm your password",
}

// PasswordMessages returns a copy of the new-password rule messages
func PasswordMessages() map[string]string {
	out := make(map[string]string, len(passwordMessages))
	for k, v := range passwordMessages {
		out[k] = v
	}
	return out
}

// LoginResponse - body returned by /v1/auth/login and /v1/auth/verify
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	Email       kernel.Email `json:"email,omitempty"`
}

// VerificationResponse - body returned by signup and forgot-password
type VerificationResponse struct {
	VerificationID kernel.VerificationID `json:"verificationId"`
}
