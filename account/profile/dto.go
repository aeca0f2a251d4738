package profile

import "github.com/Abraxas-365/aikyuu/account/auth"

// ChangePasswordRequest - the change password form
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"min=8,hassymbol,hasdigit,hasletter"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

func (ChangePasswordRequest) Messages() map[string]string {
	m := auth.PasswordMessages()
	m["oldPassword.required"] = "Current password is required"
	return m
}

// Body is what the server receives; the confirmation stays local
func (r ChangePasswordRequest) Body() ChangePasswordBody {
	return ChangePasswordBody{OldPassword: r.OldPassword, NewPassword: r.NewPassword}
}

type ChangePasswordBody struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// FeedbackForm - user feedback with an optional image
type FeedbackForm struct {
	Title       string      `json:"title" validate:"required,max=100"`
	Description string      `json:"description" validate:"required,max=1000"`
	Attachment  *Attachment `json:"-"`
}

func (FeedbackForm) Messages() map[string]string {
	return map[string]string{
		"title.max":       "Title is too long",
		"description.max": "Description is too long",
	}
}

// FeedbackRequest - body of /v1/user/feedback
type FeedbackRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}
