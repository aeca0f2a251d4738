package profile

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

// Store holds the user's profile. Get sets Current; no other call patches
// it, callers re-fetch after ChangePassword or UploadPhoto.
type Store interface {
	Get(ctx context.Context) (*Profile, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error

	// UploadPhoto converts the image to JPEG and uploads it
	UploadPhoto(ctx context.Context, a Attachment) (*Photo, error)

	// SubmitFeedback sends feedback that references an already uploaded image
	SubmitFeedback(ctx context.Context, title, description, imageURL string) error

	// SendFeedback validates the form, uploads its attachment when present
	// and submits the feedback with the image URL
	SendFeedback(ctx context.Context, form FeedbackForm) error

	Snapshot() storex.Snapshot[Profile]
}
