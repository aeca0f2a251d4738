package profilestore

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/aikyuu/account/profile"
	"github.com/Abraxas-365/aikyuu/internal/pdf"
	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/formx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

const basePath = "/v1/user"

type Store struct {
	api      *apix.Client
	notifier storex.Notifier
	state    *storex.State[profile.Profile]
}

var _ profile.Store = (*Store)(nil)

func New(api *apix.Client, notifier storex.Notifier) *Store {
	return &Store{
		api:      api,
		notifier: notifier,
		state:    storex.NewState[profile.Profile](),
	}
}

func (s *Store) Get(ctx context.Context) (*profile.Profile, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[profile.Profile, *profile.Profile]{
		Name:     "get",
		Fallback: "Failed to fetch profile",
		Call: func(ctx context.Context) (*profile.Profile, error) {
			var p profile.Profile
			if err := s.api.Get(ctx, basePath+"/profile", nil, &p); err != nil {
				return nil, err
			}
			return &p, nil
		},
		Apply: func(d *storex.Data[profile.Profile], p *profile.Profile) {
			cp := *p
			d.Current = &cp
		},
	})
}

func (s *Store) ChangePassword(ctx context.Context, req profile.ChangePasswordRequest) error {
	_, err := storex.Run(ctx, s.state, s.notifier, storex.Op[profile.Profile, struct{}]{
		Name:     "change-password",
		Fallback: "Failed to change password",
		Success:  "Password changed",
		Call: func(ctx context.Context) (struct{}, error) {
			if err := formx.Validate(req).Err(); err != nil {
				return struct{}{}, err
			}
			err := s.api.Post(ctx, basePath+"/change-password", req.Body(), nil)
			if err != nil && apix.StatusCode(err) == http.StatusUnauthorized {
				return struct{}{}, profile.ErrWrongPassword()
			}
			return struct{}{}, err
		},
	})
	return err
}

func (s *Store) UploadPhoto(ctx context.Context, a profile.Attachment) (*profile.Photo, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[profile.Profile, *profile.Photo]{
		Name:     "upload-photo",
		Fallback: "Failed to upload image",
		Call: func(ctx context.Context) (*profile.Photo, error) {
			data, err := pdf.ConvertImageToJPEG(a.Data)
			if err != nil {
				return nil, profile.ErrBadImage(err)
			}
			file := apix.File{
				Name:        jpegName(a.Name),
				ContentType: "image/jpeg",
				Data:        data,
			}
			var photo profile.Photo
			if err := s.api.Upload(ctx, basePath+"/photo", file, nil, &photo); err != nil {
				return nil, err
			}
			return &photo, nil
		},
	})
}

func (s *Store) SubmitFeedback(ctx context.Context, title, description, imageURL string) error {
	_, err := storex.Run(ctx, s.state, s.notifier, storex.Op[profile.Profile, struct{}]{
		Name:     "feedback",
		Fallback: "Failed to submit feedback",
		Success:  "Thank you for your feedback",
		Call: func(ctx context.Context) (struct{}, error) {
			body := profile.FeedbackRequest{Title: title, Description: description, ImageURL: imageURL}
			return struct{}{}, s.api.Post(ctx, basePath+"/feedback", body, nil)
		},
	})
	return err
}

func (s *Store) SendFeedback(ctx context.Context, form profile.FeedbackForm) error {
	if err := formx.Validate(form).Err(); err != nil {
		if s.notifier != nil {
			s.notifier.Notify(storex.LevelError, apix.Message(err, "Failed to submit feedback"))
		}
		return err
	}

	var imageURL string
	if !form.Attachment.IsEmpty() {
		photo, err := s.UploadPhoto(ctx, *form.Attachment)
		if err != nil {
			return err
		}
		imageURL = photo.URL
	}
	return s.SubmitFeedback(ctx, form.Title, form.Description, imageURL)
}

func (s *Store) Snapshot() storex.Snapshot[profile.Profile] {
	return s.state.Snapshot()
}

func jpegName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return base + ".jpg"
}
