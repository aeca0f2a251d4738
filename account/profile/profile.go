package profile

import (
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
)

// Profile is the signed-in user's account
type Profile struct {
	ID        kernel.UserID `json:"id"`
	Name      string        `json:"name"`
	Email     kernel.Email  `json:"email"`
	PhotoURL  string        `json:"photoUrl,omitempty"`
	Points    int           `json:"points"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Photo is an uploaded image
type Photo struct {
	URL string `json:"url"`
}

// Attachment is an image picked by the user
type Attachment struct {
	Name string
	Data []byte
}

func (a *Attachment) IsEmpty() bool {
	return a == nil || len(a.Data) == 0
}
