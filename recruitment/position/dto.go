package position

// CreatePositionRequest - DTO for creating a position
type CreatePositionRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
}

func (CreatePositionRequest) Messages() map[string]string {
	return map[string]string{
		"title.required":       "Position title is required",
		"title.max":            "Position title is too long",
		"description.required": "Job description is required",
		"description.max":      "Job description is too long",
	}
}

// UpdatePositionRequest - DTO for updating a position
type UpdatePositionRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
}

func (UpdatePositionRequest) Messages() map[string]string {
	return CreatePositionRequest{}.Messages()
}
