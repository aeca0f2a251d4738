package criteria

// CreateCriteriaRequest - DTO for adding a criteria to a position
type CreateCriteriaRequest struct {
	Description string `json:"description" validate:"required,max=2000"`
}

func (CreateCriteriaRequest) Messages() map[string]string {
	return map[string]string{
		"description.required": "Criteria description is required",
		"description.max":      "Criteria description is too long",
	}
}
