package billing

// PurchaseRequest - buys quantity packages of a plan
type PurchaseRequest struct {
	PlanID   string `json:"planId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

func (PurchaseRequest) Messages() map[string]string {
	return map[string]string{
		"planId.required": "Please choose a plan",
		"quantity.gte":    "Quantity must be at least 1",
	}
}
