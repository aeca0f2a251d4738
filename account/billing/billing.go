package billing

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
)

// Bill is one points charge of the user
type Bill struct {
	ID        kernel.BillID `json:"id"`
	Amount    int           `json:"amount"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Package is the label of the bought package, e.g. "50 CVs"
func (b *Bill) Package() string {
	return fmt.Sprintf("%d CVs", b.Amount)
}

// StartDate formats CreatedAt as dd.mm.yyyy
func (b *Bill) StartDate() string {
	return b.CreatedAt.Format("02.01.2006")
}

// Purchase is the server's answer to a buy request
type Purchase struct {
	ID          string `json:"id,omitempty"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
	Points      int    `json:"points,omitempty"`
}
