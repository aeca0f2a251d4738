package criteria

import (
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
)

// Criteria is a screening rule attached to one position
type Criteria struct {
	ID          kernel.CriteriaID `json:"id"`
	PositionID  kernel.PositionID `json:"positionId,omitempty"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Without returns list minus the criteria with the given id
func Without(list []Criteria, id kernel.CriteriaID) []Criteria {
	out := make([]Criteria, 0, len(list))
	for _, c := range list {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
