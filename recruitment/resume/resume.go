package resume

import (
	"sort"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
)

// Resume is an uploaded candidate document and, once the position has been
// analyzed, its score and explanation.
type Resume struct {
	ID          kernel.ResumeID   `json:"id"`
	PositionID  kernel.PositionID `json:"positionId,omitempty"`
	Title       string            `json:"title"`
	CreatedAt   time.Time         `json:"createdAt"`
	Score       float64           `json:"score"`
	Explanation string            `json:"explanation,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsScored reports whether the analysis produced a result for this resume
func (r *Resume) IsScored() bool {
	return r.Explanation != "" || r.Score > 0
}

// Ranked returns a copy of list ordered by score, best first. Ties keep
// upload order.
func Ranked(list []Resume) []Resume {
	out := make([]Resume, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// ============================================================================
// Upload results
// ============================================================================

// UploadResult is the outcome of one file of a batch upload
type UploadResult struct {
	File   string  `json:"file"`
	Resume *Resume `json:"resume,omitempty"`
	Err    error   `json:"-"`
}

func (r UploadResult) OK() bool { return r.Err == nil }

// UploadReport lists every file of a batch upload in submission order
type UploadReport struct {
	Results []UploadResult `json:"results"`
}

func (r *UploadReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

func (r *UploadReport) Failed() []UploadResult {
	var failed []UploadResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}
