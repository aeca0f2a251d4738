package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
)

// Format is an export file format
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatExcel, "excel":
		return FormatExcel, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", ErrUnsupportedFormat(s)
}

func (f Format) Extension() string { return "." + string(f) }

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Row is one ranked resume of a report
type Row struct {
	Rank        int     `json:"rank"`
	ResumeID    string  `json:"resumeId"`
	Title       string  `json:"title"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Report is the analysis result of one position
type Report struct {
	PositionID  kernel.PositionID `json:"positionId"`
	Title       string            `json:"title"`
	Status      position.Status   `json:"status"`
	Criteria    []string          `json:"criteria"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Rows        []Row             `json:"results"`
}

// Build ranks the resumes of p, best score first
func Build(p *position.Position, now time.Time) *Report {
	r := &Report{
		PositionID:  p.ID,
		Title:       p.Title,
		Status:      p.Status,
		GeneratedAt: now.UTC(),
		Criteria:    make([]string, 0, len(p.Criterias)),
		Rows:        make([]Row, 0, len(p.Resumes)),
	}
	for _, c := range p.Criterias {
		r.Criteria = append(r.Criteria, c.Description)
	}
	for i, res := range p.RankedResumes() {
		r.Rows = append(r.Rows, Row{
			Rank:        i + 1,
			ResumeID:    res.ID.String(),
			Title:       res.Title,
			Score:       res.Score,
			Explanation: res.Explanation,
		})
	}
	return r
}

// FileName is "<title-slug>-<position id><ext>"
func (r *Report) FileName(f Format) string {
	slug := slugify(r.Title)
	if slug == "" {
		slug = "position"
	}
	return fmt.Sprintf("%s-%s%s", slug, r.PositionID, f.Extension())
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
