package sandboxinfra

import (
	"context"
	"strings"

	"github.com/Abraxas-365/aikyuu/internal/ai/screener"
	"github.com/Abraxas-365/aikyuu/internal/pdf"
	"github.com/Abraxas-365/aikyuu/sandbox"
)

const maxVisionPages = 3

// LLMScorer delegates to the OpenAI screener. Resumes without extractable
// text are sent as rendered pages.
type LLMScorer struct {
	screener *screener.Screener
}

var _ sandbox.Scorer = (*LLMScorer)(nil)

func NewLLMScorer(s *screener.Screener) *LLMScorer {
	return &LLMScorer{screener: s}
}

func (s *LLMScorer) Score(ctx context.Context, in sandbox.ScoreInput) (*sandbox.Score, error) {
	var (
		res *screener.Result
		err error
	)

	switch {
	case strings.TrimSpace(in.Text) != "":
		res, err = s.screener.ScoreText(ctx, in.Criteria, in.Text)
	case pdf.IsPDF(in.File):
		var pages [][]byte
		pages, err = pdf.RenderPages(in.File, maxVisionPages)
		if err == nil {
			res, err = s.screener.ScoreImages(ctx, in.Criteria, pages)
		}
	default:
		var page []byte
		page, err = pdf.ConvertImageToJPEG(in.File)
		if err == nil {
			res, err = s.screener.ScoreImages(ctx, in.Criteria, [][]byte{page})
		}
	}
	if err != nil {
		return nil, sandbox.ErrScoringFailed(err)
	}

	score := sandbox.Score{Value: res.Score, Explanation: res.Explanation}.Clamp()
	return &score, nil
}
