package sandboxinfra

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/aikyuu/internal/ai/embeddings"
	"github.com/Abraxas-365/aikyuu/internal/pdf"
	"github.com/Abraxas-365/aikyuu/sandbox"
)

// similarityFloor is the cosine similarity that maps to a score of 0
const similarityFloor = 0.2

// EmbeddingScorer compares the resume embedding with each criteria
// embedding and averages the rescaled similarities.
type EmbeddingScorer struct {
	generator *embeddings.Generator
}

var _ sandbox.Scorer = (*EmbeddingScorer)(nil)

func NewEmbeddingScorer(g *embeddings.Generator) *EmbeddingScorer {
	return &EmbeddingScorer{generator: g}
}

func (s *EmbeddingScorer) Score(ctx context.Context, in sandbox.ScoreInput) (*sandbox.Score, error) {
	text := in.Text
	if strings.TrimSpace(text) == "" && pdf.IsPDF(in.File) {
		extracted, err := pdf.ExtractText(in.File)
		if err != nil {
			return nil, sandbox.ErrScoringFailed(err)
		}
		text = extracted
	}
	if strings.TrimSpace(text) == "" {
		return nil, sandbox.ErrScoringFailed(fmt.Errorf("resume has no text"))
	}
	if len(in.Criteria) == 0 {
		return &sandbox.Score{Explanation: "No criteria to compare against"}, nil
	}

	vectors, err := s.generator.Embed(ctx, append([]string{text}, in.Criteria...))
	if err != nil {
		return nil, sandbox.ErrScoringFailed(err)
	}

	var total float64
	best, bestSim := "", -1.0
	for i, c := range in.Criteria {
		sim := embeddings.Cosine(vectors[0], vectors[i+1])
		if sim > bestSim {
			best, bestSim = c, sim
		}
		total += rescale(sim)
	}

	score := sandbox.Score{
		Value:       total / float64(len(in.Criteria)) * 100,
		Explanation: fmt.Sprintf("Semantic match across %d criteria. Closest: %s.", len(in.Criteria), best),
	}.Clamp()
	return &score, nil
}

func rescale(sim float64) float64 {
	v := (sim - similarityFloor) / (1 - similarityFloor)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
