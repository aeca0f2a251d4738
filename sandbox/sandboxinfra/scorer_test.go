package sandboxinfra

import (
	"context"
	"testing"

	"github.com/Abraxas-365/aikyuu/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordScorer(t *testing.T) {
	ctx := context.Background()
	crit := []string{"Go and Kubernetes", "PostgreSQL", "Team leadership"}

	strong, err := KeywordScorer{}.Score(ctx, sandbox.ScoreInput{
		Criteria: crit,
		Text:     "Senior engineer: Go, Kubernetes, PostgreSQL. Led a team of five; leadership training.",
	})
	require.NoError(t, err)

	weak, err := KeywordScorer{}.Score(ctx, sandbox.ScoreInput{
		Criteria: crit,
		Text:     "Graphic designer, Photoshop and Illustrator.",
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, strong.Value)
	assert.Contains(t, strong.Explanation, "Meets 3 of 3 criteria")
	assert.Equal(t, 0.0, weak.Value)
	assert.Contains(t, weak.Explanation, "Missing")
}

func TestKeywordScorerPartialCoverage(t *testing.T) {
	score, err := KeywordScorer{}.Score(context.Background(), sandbox.ScoreInput{
		Criteria: []string{"Go and Kubernetes"},
		Text:     "Go developer",
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, score.Value)
}

func TestKeywordScorerWithoutCriteria(t *testing.T) {
	score, err := KeywordScorer{}.Score(context.Background(), sandbox.ScoreInput{Text: "anything"})
	require.NoError(t, err)
	assert.Zero(t, score.Value)
}

func TestRescale(t *testing.T) {
	assert.Equal(t, 0.0, rescale(0.1))
	assert.Equal(t, 1.0, rescale(1.2))
	assert.InDelta(t, 0.5, rescale(0.6), 1e-9)
}

func TestScoreClamp(t *testing.T) {
	assert.Equal(t, 100.0, sandbox.Score{Value: 130}.Clamp().Value)
	assert.Equal(t, 0.0, sandbox.Score{Value: -3}.Clamp().Value)
	assert.Equal(t, 66.7, sandbox.Score{Value: 66.66}.Clamp().Value)
}
