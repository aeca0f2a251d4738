package sandboxinfra

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/Abraxas-365/aikyuu/internal/pdf"
	"github.com/Abraxas-365/aikyuu/sandbox"
)

var stopWords = map[string]bool{
	"and": true, "the": true, "with": true, "for": true, "years": true,
	"year": true, "experience": true, "least": true, "knowledge": true,
	"of": true, "in": true, "or": true, "a": true, "an": true, "to": true,
}

// KeywordScorer rates a resume by how many words of each criteria appear in
// its text. It needs no network and is deterministic.
type KeywordScorer struct{}

var _ sandbox.Scorer = KeywordScorer{}

func keywords(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 && !stopWords[f] {
			out = append(out, f)
		}
	}
	return out
}

func (KeywordScorer) Score(_ context.Context, in sandbox.ScoreInput) (*sandbox.Score, error) {
	text := in.Text
	if strings.TrimSpace(text) == "" && pdf.IsPDF(in.File) {
		extracted, err := pdf.ExtractText(in.File)
		if err != nil {
			return nil, sandbox.ErrScoringFailed(err)
		}
		text = extracted
	}
	if len(in.Criteria) == 0 {
		return &sandbox.Score{Explanation: "No criteria to compare against"}, nil
	}

	words := make(map[string]bool)
	for _, w := range keywords(text) {
		words[w] = true
	}

	var total float64
	var met, missed []string
	for _, c := range in.Criteria {
		kws := keywords(c)
		if len(kws) == 0 {
			continue
		}
		hits := 0
		for _, kw := range kws {
			if words[kw] {
				hits++
			}
		}
		coverage := float64(hits) / float64(len(kws))
		total += coverage
		if coverage >= 0.5 {
			met = append(met, c)
		} else {
			missed = append(missed, c)
		}
	}

	n := len(met) + len(missed)
	if n == 0 {
		return &sandbox.Score{Explanation: "No criteria to compare against"}, nil
	}

	score := sandbox.Score{
		Value:       total / float64(n) * 100,
		Explanation: explain(met, missed),
	}.Clamp()
	return &score, nil
}

func explain(met, missed []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Meets %d of %d criteria.", len(met), len(met)+len(missed))
	if len(met) > 0 {
		sb.WriteString(" Matched: " + strings.Join(met, "; ") + ".")
	}
	if len(missed) > 0 {
		sb.WriteString(" Missing: " + strings.Join(missed, "; ") + ".")
	}
	return sb.String()
}
