package eval

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/antgroup/ragqa/llm"
	"github.com/antgroup/ragqa/rag"
	"github.com/thoas/go-funk"
)

// 多次采样时使用的温度
const samplingTemperature = 0.3

// AnswerRelevancy compares the question with questions generated back from
// the answer. A noncommittal answer scores 0.
type AnswerRelevancy struct {
	gen        *generator
	embedder   rag.Embedder
	prompt     *Prompt
	strictness int
}

var _ Metric = (*AnswerRelevancy)(nil)

func (m *AnswerRelevancy) Name() string {
	return MetricAnswerRelevancy
}

func (m *AnswerRelevancy) Score(ctx context.Context, record Record) (Score, error) {
	inputs := map[string]any{
		"answer":  record.Answer,
		"context": strings.Join(record.Contexts, "\n"),
	}
	generated := make([]string, 0, m.strictness)
	noncommittal := false
	for i := 0; i < m.strictness; i++ {
		var out AnswerRelevanceClassification
		ok, err := m.gen.run(ctx, m.prompt, inputs, &out, llm.WithTemperature(samplingTemperature))
		if err != nil {
			return NaN(), err
		}
		if !ok {
			return NaN(), nil
		}
		generated = append(generated, out.Question)
		noncommittal = noncommittal || out.Noncommittal != 0
	}

	if len(funk.FilterString(generated, func(q string) bool { return q != "" })) == 0 {
		m.gen.logger.Warn().Msg("no question was generated from the answer")
		return NaN(), nil
	}

	similarities, err := m.similarities(ctx, record.Question, generated)
	if err != nil {
		return NaN(), err
	}
	if noncommittal {
		return 0, nil
	}
	return Score(funk.SumFloat64(similarities) / float64(len(similarities))), nil
}

func (m *AnswerRelevancy) similarities(ctx context.Context, question string, generated []string) ([]float64, error) {
	q, err := m.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	vectors, err := m.embedder.EmbedDocuments(ctx, generated)
	if err != nil {
		return nil, fmt.Errorf("embed generated questions: %w", err)
	}
	if len(vectors) != len(generated) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d questions", len(vectors), len(generated))
	}
	similarities := make([]float64, len(vectors))
	for i, v := range vectors {
		similarities[i] = cosine(q, v)
	}
	return similarities, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
