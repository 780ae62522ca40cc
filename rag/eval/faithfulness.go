package eval

import (
	"context"
	"strings"
)

// Faithfulness is the share of answer statements the contexts support.
type Faithfulness struct {
	gen             *generator
	statementPrompt *Prompt
	nliPrompt       *Prompt
	segmenter       Segmenter
	filter          *SentenceFilter
}

var _ Metric = (*Faithfulness)(nil)

func (m *Faithfulness) Name() string {
	return MetricFaithfulness
}

func (m *Faithfulness) Score(ctx context.Context, record Record) (Score, error) {
	statements, ok, err := m.statements(ctx, record)
	if err != nil || !ok {
		return NaN(), err
	}
	if len(statements) == 0 {
		m.gen.logger.Warn().Msg("no statements were generated from the answer")
		return NaN(), nil
	}

	var verdicts StatementFaithfulnessAnswers
	ok, err = m.gen.run(ctx, m.nliPrompt, map[string]any{
		"context":    strings.Join(record.Contexts, "\n"),
		"statements": statements,
	}, &verdicts)
	if err != nil || !ok {
		return NaN(), err
	}
	if len(verdicts) == 0 {
		return NaN(), nil
	}

	faithful := 0
	for _, v := range verdicts {
		if v.Verdict == 1 {
			faithful++
		}
	}
	return Score(float64(faithful) / float64(len(verdicts))), nil
}

func (m *Faithfulness) statements(ctx context.Context, record Record) ([]string, bool, error) {
	sentences := m.filter.Filter(m.segmenter.Segment(record.Answer))
	var analysis StatementsAnswers
	ok, err := m.gen.run(ctx, m.statementPrompt, map[string]any{
		"question":  record.Question,
		"answer":    record.Answer,
		"sentences": NumberSentences(sentences),
	}, &analysis)
	if err != nil || !ok {
		return nil, ok, err
	}

	statements := make([]string, 0)
	for _, item := range analysis {
		statements = append(statements, item.SimplerStatements...)
	}
	return statements, true, nil
}
