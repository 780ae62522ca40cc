package eval

import (
	"context"
)

// ContextUtilization is the average precision of the contexts judged useful
// for the answer, taken in retrieval order.
type ContextUtilization struct {
	gen    *generator
	prompt *Prompt
}

var _ Metric = (*ContextUtilization)(nil)

func (m *ContextUtilization) Name() string {
	return MetricContextUtilization
}

func (m *ContextUtilization) Score(ctx context.Context, record Record) (Score, error) {
	verdicts := make([]int, 0, len(record.Contexts))
	for _, c := range record.Contexts {
		var out ContextPrecisionVerification
		ok, err := m.gen.run(ctx, m.prompt, map[string]any{
			"question": record.Question,
			"context":  c,
			"answer":   record.Answer,
		}, &out)
		if err != nil {
			return NaN(), err
		}
		if !ok {
			return NaN(), nil
		}
		v := 0
		if out.Verdict != 0 {
			v = 1
		}
		verdicts = append(verdicts, v)
	}
	return Score(averagePrecision(verdicts)), nil
}

func averagePrecision(verdicts []int) float64 {
	var numerator float64
	relevant := 0
	for i, v := range verdicts {
		relevant += v
		numerator += float64(relevant) / float64(i+1) * float64(v)
	}
	return numerator / (float64(relevant) + 1e-10)
}
