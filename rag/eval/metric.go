package eval

import (
	"context"
)

const (
	MetricFaithfulness       = "faithfulness"
	MetricAnswerRelevancy    = "answer_relevancy"
	MetricContextUtilization = "context_utilization"
)

// AllMetrics lists the metrics in the order they are evaluated.
var AllMetrics = []string{MetricFaithfulness, MetricAnswerRelevancy, MetricContextUtilization}

// Metric scores one record. Model and embedding failures are returned as
// errors; output the model keeps getting wrong yields NaN.
type Metric interface {
	Name() string
	Score(ctx context.Context, record Record) (Score, error)
}
