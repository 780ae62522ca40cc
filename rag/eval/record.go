package eval

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmptyQuestion = errors.New("record question is empty")
	ErrNoContexts    = errors.New("record has no contexts")
)

// Record is one question answered by the pipeline together with the contexts
// its prompt was built from.
type Record struct {
	Question string   `json:"question" yaml:"question" mapstructure:"question"`
	Answer   string   `json:"answer" yaml:"answer" mapstructure:"answer"`
	Contexts []string `json:"contexts" yaml:"contexts" mapstructure:"contexts"`
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return ErrEmptyQuestion
	}
	if len(r.Contexts) == 0 {
		return ErrNoContexts
	}
	return nil
}

// Score is a metric value in [0, 1]. NaN means the metric could not be
// computed and is encoded as JSON null.
type Score float64

func NaN() Score {
	return Score(math.NaN())
}

func (s Score) IsNaN() bool {
	return math.IsNaN(float64(s))
}

func (s Score) MarshalJSON() ([]byte, error) {
	if s.IsNaN() || math.IsInf(float64(s), 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(s), 'f', -1, 64), nil
}

func (s *Score) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = NaN()
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Score(f)
	return nil
}

func (s Score) String() string {
	if s.IsNaN() {
		return "nan"
	}
	return strconv.FormatFloat(float64(s), 'f', 4, 64)
}

// Report holds the scores of one record, keyed by metric name.
type Report struct {
	Record  Record           `json:"record"`
	Scores  map[string]Score `json:"scores"`
	Metrics []string         `json:"-"`
}

func (r *Report) Get(metric string) Score {
	if s, ok := r.Scores[metric]; ok {
		return s
	}
	return NaN()
}

// String lists the scores in evaluation order.
func (r *Report) String() string {
	parts := make([]string, 0, len(r.Metrics))
	for _, name := range r.Metrics {
		parts = append(parts, "'"+name+"': "+r.Get(name).String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
