package eval

import (
	"context"

	"github.com/antgroup/ragqa/llm"
	"github.com/antgroup/ragqa/utils/json"
	"github.com/rs/zerolog"
)

// deterministicTemperature is the sampling temperature for single-sample steps.
const deterministicTemperature = 1e-8

// generator runs a prompt and decodes the JSON answer. A completion that does
// not decode is sent back once with the fix-format prompt.
type generator struct {
	llm        llm.LLM
	maxRetries int
	logger     *zerolog.Logger
}

// run returns ok=false when the output stays unparseable. err is set only when
// the model call itself fails.
func (g *generator) run(ctx context.Context, p *Prompt, inputs map[string]any, v any, options ...llm.GenerateOption) (bool, error) {
	rendered, err := p.Format(inputs)
	if err != nil {
		return false, err
	}
	if len(options) == 0 {
		options = []llm.GenerateOption{llm.WithTemperature(deterministicTemperature)}
	}
	generation, err := g.llm.Generate(ctx, rendered, options...)
	if err != nil {
		return false, err
	}
	return g.parse(ctx, p, rendered, generation.Content, v, g.maxRetries)
}

func (g *generator) parse(ctx context.Context, p *Prompt, rendered, completion string, v any, retries int) (bool, error) {
	err := json.UnmarshalLLM(completion, v)
	if err == nil {
		return true, nil
	}
	g.logger.Debug().Err(err).Str("prompt", p.Name).Msg("unparseable output")
	if retries <= 0 {
		g.logger.Warn().Str("prompt", p.Name).Msg("giving up on unparseable output")
		return false, nil
	}

	fix, err := FixOutputFormat.Format(map[string]any{
		"prompt":     rendered,
		"completion": completion,
	})
	if err != nil {
		return false, err
	}
	generation, err := g.llm.Generate(ctx, fix, llm.WithTemperature(deterministicTemperature))
	if err != nil {
		return false, err
	}
	return g.parse(ctx, p, rendered, generation.Content, v, retries-1)
}
